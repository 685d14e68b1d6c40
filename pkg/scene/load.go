package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/snapshoot/pkg/errors"
)

// Scene dump formats accepted by Read.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// dump is the on-disk description of a host graph.
type dump struct {
	Version      string         `yaml:"version" json:"version"`
	Active       string         `yaml:"active" json:"active"`
	Layers       map[int]string `yaml:"layers" json:"layers"`
	EnabledTypes []string       `yaml:"enabled_types" json:"enabled_types"`
	Scenes       []sceneDump    `yaml:"scenes" json:"scenes"`
	Untracked    []nodeDump     `yaml:"untracked" json:"untracked"`
}

type sceneDump struct {
	Name   string     `yaml:"name" json:"name"`
	Path   string     `yaml:"path" json:"path"`
	Loaded *bool      `yaml:"loaded" json:"loaded"`
	Roots  []nodeDump `yaml:"roots" json:"roots"`
}

type nodeDump struct {
	Name       string          `yaml:"name" json:"name"`
	Active     *bool           `yaml:"active" json:"active"`
	Layer      int             `yaml:"layer" json:"layer"`
	Tag        string          `yaml:"tag" json:"tag"`
	Position   []float64       `yaml:"position" json:"position"`
	Rotation   []float64       `yaml:"rotation" json:"rotation"`
	Scale      []float64       `yaml:"scale" json:"scale"`
	Components []componentDump `yaml:"components" json:"components"`
	Children   []nodeDump      `yaml:"children" json:"children"`
}

type componentDump struct {
	Type      string          `yaml:"type" json:"type"`
	Kind      string          `yaml:"kind" json:"kind"`
	Enabled   *bool           `yaml:"enabled" json:"enabled"`
	Materials []*materialDump `yaml:"materials" json:"materials"`
}

type materialDump struct {
	Name   string `yaml:"name" json:"name"`
	Shader string `yaml:"shader" json:"shader"`
	Path   string `yaml:"path" json:"path"`
}

// FormatFromPath returns the dump format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scene dump extension: %q (want .yaml, .yml or .json)", filepath.Ext(path))
}

// LoadFile reads a scene dump file into a MemoryRegistry.
// The format is chosen from the file extension.
func LoadFile(path string) (*MemoryRegistry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene dump %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes a scene dump in the given format into a MemoryRegistry.
//
// Objects are registered depth-first: every scene's roots in order, then
// the untracked roots. The scene named by the dump's "active" field becomes
// the active partition; when it is empty the first scene is active.
func Read(r io.Reader, format string) (*MemoryRegistry, error) {
	var d dump
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml scene dump")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scene dump")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene dump format: %q", format)
	}
	return d.build()
}

func (d dump) build() (*MemoryRegistry, error) {
	b := builder{
		reg:    NewRegistry(d.Version),
		layers: d.Layers,
		lookup: EnabledLookup{},
	}
	for t, ok := range DefaultEnabledLookup {
		b.lookup[t] = ok
	}
	for _, t := range d.EnabledTypes {
		b.lookup[t] = true
	}

	for _, sd := range d.Scenes {
		p := b.reg.AddPartition(sd.Name, sd.Path)
		if sd.Loaded != nil {
			p.Loaded = *sd.Loaded
		}
		for _, nd := range sd.Roots {
			o, err := b.node(nd)
			if err != nil {
				return nil, fmt.Errorf("scene %s: %w", sd.Name, err)
			}
			p.AddRoot(o)
		}
	}
	for _, nd := range d.Untracked {
		if _, err := b.node(nd); err != nil {
			return nil, fmt.Errorf("untracked: %w", err)
		}
	}

	if d.Active != "" {
		p, ok := b.reg.Partition(d.Active)
		if !ok {
			return nil, errors.New(errors.ErrCodeSceneNotFound, "active scene %q is not listed in scenes", d.Active)
		}
		b.reg.SetActive(p)
	}
	return b.reg, nil
}

type builder struct {
	reg    *MemoryRegistry
	layers map[int]string
	lookup EnabledLookup
}

func (b *builder) node(nd nodeDump) (*Object, error) {
	o := b.reg.NewObject(nd.Name)
	if nd.Active != nil {
		o.SetActive(*nd.Active)
	}
	o.SetLayer(nd.Layer, b.layers[nd.Layer])
	o.SetTag(nd.Tag)

	pos, err := vec(nd.Position, Vec3{})
	if err != nil {
		return nil, fmt.Errorf("node %s position: %w", nd.Name, err)
	}
	rot, err := vec(nd.Rotation, Vec3{})
	if err != nil {
		return nil, fmt.Errorf("node %s rotation: %w", nd.Name, err)
	}
	scale, err := vec(nd.Scale, Vec3{1, 1, 1})
	if err != nil {
		return nil, fmt.Errorf("node %s scale: %w", nd.Name, err)
	}
	o.frame = Frame{LocalPosition: pos, EulerAngles: rot, LocalScale: scale}

	for _, cd := range nd.Components {
		c, err := b.component(cd)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.Name, err)
		}
		o.AddComponent(c)
	}

	for _, cd := range nd.Children {
		child, err := b.node(cd)
		if err != nil {
			return nil, err
		}
		o.AddChild(child)
	}
	return o, nil
}

func (b *builder) component(cd componentDump) (Component, error) {
	if cd.Type == "" {
		return Component{}, errors.New(errors.ErrCodeInvalidInput, "component without type")
	}
	kind := InferKind(cd.Type)
	if cd.Kind != "" {
		k, ok := ParseKind(cd.Kind)
		if !ok {
			return Component{}, errors.New(errors.ErrCodeInvalidInput, "component %s: unknown kind %q", cd.Type, cd.Kind)
		}
		kind = k
	}

	enabled := true
	if cd.Enabled != nil {
		enabled = *cd.Enabled
	}

	switch kind {
	case KindScript:
		return Script(cd.Type, enabled), nil
	case KindRenderer:
		mats := make([]*MaterialRef, len(cd.Materials))
		for i, md := range cd.Materials {
			if md == nil {
				continue
			}
			mats[i] = &MaterialRef{Name: md.Name, Shader: md.Shader, AssetPath: md.Path}
		}
		return Renderer(cd.Type, enabled, mats...), nil
	default:
		return Builtin(cd.Type, b.lookup.Resolve(cd.Type, &enabled)), nil
	}
}

func vec(v []float64, def Vec3) (Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return Vec3{v[0], v[1], v[2]}, nil
	}
	return Vec3{}, errors.New(errors.ErrCodeInvalidInput, "expected 3 components, got %d", len(v))
}
