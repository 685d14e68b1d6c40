package snapshot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/scene"
)

// Element and attribute values shared by the encoder and the assembler.
const (
	nullValue       = "null"
	untaggedValue   = "Untagged"
	builtinPath     = "Built-in"
	categoryScript  = "Script"
	categoryBuiltin = "Built-in"
)

var errNilNode = errors.New("node handle is nil")

// Encode converts one node into a GameObject element. Children are not
// visited; that is the walker's job.
//
// Attributes are written in a fixed order: name, active, layer, tag,
// childCount. Frame and component children follow according to opts.
// An error means the host binding could not read the node.
func (e *Engine) Encode(n scene.Node, opts Options) (*document.Element, error) {
	if n == nil {
		return nil, errNilNode
	}

	el := document.NewElement("GameObject")
	el.Set("name", n.Name())
	el.Set("active", formatBool(n.ActiveSelf()))
	el.Set("layer", layerLabel(n.Layer()))
	el.Set("tag", tagLabel(n.Tag()))
	el.Set("childCount", strconv.Itoa(scene.ChildCount(n)))

	if opts.IncludeTransform {
		f, err := n.Frame()
		if err != nil {
			return nil, fmt.Errorf("read frame: %w", err)
		}
		el.Append(vecElement("Position", f.LocalPosition))
		el.Append(vecElement("Rotation", f.EulerAngles))
		el.Append(vecElement("Scale", f.LocalScale))
	}

	if opts.IncludeComponents {
		comps, err := n.Components()
		if err != nil {
			return nil, fmt.Errorf("read components: %w", err)
		}
		el.Append(componentsElement(comps, opts))
	}
	return el, nil
}

func layerLabel(l scene.Layer) string {
	if l.Name != "" {
		return l.Name
	}
	return strconv.Itoa(l.ID)
}

func tagLabel(tag string) string {
	if tag == "" {
		return untaggedValue
	}
	return tag
}

func vecElement(name string, v scene.Vec3) *document.Element {
	return document.NewElement(name).
		Set("x", FormatFloat(v.X)).
		Set("y", FormatFloat(v.Y)).
		Set("z", FormatFloat(v.Z))
}

// componentsElement classifies comps in one pass. The first renderer is
// held back and written last; further renderers are written as built-ins.
func componentsElement(comps []scene.Component, opts Options) *document.Element {
	wrapper := document.NewElement("Components")
	var (
		renderer *scene.Component
		scripts  int
		total    int
		entries  []*document.Element
	)
	for i := range comps {
		c := comps[i]
		if c.IsTransform() {
			continue
		}
		total++
		switch c.Kind {
		case scene.KindRenderer:
			if renderer == nil {
				renderer = &c
				continue
			}
			entries = append(entries, builtinElement(c))
		case scene.KindScript:
			scripts++
			entries = append(entries, scriptElement(c))
		default:
			entries = append(entries, builtinElement(c))
		}
	}

	wrapper.Set("scriptCount", strconv.Itoa(scripts))
	wrapper.Set("totalCount", strconv.Itoa(total))
	wrapper.Children = entries
	if renderer != nil {
		wrapper.Append(rendererElement(*renderer, opts))
	}
	return wrapper
}

func scriptElement(c scene.Component) *document.Element {
	return document.NewElement("Component").
		Set("type", c.TypeName).
		Set("enabled", formatBool(c.IsEnabled())).
		Set("category", categoryScript)
}

func builtinElement(c scene.Component) *document.Element {
	el := document.NewElement("Component").
		Set("type", c.TypeName).
		Set("category", categoryBuiltin)
	if c.Enabled != nil {
		el.Set("enabled", formatBool(*c.Enabled))
	}
	return el
}

func rendererElement(c scene.Component, opts Options) *document.Element {
	el := document.NewElement("Renderer").
		Set("type", c.TypeName).
		Set("enabled", formatBool(c.IsEnabled()))
	if !opts.IncludeMaterials {
		return el
	}

	mats := el.AppendNew("Materials")
	if len(c.Materials) == 0 {
		mats.Append(materialElement(0, nil))
		return el
	}
	for i, m := range c.Materials {
		mats.Append(materialElement(i, m))
	}
	return el
}

// materialElement writes one slot. A nil ref is an empty slot and every
// value is "null".
func materialElement(index int, m *scene.MaterialRef) *document.Element {
	el := document.NewElement("Material").Set("index", strconv.Itoa(index))
	if m == nil {
		return el.Set("name", nullValue).Set("shader", nullValue).Set("path", nullValue)
	}
	shader := m.Shader
	if shader == "" {
		shader = nullValue
	}
	path := m.AssetPath
	if path == "" {
		path = builtinPath
	}
	return el.Set("name", m.Name).Set("shader", shader).Set("path", path)
}
