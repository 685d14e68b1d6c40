package snapshot

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/observability"
	"github.com/matzehuels/snapshoot/pkg/scene"
)

// UntrackedScene is the name of the synthetic partition holding the
// untracked roots. It is always written last and always marked active.
const UntrackedScene = "DontDestroyOnLoad"

// TimeLayout is the layout of the exportTime attribute.
const TimeLayout = "2006-01-02 15:04:05"

type selectionMode int

const (
	selectAll selectionMode = iota
	selectName
	selectIndex
)

// Selection chooses which partitions an export covers.
type Selection struct {
	mode  selectionMode
	name  string
	index int
}

// AllScenes selects the active partition, every other loaded partition and
// the untracked roots.
func AllScenes() Selection { return Selection{mode: selectAll} }

// SceneNamed selects the first loaded partition named name followed by the
// untracked roots. UntrackedScene selects the untracked roots alone.
func SceneNamed(name string) Selection { return Selection{mode: selectName, name: name} }

// SceneAt selects the partition at index i in registry order, which must
// be loaded, then resolves it by name like SceneNamed.
func SceneAt(i int) Selection { return Selection{mode: selectIndex, index: i} }

// IsAll reports whether s selects every partition.
func (s Selection) IsAll() bool { return s.mode == selectAll }

// String describes the selection for logs and cache keys.
func (s Selection) String() string {
	switch s.mode {
	case selectName:
		return s.name
	case selectIndex:
		return "#" + strconv.Itoa(s.index)
	}
	return "*"
}

// Build exports the partitions chosen by sel.
//
// ok is false when sel names a partition that does not exist or is not
// loaded; the document is nil in that case and err is nil. err is non-nil
// only when the registry itself fails, and no document is produced.
func (e *Engine) Build(sel Selection, opts Options) (doc *document.Document, ok bool, err error) {
	doc, _, err = e.BuildContext(context.Background(), sel, opts)
	return doc, doc != nil, err
}

// BuildContext is Build with a context for observability hooks. It also
// returns the traversal statistics. A nil document with a nil error means
// the selection was not found.
func (e *Engine) BuildContext(ctx context.Context, sel Selection, opts Options) (*document.Document, WalkStats, error) {
	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, sel.String())

	doc, stats, err := e.build(ctx, sel, opts)

	reported := err
	if doc == nil && err == nil {
		reported = errors.New(errors.ErrCodeSceneNotFound, "scene %s not found", sel)
	}
	hooks.OnExportComplete(ctx, sel.String(), stats.Visited, stats.Failed, time.Since(start), reported)

	switch {
	case err != nil:
		e.logger().Error("export failed", "selection", sel.String(), "err", err)
	case doc == nil:
		e.logger().Debug("scene not found", "selection", sel.String())
	default:
		e.logger().Debug("export built",
			"selection", sel.String(),
			"nodes", stats.Visited,
			"failed", stats.Failed,
			"skipped_inactive", stats.SkippedInactive,
			"skipped_depth", stats.SkippedDepth)
	}
	return doc, stats, err
}

func (e *Engine) build(ctx context.Context, sel Selection, opts Options) (*document.Document, WalkStats, error) {
	var stats WalkStats
	reg := e.Registry
	if reg == nil {
		return nil, stats, errors.New(errors.ErrCodeRegistryUnavailable, "no registry attached")
	}

	untracked, err := ResolveUntracked(reg)
	if err != nil {
		return nil, stats, err
	}
	parts, err := reg.Partitions()
	if err != nil {
		return nil, stats, errors.Wrap(errors.ErrCodeRegistryUnavailable, err, "enumerate partitions")
	}

	name := sel.name
	switch sel.mode {
	case selectAll:
		active, err := reg.ActivePartition()
		if err != nil {
			return nil, stats, errors.Wrap(errors.ErrCodeRegistryUnavailable, err, "read active partition")
		}
		doc := e.newDocument(reg)
		if active != nil {
			stats.Add(e.appendScene(ctx, doc.Root, active.Name, true, active.Path, active.Roots, opts))
		}
		for _, p := range parts {
			if !p.Loaded || (active != nil && p.Handle == active.Handle) {
				continue
			}
			stats.Add(e.appendScene(ctx, doc.Root, p.Name, false, p.Path, p.Roots, opts))
		}
		stats.Add(e.appendScene(ctx, doc.Root, UntrackedScene, true, "", untracked, opts))
		return doc, stats, nil

	case selectIndex:
		if sel.index < 0 || sel.index >= len(parts) || !parts[sel.index].Loaded {
			return nil, stats, nil
		}
		name = parts[sel.index].Name
	}

	if name == UntrackedScene {
		doc := e.newDocument(reg)
		doc.Root.Set("targetScene", name)
		stats.Add(e.appendScene(ctx, doc.Root, UntrackedScene, true, "", untracked, opts))
		return doc, stats, nil
	}

	target := findLoaded(parts, name)
	if target == nil {
		return nil, stats, nil
	}
	active, err := reg.ActivePartition()
	if err != nil {
		return nil, stats, errors.Wrap(errors.ErrCodeRegistryUnavailable, err, "read active partition")
	}
	isActive := active != nil && active.Handle == target.Handle

	doc := e.newDocument(reg)
	doc.Root.Set("targetScene", name)
	stats.Add(e.appendScene(ctx, doc.Root, target.Name, isActive, target.Path, target.Roots, opts))
	stats.Add(e.appendScene(ctx, doc.Root, UntrackedScene, true, "", untracked, opts))
	return doc, stats, nil
}

func (e *Engine) newDocument(reg scene.Registry) *document.Document {
	doc := document.New("Hierarchy")
	doc.Root.Set("exportTime", e.now().Format(TimeLayout))
	doc.Root.Set("unityVersion", reg.Version())
	return doc
}

func (e *Engine) appendScene(ctx context.Context, root *document.Element, name string, active bool, path string, roots []scene.Node, opts Options) WalkStats {
	el := root.AppendNew("Scene").
		Set("name", name).
		Set("active", formatBool(active)).
		Set("path", path)
	return e.WalkContext(ctx, roots, el, opts)
}

// findLoaded returns the first loaded partition named name.
func findLoaded(parts []*scene.Partition, name string) *scene.Partition {
	for _, p := range parts {
		if p.Loaded && p.Name == name {
			return p
		}
	}
	return nil
}
