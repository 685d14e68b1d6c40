package snapshot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/observability"
	"github.com/matzehuels/snapshoot/pkg/scene"
)

// Engine exports a registry into hierarchy documents.
//
// An Engine holds no per-export state and may be reused. It is not safe to
// run two exports against the same mutable graph concurrently.
type Engine struct {
	Registry scene.Registry
	Logger   *log.Logger

	// Now stamps the export time. Defaults to time.Now.
	Now func() time.Time
}

// NewEngine returns an engine reading from reg. A nil logger discards
// output.
func NewEngine(reg scene.Registry, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{Registry: reg, Logger: logger, Now: time.Now}
}

func (e *Engine) logger() *log.Logger {
	if e.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return e.Logger
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// WalkStats summarizes one traversal.
type WalkStats struct {
	Visited         int // nodes written as GameObject elements
	SkippedDepth    int // nodes just below MaxDepth
	SkippedInactive int // inactive nodes whose subtree was left out
	Failed          int // nodes replaced by an error placeholder
}

// Add accumulates o into s.
func (s *WalkStats) Add(o WalkStats) {
	s.Visited += o.Visited
	s.SkippedDepth += o.SkippedDepth
	s.SkippedInactive += o.SkippedInactive
	s.Failed += o.Failed
}

// Walk visits each root and its subtree under opts, appending one element
// per visited node below into. Roots are at depth 0.
func (e *Engine) Walk(roots []scene.Node, into *document.Element, opts Options) WalkStats {
	return e.WalkContext(context.Background(), roots, into, opts)
}

// WalkContext is Walk with a context passed to observability hooks.
func (e *Engine) WalkContext(ctx context.Context, roots []scene.Node, into *document.Element, opts Options) WalkStats {
	w := &walker{ctx: ctx, engine: e, opts: opts}
	for _, r := range roots {
		w.visit(r, into, 0)
	}
	return w.stats
}

type walker struct {
	ctx    context.Context
	engine *Engine
	opts   Options
	stats  WalkStats
}

func (w *walker) visit(n scene.Node, into *document.Element, depth int) {
	if !w.opts.depthAllowed(depth) {
		w.stats.SkippedDepth++
		return
	}

	var (
		el       *document.Element
		children []scene.Node
		inactive bool
	)
	err := protect(func() error {
		if n == nil {
			return errNilNode
		}
		if !w.opts.IncludeInactiveObjects && !n.ActiveSelf() {
			inactive = true
			return nil
		}
		var err error
		if el, err = w.engine.Encode(n, w.opts); err != nil {
			return err
		}
		if w.opts.IncludeChildObjects {
			children = n.Children()
		}
		return nil
	})
	switch {
	case err != nil:
		w.fail(n, into, err)
		return
	case inactive:
		w.stats.SkippedInactive++
		return
	}

	into.Append(el)
	w.stats.Visited++
	for _, c := range children {
		w.visit(c, el, depth+1)
	}
}

// fail appends an error placeholder for n and reports the failure.
func (w *walker) fail(n scene.Node, into *document.Element, cause error) {
	name := nodeName(n)
	into.AppendNew("GameObject").
		Set("name", name).
		Set("error", cause.Error())
	w.stats.Failed++

	err := errors.Wrap(errors.ErrCodeNodeEncode, cause, "export %s", name)
	w.engine.logger().Warn("node export failed", "node", name, "path", nodePath(n), "err", cause)
	observability.Export().OnNodeError(w.ctx, name, err)
}

// nodeName reads n's name for a placeholder, falling back to "null" when
// the handle is nil or the read itself fails.
func nodeName(n scene.Node) (name string) {
	name = nullValue
	if n == nil {
		return name
	}
	_ = protect(func() error {
		name = n.Name()
		return nil
	})
	return name
}

// nodePath is scene.Path guarded against panicking bindings. It falls back
// to the node's name.
func nodePath(n scene.Node) (path string) {
	path = nodeName(n)
	if n == nil {
		return path
	}
	_ = protect(func() error {
		path = scene.Path(n)
		return nil
	})
	return path
}

// protect runs fn and converts a panic raised by a host binding into an
// error.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}
