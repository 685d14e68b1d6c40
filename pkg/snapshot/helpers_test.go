package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/observability"
	"github.com/matzehuels/snapshoot/pkg/scene"
)

var fixedTime = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestEngine(reg scene.Registry) *Engine {
	e := NewEngine(reg, nil)
	e.Now = func() time.Time { return fixedTime }
	return e
}

// rootHidden builds the Main scene with an active Root and an inactive
// child Hidden.
func rootHidden() (*scene.MemoryRegistry, *scene.Object) {
	reg := scene.NewRegistry("2022.3.10f1")
	main := reg.AddPartition("Main", "Assets/Scenes/Main.unity")
	root := reg.NewObject("Root").SetPosition(1.0, 2.5000003, -0.0000001)
	root.AddChild(reg.NewObject("Hidden").SetActive(false))
	main.AddRoot(root)
	return reg, root
}

// chain creates root -> d1 -> d2 ... with n descendants below root.
func chain(reg *scene.MemoryRegistry, name string, n int) *scene.Object {
	root := reg.NewObject(name)
	cur := root
	for i := 1; i <= n; i++ {
		next := reg.NewObject(name + "-" + string(rune('0'+i)))
		cur.AddChild(next)
		cur = next
	}
	return root
}

func objectNames(el *document.Element) []string {
	var out []string
	for _, o := range el.FindAll("GameObject") {
		out = append(out, o.Attr("name"))
	}
	return out
}

func sceneNames(d *document.Document) []string {
	var out []string
	for _, s := range d.Root.ChildrenNamed("Scene") {
		out = append(out, s.Attr("name"))
	}
	return out
}

// panicNode is a node whose host binding panics when its frame is read.
type panicNode struct {
	*scene.Object
}

func (panicNode) Frame() (scene.Frame, error) {
	panic("binding lost")
}

type recordingHooks struct {
	observability.NoopExportHooks
	mu         sync.Mutex
	nodeErrors []string
	completed  []error
}

func (r *recordingHooks) OnNodeError(_ context.Context, node string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodeErrors = append(r.nodeErrors, node)
}

func (r *recordingHooks) OnExportComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, err)
}
