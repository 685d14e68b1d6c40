package snapshot

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/snapshoot/pkg/document"
	snaperrors "github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/observability"
	"github.com/matzehuels/snapshoot/pkg/scene"
)

// multiScene builds Main (active), Level (loaded), Unloaded (not loaded)
// and one untracked root Manager with a child.
func multiScene() *scene.MemoryRegistry {
	reg := scene.NewRegistry("2022.3.10f1")

	main := reg.AddPartition("Main", "Assets/Scenes/Main.unity")
	main.AddRoot(reg.NewObject("Camera"), reg.NewObject("Light"))

	level := reg.AddPartition("Level", "Assets/Scenes/Level.unity")
	level.AddRoot(reg.NewObject("Terrain"))

	unloaded := reg.AddPartition("Unloaded", "Assets/Scenes/Unloaded.unity")
	unloaded.Loaded = false
	unloaded.AddRoot(reg.NewObject("Ghost"))

	manager := reg.NewObject("Manager")
	manager.AddChild(reg.NewObject("Pool"))
	return reg
}

func countUntracked(t *testing.T, d *document.Document) *document.Element {
	t.Helper()
	var found []*document.Element
	for _, s := range d.Root.ChildrenNamed("Scene") {
		if s.Attr("name") == UntrackedScene {
			found = append(found, s)
		}
	}
	if len(found) != 1 {
		t.Fatalf("found %d %s scenes, want exactly 1", len(found), UntrackedScene)
	}
	return found[0]
}

func TestBuild_AllScenes(t *testing.T) {
	reg := multiScene()
	level, _ := reg.Partition("Level")
	reg.SetActive(level)

	doc, ok, err := newTestEngine(reg).Build(AllScenes(), DefaultOptions())
	if err != nil || !ok {
		t.Fatalf("Build() = ok %v, err %v", ok, err)
	}

	if got := doc.Root.Attr("exportTime"); got != "2024-05-06 07:08:09" {
		t.Errorf("exportTime = %q", got)
	}
	if got := doc.Root.Attr("unityVersion"); got != "2022.3.10f1" {
		t.Errorf("unityVersion = %q", got)
	}
	if _, ok := doc.Root.Get("targetScene"); ok {
		t.Error("targetScene should be absent in all-scenes mode")
	}

	if got := sceneNames(doc); !slices.Equal(got, []string{"Level", "Main", UntrackedScene}) {
		t.Fatalf("scenes = %v", got)
	}
	scenes := doc.Root.Children
	wantActive := []string{"true", "false", "true"}
	wantPath := []string{"Assets/Scenes/Level.unity", "Assets/Scenes/Main.unity", ""}
	for i, s := range scenes {
		if s.Attr("active") != wantActive[i] {
			t.Errorf("scene %s active = %s, want %s", s.Attr("name"), s.Attr("active"), wantActive[i])
		}
		if v, ok := s.Get("path"); !ok || v != wantPath[i] {
			t.Errorf("scene %s path = %q, want %q", s.Attr("name"), v, wantPath[i])
		}
	}

	ddol := countUntracked(t, doc)
	if got := objectNames(ddol); !slices.Equal(got, []string{"Manager", "Pool"}) {
		t.Errorf("untracked objects = %v, want [Manager Pool]", got)
	}
	if len(ddol.ChildrenNamed("GameObject")) != 1 {
		t.Error("Pool must be nested under Manager, not listed as a root")
	}
}

func TestBuild_EmptyUntrackedSceneStillWritten(t *testing.T) {
	reg := scene.NewRegistry("v")
	reg.AddPartition("Main", "").AddRoot(reg.NewObject("Only"))

	doc, ok, err := newTestEngine(reg).Build(AllScenes(), DefaultOptions())
	if err != nil || !ok {
		t.Fatalf("Build() = ok %v, err %v", ok, err)
	}
	ddol := countUntracked(t, doc)
	if len(ddol.Children) != 0 {
		t.Errorf("untracked scene has %d children, want 0", len(ddol.Children))
	}
	if ddol.Attr("active") != "true" {
		t.Error("untracked scene must be active")
	}
}

func TestBuild_SceneNamed(t *testing.T) {
	reg := multiScene()

	doc, ok, err := newTestEngine(reg).Build(SceneNamed("Level"), DefaultOptions())
	if err != nil || !ok {
		t.Fatalf("Build() = ok %v, err %v", ok, err)
	}
	if got := doc.Root.Attr("targetScene"); got != "Level" {
		t.Errorf("targetScene = %q, want Level", got)
	}
	if got := sceneNames(doc); !slices.Equal(got, []string{"Level", UntrackedScene}) {
		t.Errorf("scenes = %v, want [Level %s]", got, UntrackedScene)
	}
	if got := doc.Root.Children[0].Attr("active"); got != "false" {
		t.Errorf("Level active = %s, want false", got)
	}
}

func TestBuild_SceneNamedUntracked(t *testing.T) {
	reg := multiScene()

	doc, ok, err := newTestEngine(reg).Build(SceneNamed(UntrackedScene), DefaultOptions())
	if err != nil || !ok {
		t.Fatalf("Build() = ok %v, err %v", ok, err)
	}
	if got := sceneNames(doc); !slices.Equal(got, []string{UntrackedScene}) {
		t.Errorf("scenes = %v, want only %s", got, UntrackedScene)
	}
	if doc.Root.Attr("targetScene") != UntrackedScene {
		t.Errorf("targetScene = %q", doc.Root.Attr("targetScene"))
	}
}

func TestBuild_NotFound(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetExportHooks(hooks)
	defer observability.Reset()

	reg := multiScene()
	tests := []struct {
		name string
		sel  Selection
	}{
		{"unknown name", SceneNamed("DoesNotExist")},
		{"unloaded by name", SceneNamed("Unloaded")},
		{"case sensitive", SceneNamed("main")},
		{"negative index", SceneAt(-1)},
		{"index out of range", SceneAt(3)},
		{"unloaded by index", SceneAt(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, ok, err := newTestEngine(reg).Build(tt.sel, DefaultOptions())
			if err != nil {
				t.Fatalf("Build() error = %v, want nil", err)
			}
			if ok || doc != nil {
				t.Errorf("Build() = (%v, %v), want not found", doc, ok)
			}
		})
	}
	for _, err := range hooks.completed {
		if !snaperrors.Is(err, snaperrors.ErrCodeSceneNotFound) {
			t.Errorf("OnExportComplete err = %v, want SCENE_NOT_FOUND", err)
		}
	}
}

func TestBuild_SceneAt(t *testing.T) {
	reg := multiScene()

	doc, ok, err := newTestEngine(reg).Build(SceneAt(1), DefaultOptions())
	if err != nil || !ok {
		t.Fatalf("Build() = ok %v, err %v", ok, err)
	}
	if got := sceneNames(doc); !slices.Equal(got, []string{"Level", UntrackedScene}) {
		t.Errorf("scenes = %v", got)
	}
	if doc.Root.Attr("targetScene") != "Level" {
		t.Errorf("targetScene = %q, want Level", doc.Root.Attr("targetScene"))
	}
}

func TestBuild_DuplicateNamesFirstLoadedWins(t *testing.T) {
	reg := scene.NewRegistry("v")
	first := reg.AddPartition("Dup", "a.unity")
	first.Loaded = false
	first.AddRoot(reg.NewObject("A"))
	reg.AddPartition("Dup", "b.unity").AddRoot(reg.NewObject("B"))
	reg.AddPartition("Dup", "c.unity").AddRoot(reg.NewObject("C"))

	doc, ok, _ := newTestEngine(reg).Build(SceneNamed("Dup"), DefaultOptions())
	if !ok {
		t.Fatal("Build() not found")
	}
	if got := doc.Root.Children[0].Attr("path"); got != "b.unity" {
		t.Errorf("path = %q, want b.unity", got)
	}
}

func TestBuild_RegistryFailureIsFatal(t *testing.T) {
	reg := multiScene()
	reg.Fail(errors.New("registry offline"))

	for _, sel := range []Selection{AllScenes(), SceneNamed("Main"), SceneAt(0)} {
		doc, ok, err := newTestEngine(reg).Build(sel, DefaultOptions())
		if err == nil {
			t.Fatalf("Build(%s) error = nil, want fatal", sel)
		}
		if !snaperrors.Is(err, snaperrors.ErrCodeRegistryUnavailable) {
			t.Errorf("Build(%s) code = %s, want REGISTRY_UNAVAILABLE", sel, snaperrors.GetCode(err))
		}
		if doc != nil || ok {
			t.Errorf("Build(%s) produced a document on fatal error", sel)
		}
	}

	if _, _, err := (&Engine{}).Build(AllScenes(), DefaultOptions()); !snaperrors.Is(err, snaperrors.ErrCodeRegistryUnavailable) {
		t.Errorf("Build() without registry error = %v", err)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	reg := multiScene()
	e := newTestEngine(reg)

	first, _, _ := e.Build(AllScenes(), DefaultOptions())
	e.Now = func() time.Time { return fixedTime.Add(time.Hour) }
	second, _, _ := e.Build(AllScenes(), DefaultOptions())

	if first.Root.Attr("exportTime") == second.Root.Attr("exportTime") {
		t.Fatal("exportTime should differ between the two exports")
	}
	second.Root.Set("exportTime", first.Root.Attr("exportTime"))

	a, _ := document.MarshalXML(first)
	b, _ := document.MarshalXML(second)
	if string(a) != string(b) {
		t.Errorf("exports differ beyond exportTime:\n%s\n---\n%s", a, b)
	}
}

func TestBuild_RootHiddenScenario(t *testing.T) {
	reg, _ := rootHidden()

	doc, _, err := newTestEngine(reg).Build(AllScenes(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	names := objectNames(doc.Root)
	if slices.Contains(names, "Hidden") {
		t.Error("Hidden exported with default options")
	}
	var root *document.Element
	for _, o := range doc.Root.FindAll("GameObject") {
		if o.Attr("name") == "Root" {
			root = o
		}
	}
	if root == nil {
		t.Fatal("Root not exported")
	}
	pos := root.Child("Position")
	if pos.Attr("x") != "1" || pos.Attr("y") != "2.5" || pos.Attr("z") != "0" {
		t.Errorf("Position = %+v", pos.Attrs)
	}
}

func TestBuildContext_Stats(t *testing.T) {
	reg := multiScene()
	doc, stats, err := newTestEngine(reg).BuildContext(t.Context(), AllScenes(), DefaultOptions())
	if err != nil || doc == nil {
		t.Fatalf("BuildContext() = %v, %v", doc, err)
	}
	if stats.Visited != 5 {
		t.Errorf("Visited = %d, want 5", stats.Visited)
	}
}

func TestSelection_String(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{AllScenes(), "*"},
		{SceneNamed("Main"), "Main"},
		{SceneAt(2), "#2"},
	}
	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if !AllScenes().IsAll() || SceneNamed("x").IsAll() {
		t.Error("IsAll mismatch")
	}
}
