package snapshot

import (
	"errors"
	"slices"
	"testing"

	snaperrors "github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/scene"
)

func names(nodes []scene.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestResolveUntracked(t *testing.T) {
	reg := scene.NewRegistry("v")
	reg.NewObject("OrphanA")
	main := reg.AddPartition("Main", "")
	root := reg.NewObject("SceneRoot")
	root.AddChild(reg.NewObject("SceneChild"))
	main.AddRoot(root)
	b := reg.NewObject("OrphanB")
	b.AddChild(reg.NewObject("OrphanChild"))

	got, err := ResolveUntracked(reg)
	if err != nil {
		t.Fatalf("ResolveUntracked() error: %v", err)
	}
	if want := []string{"OrphanA", "OrphanB"}; !slices.Equal(names(got), want) {
		t.Errorf("ResolveUntracked() = %v, want %v", names(got), want)
	}
}

func TestResolveUntracked_UnloadedPartitionsSubtracted(t *testing.T) {
	reg := scene.NewRegistry("v")
	p := reg.AddPartition("Streaming", "")
	p.Loaded = false
	p.AddRoot(reg.NewObject("StreamingRoot"))

	got, err := ResolveUntracked(reg)
	if err != nil {
		t.Fatalf("ResolveUntracked() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ResolveUntracked() = %v, want none", names(got))
	}
}

func TestResolveUntracked_NotCached(t *testing.T) {
	reg := scene.NewRegistry("v")
	reg.NewObject("First")

	first, _ := ResolveUntracked(reg)
	reg.NewObject("Second")
	second, _ := ResolveUntracked(reg)

	if len(first) != 1 || len(second) != 2 {
		t.Errorf("got %d then %d untracked roots, want 1 then 2", len(first), len(second))
	}
}

func TestResolveUntracked_RegistryError(t *testing.T) {
	reg := scene.NewRegistry("v")
	reg.Fail(errors.New("gone"))

	_, err := ResolveUntracked(reg)
	if !snaperrors.Is(err, snaperrors.ErrCodeRegistryUnavailable) {
		t.Errorf("ResolveUntracked() error = %v, want REGISTRY_UNAVAILABLE", err)
	}
}
