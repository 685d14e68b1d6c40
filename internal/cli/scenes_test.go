package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

func TestSceneRows(t *testing.T) {
	rows, err := sceneRows(loadLevel(t))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"0", "Main", "Assets/Scenes/Main.unity", "yes", "yes", "1"},
		{"1", "Additive", "Assets/Scenes/Additive.unity", "no", "no", "0"},
		{"", snapshot.UntrackedScene, "", "yes", "yes", "1"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestScenesCommand(t *testing.T) {
	cfg := testEnv(t)
	out, err := runCLI(t, cfg, "scenes", levelDump)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"Main", "Additive", snapshot.UntrackedScene, "2022.3.10f1"} {
		if !strings.Contains(out, s) {
			t.Errorf("scenes output missing %q", s)
		}
	}
}
