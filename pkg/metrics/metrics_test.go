package metrics

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/observability"
)

func TestRecorder_WriteTextfile(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	r.OnExportStart(ctx, "*")
	r.OnNodeError(ctx, "Broken", stderrors.New("boom"))
	r.OnExportComplete(ctx, "*", 12, 1, 20*time.Millisecond, nil)
	r.OnExportComplete(ctx, "Nope", 0, 0, time.Millisecond, errors.New(errors.ErrCodeSceneNotFound, "scene Nope not found"))
	r.OnExportComplete(ctx, "*", 0, 0, time.Millisecond, errors.New(errors.ErrCodeRegistryUnavailable, "offline"))
	r.OnCacheMiss(ctx, "digest")
	r.OnCacheSet(ctx, "digest", 64)
	r.OnCacheHit(ctx, "digest")
	r.OnWrite(ctx, "/tmp/a.xml", 100)

	path := filepath.Join(t.TempDir(), "snapshoot.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		`snapshoot_exports_total{outcome="ok"} 1`,
		`snapshoot_exports_total{outcome="not_found"} 1`,
		`snapshoot_exports_total{outcome="error"} 1`,
		`snapshoot_nodes_exported_total 12`,
		`snapshoot_node_failures_total 1`,
		`snapshoot_cache_events_total{event="hit",key_type="digest"} 1`,
		`snapshoot_cache_events_total{event="miss",key_type="digest"} 1`,
		`snapshoot_files_written_total 1`,
		`snapshoot_bytes_written_total 100`,
		`snapshoot_export_duration_seconds_count 3`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestRecorder_Register(t *testing.T) {
	defer observability.Reset()
	r := NewRecorder()
	r.Register()

	if observability.Export() != observability.ExportHooks(r) {
		t.Error("Register() did not install export hooks")
	}
	if observability.Writer() != observability.WriterHooks(r) {
		t.Error("Register() did not install writer hooks")
	}
	if observability.Cache() != observability.CacheHooks(r) {
		t.Error("Register() did not install cache hooks")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{errors.New(errors.ErrCodeSceneNotFound, "x"), "not_found"},
		{stderrors.New("plain"), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
