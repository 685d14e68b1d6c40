// Package export writes rendered hierarchy documents to disk.
//
// Files are named Hierarchy_<scene>_<yyyyMMdd_HHmmss>.<ext>, with the
// timestamp omitted when auto-timestamping is disabled. Every write goes
// to a uniquely named temporary file first and is renamed into place, so
// readers never observe a partial export.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/observability"
)

// timestampLayout is the layout of the file name timestamp.
const timestampLayout = "20060102_150405"

// AllScenesLabel names files that contain every scene.
const AllScenesLabel = "AllScenes"

// Writer places export files in Dir.
type Writer struct {
	Dir           string
	AutoTimestamp bool
	Now           func() time.Time
	Logger        *log.Logger
}

// NewWriter returns a writer for dir with timestamps enabled.
func NewWriter(dir string, logger *log.Logger) *Writer {
	return &Writer{Dir: dir, AutoTimestamp: true, Now: time.Now, Logger: logger}
}

// FileName returns the file name for an export of scene with extension
// ext (without the dot). An empty scene is labelled AllScenes.
func (w *Writer) FileName(scene, ext string) string {
	label := sanitize(scene)
	if label == "" {
		label = AllScenesLabel
	}
	name := "Hierarchy_" + label
	if w.AutoTimestamp {
		name += "_" + w.now().Format(timestampLayout)
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}

// Write stores data as name inside Dir and returns the final path. The
// directory is created when missing.
func (w *Writer) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := errors.ValidatePath(w.Dir); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", errors.New(errors.ErrCodeInvalidPath, "invalid export file name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(w.Dir, name)
	tmp := filepath.Join(w.Dir, "."+name+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename into %s: %w", path, err)
	}

	if w.Logger != nil {
		w.Logger.Debug("export written", "path", path, "bytes", len(data))
	}
	observability.Writer().OnWrite(ctx, path, len(data))
	return path, nil
}

// EnsureDir creates Dir if needed and returns its absolute path.
func (w *Writer) EnsureDir() (string, error) {
	if err := errors.ValidatePath(w.Dir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Abs(w.Dir)
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

// sanitize maps characters that are unsafe in file names to '_'.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return '_'
		case strings.ContainsRune(`<>:"/\|?*`, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
