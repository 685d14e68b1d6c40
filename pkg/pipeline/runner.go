package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/snapshoot/pkg/cache"
	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/export"
	"github.com/matzehuels/snapshoot/pkg/observability"
	"github.com/matzehuels/snapshoot/pkg/scene"
	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

// digestKeyType labels digest lookups in cache hooks.
const digestKeyType = "digest"

// Runner executes exports with digest caching.
//
// The Runner keeps no per-export state. Multiple goroutines may use the
// same Runner with different options as long as they export different
// registries.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Now stamps the document and the file name. Defaults to time.Now.
	Now func() time.Time
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Now:    time.Now,
	}
}

// digestEntry is what the runner stores per export key.
type digestEntry struct {
	Digest string `json:"digest"`
	Path   string `json:"path"`
}

// Execute runs load → build → render → write.
//
// A selection that matches no loaded partition returns an error with code
// SCENE_NOT_FOUND. Registry failures are wrapped with
// REGISTRY_UNAVAILABLE.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1+2: Load and build
	result, err := r.build(ctx, opts)
	if err != nil {
		return nil, err
	}
	doc, walk := result.Document, result.Walk

	opts.Logger.Info("built hierarchy",
		"selection", opts.Selection.String(),
		"nodes", walk.Visited,
		"failed", walk.Failed,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	data, err := Render(ctx, doc, opts.Format, opts.Detailed)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Data = data
	result.Stats.RenderTime = time.Since(renderStart)

	digest, err := document.Digest(doc)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	result.Digest = digest

	if opts.Stdout {
		return result, nil
	}

	// Stage 4: Write
	writeStart := time.Now()
	key := r.digestKey(opts)
	// Timestamped exports always produce a new file.
	if !opts.Refresh && !opts.AutoTimestamp {
		if prev, ok := r.lookup(ctx, key, opts.Logger); ok && prev.Digest == digest && fileExists(prev.Path) {
			result.Unchanged = true
			result.Path = prev.Path
			opts.Logger.Info("export unchanged", "path", prev.Path)
			return result, nil
		}
	}

	w := export.NewWriter(opts.OutDir, opts.Logger)
	w.AutoTimestamp = opts.AutoTimestamp
	w.Now = r.now
	path, err := w.Write(ctx, w.FileName(result.Scene, opts.Format), data)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	result.Path = path
	result.Stats.WriteTime = time.Since(writeStart)

	r.store(ctx, key, digestEntry{Digest: digest, Path: path}, opts.Logger)

	opts.Logger.Info("wrote export",
		"path", path,
		"bytes", len(data),
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Build runs only the load and build stages.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return r.build(ctx, opts)
}

func (r *Runner) build(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	loadStart := time.Now()
	reg, err := r.load(opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	buildStart := time.Now()
	engine := snapshot.NewEngine(reg, opts.Logger)
	engine.Now = r.now
	doc, walk, err := engine.BuildContext(ctx, opts.Selection, opts.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if doc == nil {
		return nil, errors.New(errors.ErrCodeSceneNotFound, "scene %q is not loaded", opts.Selection.String())
	}
	result.Document = doc
	result.Walk = walk
	result.Scene = doc.Root.Attr("targetScene")
	result.Stats.BuildTime = time.Since(buildStart)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) load(opts Options) (scene.Registry, error) {
	if opts.Registry != nil {
		return opts.Registry, nil
	}
	reg, err := scene.LoadFile(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	opts.Logger.Debug("loaded scene dump", "path", opts.Source, "objects", reg.Len())
	return reg, nil
}

// digestKey scopes the key by output directory so that exports to
// different directories never share an entry.
func (r *Runner) digestKey(opts Options) string {
	dir, err := filepath.Abs(opts.OutDir)
	if err != nil {
		dir = opts.OutDir
	}
	source := opts.Source
	if abs, err := filepath.Abs(source); err == nil && source != "" {
		source = abs
	}
	keyer := cache.NewScopedKeyer(r.Keyer, "dir:"+cache.Hash([]byte(dir))+":")
	return keyer.DigestKey(source, opts.Selection.String(), opts.DigestKeyOpts())
}

// lookup returns the stored entry for key. Cache failures count as misses.
func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (digestEntry, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("digest cache read failed", "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, digestKeyType)
		return digestEntry{}, false
	}
	var entry digestEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		hooks.OnCacheMiss(ctx, digestKeyType)
		return digestEntry{}, false
	}
	hooks.OnCacheHit(ctx, digestKeyType)
	return entry, true
}

func (r *Runner) store(ctx context.Context, key string, entry digestEntry, logger *log.Logger) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLDigest); err != nil {
		logger.Warn("digest cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, digestKeyType, len(data))
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
