// Package observability provides hooks for metrics and tracing of exports.
//
// The engine and the file writer call hooks through a global registry
// instead of depending on a metrics backend. Hooks default to no-ops; the
// command line registers a Prometheus recorder from pkg/metrics when asked
// to write a metrics file.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(recorder)
//	    observability.SetWriterHooks(recorder)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, scene)
//	// ... walk the graph ...
//	observability.Export().OnExportComplete(ctx, scene, nodes, failed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the snapshot engine.
type ExportHooks interface {
	// OnExportStart is called before the first element is produced.
	// scene is the requested partition name, or "" for all partitions.
	OnExportStart(ctx context.Context, scene string)

	// OnExportComplete is called once per export with the number of nodes
	// written and the number replaced by error placeholders.
	OnExportComplete(ctx context.Context, scene string, nodes, failed int, duration time.Duration, err error)

	// OnNodeError is called for every node whose encoding failed.
	OnNodeError(ctx context.Context, node string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from digest cache lookups.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Writer Hooks
// =============================================================================

// WriterHooks receives events from the export file writer.
type WriterHooks interface {
	// OnWrite is called after a file has been written and renamed into place.
	OnWrite(ctx context.Context, path string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopExportHooks) OnNodeError(context.Context, string, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopWriterHooks is a no-op implementation of WriterHooks.
type NoopWriterHooks struct{}

func (NoopWriterHooks) OnWrite(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks ExportHooks = NoopExportHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	writerHooks WriterHooks = NoopWriterHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetWriterHooks registers custom writer hooks.
func SetWriterHooks(h WriterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		writerHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Writer returns the registered writer hooks.
func Writer() WriterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return writerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	cacheHooks = NoopCacheHooks{}
	writerHooks = NoopWriterHooks{}
}
