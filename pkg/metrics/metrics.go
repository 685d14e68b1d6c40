// Package metrics records export activity with Prometheus.
//
// A [Recorder] implements the observability hook interfaces. The command
// line registers one when --metrics-file is given and writes the collected
// series in the node-exporter textfile format once the export finishes.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/observability"
)

// Recorder collects export, cache and writer metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	exportsTotal   *prometheus.CounterVec
	exportDuration prometheus.Histogram
	nodesExported  prometheus.Counter
	nodeFailures   prometheus.Counter
	cacheEvents    *prometheus.CounterVec
	bytesWritten   prometheus.Counter
	filesWritten   prometheus.Counter
	lastExport     prometheus.Gauge
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,

		exportsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshoot_exports_total",
				Help: "Exports attempted, by outcome",
			},
			[]string{"outcome"},
		),
		exportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "snapshoot_export_duration_seconds",
			Help:    "Time spent building an export document",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
		nodesExported: f.NewCounter(prometheus.CounterOpts{
			Name: "snapshoot_nodes_exported_total",
			Help: "GameObject elements written",
		}),
		nodeFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "snapshoot_node_failures_total",
			Help: "Nodes replaced by an error placeholder",
		}),
		cacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshoot_cache_events_total",
				Help: "Digest cache lookups and writes",
			},
			[]string{"event", "key_type"},
		),
		bytesWritten: f.NewCounter(prometheus.CounterOpts{
			Name: "snapshoot_bytes_written_total",
			Help: "Bytes written to export files",
		}),
		filesWritten: f.NewCounter(prometheus.CounterOpts{
			Name: "snapshoot_files_written_total",
			Help: "Export files written",
		}),
		lastExport: f.NewGauge(prometheus.GaugeOpts{
			Name: "snapshoot_last_export_timestamp_seconds",
			Help: "Unix time of the last completed export",
		}),
	}
}

// Registry returns the registry the recorder's series live on.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Register installs r as the export, cache and writer hooks.
func (r *Recorder) Register() {
	observability.SetExportHooks(r)
	observability.SetCacheHooks(r)
	observability.SetWriterHooks(r)
}

// WriteTextfile writes every series to path in the textfile collector
// format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// OnExportStart implements observability.ExportHooks.
func (r *Recorder) OnExportStart(context.Context, string) {}

// OnExportComplete implements observability.ExportHooks.
func (r *Recorder) OnExportComplete(_ context.Context, _ string, nodes, _ int, d time.Duration, err error) {
	r.exportsTotal.WithLabelValues(outcome(err)).Inc()
	r.exportDuration.Observe(d.Seconds())
	r.nodesExported.Add(float64(nodes))
	if err == nil {
		r.lastExport.SetToCurrentTime()
	}
}

// OnNodeError implements observability.ExportHooks.
func (r *Recorder) OnNodeError(context.Context, string, error) {
	r.nodeFailures.Inc()
}

// OnCacheHit implements observability.CacheHooks.
func (r *Recorder) OnCacheHit(_ context.Context, keyType string) {
	r.cacheEvents.WithLabelValues("hit", keyType).Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Recorder) OnCacheMiss(_ context.Context, keyType string) {
	r.cacheEvents.WithLabelValues("miss", keyType).Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Recorder) OnCacheSet(_ context.Context, keyType string, _ int) {
	r.cacheEvents.WithLabelValues("set", keyType).Inc()
}

// OnWrite implements observability.WriterHooks.
func (r *Recorder) OnWrite(_ context.Context, _ string, size int) {
	r.filesWritten.Inc()
	r.bytesWritten.Add(float64(size))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}

var (
	_ observability.ExportHooks = (*Recorder)(nil)
	_ observability.CacheHooks  = (*Recorder)(nil)
	_ observability.WriterHooks = (*Recorder)(nil)
)
