// Package metrics exports run statistics in the Prometheus text format so a
// node_exporter textfile collector can pick them up after each conversion.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"beadcolors/internal/pipeline"
)

const namespace = "beadcolors"

// Recorder holds the collectors for one run.
type Recorder struct {
	registry    *prometheus.Registry
	colors      *prometheus.GaugeVec
	anchors     *prometheus.CounterVec
	duplicates  *prometheus.CounterVec
	repaired    *prometheus.CounterVec
	failures    *prometheus.GaugeVec
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder registers the collectors on a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		colors: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "brand_colors",
			Help:      "Colors in each brand library after deduplication.",
		}, []string{"brand"}),
		anchors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_seen_total",
			Help:      "Swatch anchors found in the brand dump.",
		}, []string{"brand"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_dropped_total",
			Help:      "Records dropped because their code was already seen.",
		}, []string{"brand"}),
		repaired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "names_repaired_total",
			Help:      "Color names changed by text repair.",
		}, []string{"brand"}),
		failures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "brand_failed",
			Help:      "1 when the brand produced an empty library because of an error.",
		}, []string{"brand", "kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last conversion run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last conversion run finished.",
		}),
	}
	r.registry.MustRegister(r.colors, r.anchors, r.duplicates, r.repaired, r.failures, r.duration, r.lastSuccess)
	return r
}

// Record loads the statistics of result into the collectors.
func (r *Recorder) Record(result *pipeline.Result) {
	for _, report := range result.Reports {
		r.colors.WithLabelValues(report.Brand).Set(float64(report.Colors))
		r.anchors.WithLabelValues(report.Brand).Add(float64(report.Stats.Anchors))
		r.duplicates.WithLabelValues(report.Brand).Add(float64(report.Stats.Duplicates))
		r.repaired.WithLabelValues(report.Brand).Add(float64(report.Stats.Repaired))
		if kind := report.Kind(); kind != "" {
			r.failures.WithLabelValues(report.Brand, kind).Set(1)
		}
	}
	r.duration.Set(result.Finished.Sub(result.Started).Seconds())
	r.lastSuccess.Set(float64(result.Finished.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes the collected metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
