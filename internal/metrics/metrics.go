// Package metrics provides Prometheus instrumentation for pipeline runs.
// The pipeline is a batch job, so metrics are written to a node_exporter
// textfile at the end of a run instead of being scraped.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all pipeline metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Kanji lookups by provider and outcome (ok, not_found, error, timeout, cached).
	FetchOutcome *prometheus.CounterVec

	// Kanji lookup latency by provider.
	FetchLatency *prometheus.HistogramVec

	// Phase durations of the last run.
	PhaseDuration *prometheus.GaugeVec

	// Output row counts of the last run by dataset (vocabulary, kanji, kana).
	Rows *prometheus.GaugeVec

	// Characters that contributed zero strokes because no table knew them.
	UnknownCharacters prometheus.Gauge

	LastSuccess prometheus.Gauge
}

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		FetchOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nihongo_kanji_fetch_total",
			Help: "Kanji information lookups by provider and outcome",
		}, []string{"provider", "outcome"}),

		FetchLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nihongo_kanji_fetch_duration_seconds",
			Help:    "Duration of kanji information lookups by provider",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),

		PhaseDuration: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nihongo_pipeline_phase_duration_seconds",
			Help: "Duration of each pipeline phase in the last run",
		}, []string{"phase"}),

		Rows: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nihongo_pipeline_rows",
			Help: "Rows produced by the last run per dataset",
		}, []string{"dataset"}),

		UnknownCharacters: f.NewGauge(prometheus.GaugeOpts{
			Name: "nihongo_pipeline_unknown_characters",
			Help: "Character positions without a stroke count in the last run",
		}),

		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "nihongo_pipeline_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
	}
}

// Registry exposes the underlying registry (for tests and custom exporters).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records one kanji lookup.
func (m *Metrics) ObserveFetch(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchOutcome.WithLabelValues(provider, outcome).Inc()
	if outcome != "cached" {
		m.FetchLatency.WithLabelValues(provider).Observe(d.Seconds())
	}
}

// ObservePhase records the duration of a pipeline phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m != nil {
		m.PhaseDuration.WithLabelValues(phase).Set(d.Seconds())
	}
}

// SetRows records the number of rows produced for a dataset.
func (m *Metrics) SetRows(dataset string, n int) {
	if m != nil {
		m.Rows.WithLabelValues(dataset).Set(float64(n))
	}
}

// SetUnknownCharacters records the zero-stroke character count.
func (m *Metrics) SetUnknownCharacters(n int) {
	if m != nil {
		m.UnknownCharacters.Set(float64(n))
	}
}

// MarkSuccess stamps the last successful run time.
func (m *Metrics) MarkSuccess(at time.Time) {
	if m != nil {
		m.LastSuccess.Set(float64(at.Unix()))
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write textfile %s: %w", path, err)
	}
	return nil
}
