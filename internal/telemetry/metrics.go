// Package telemetry collects Prometheus metrics for batch scoring runs.
package telemetry

import (
	"fmt"
	"time"

	"github.com/huangsam/rvss/schema"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	OutcomeScored = "scored"
	OutcomeFailed = "failed"

	vectorsTotalName = "rvss_vectors_total"
)

// Metrics holds the collectors for one batch run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	VectorsTotal  *prometheus.CounterVec
	SeverityTotal *prometheus.CounterVec
	ScoreValue    *prometheus.HistogramVec
	FilesRead     prometheus.Counter
	BatchDuration prometheus.Gauge
}

// NewMetrics creates and registers all batch metrics.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.VectorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: vectorsTotalName,
			Help: "Total number of vectors processed",
		},
		[]string{"system", "outcome"},
	)

	m.SeverityTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rvss_severity_total",
			Help: "Total number of scored vectors per severity rating",
		},
		[]string{"system", "severity"},
	)

	m.ScoreValue = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rvss_environmental_score",
			Help:    "Distribution of environmental scores",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
		[]string{"system"},
	)

	m.FilesRead = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rvss_files_read_total",
			Help: "Total number of vector files read",
		},
	)

	m.BatchDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rvss_batch_duration_seconds",
			Help: "Wall time of the last batch run in seconds",
		},
	)

	m.registry.MustRegister(m.VectorsTotal, m.SeverityTotal, m.ScoreValue, m.FilesRead, m.BatchDuration)
	return m
}

// Observe records one score result.
func (m *Metrics) Observe(res schema.ScoreResult) {
	system := res.System
	if system == "" {
		system = "unknown"
	}
	if res.Error != "" {
		m.VectorsTotal.WithLabelValues(system, OutcomeFailed).Inc()
		return
	}
	m.VectorsTotal.WithLabelValues(system, OutcomeScored).Inc()
	if res.Custom != nil {
		return
	}
	if res.Severity != "" {
		m.SeverityTotal.WithLabelValues(system, string(res.Severity)).Inc()
	}
	m.ScoreValue.WithLabelValues(system).Observe(res.Environmental)
}

// ObserveBatch records the file count and duration of a finished batch.
func (m *Metrics) ObserveBatch(files int, duration time.Duration) {
	m.FilesRead.Add(float64(files))
	m.BatchDuration.Set(duration.Seconds())
}

// Registry exposes the underlying registry as a gatherer.
func (m *Metrics) Registry() prometheus.Gatherer {
	return m.registry
}

// Totals returns the number of processed vectors per outcome.
func (m *Metrics) Totals() (map[string]int, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}
	totals := map[string]int{}
	for _, mf := range families {
		if mf.GetName() != vectorsTotalName {
			continue
		}
		for _, metric := range mf.GetMetric() {
			totals[labelValue(metric, "outcome")] += int(metric.GetCounter().GetValue())
		}
	}
	return totals, nil
}

// WriteToTextfile writes all metrics in the text exposition format, for
// pickup by the node_exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
