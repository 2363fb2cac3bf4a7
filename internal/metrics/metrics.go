// Package metrics exposes Prometheus counters for the web and batch
// front ends. Counters only carry aggregate numbers, never PII values.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/raaihank/datascrub/internal/pii"
)

// Metrics bundles the collectors registered by New.
type Metrics struct {
	RunsTotal        *prometheus.CounterVec
	RecordsProcessed prometheus.Counter
	FieldsDetected   prometheus.Counter
	ReplacementsMade prometheus.Counter
}

// New registers the datascrub collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "datascrub_runs_total",
			Help: "Sanitization runs by outcome.",
		}, []string{"outcome"}),
		RecordsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "datascrub_records_processed_total",
			Help: "Records processed across all runs.",
		}),
		FieldsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "datascrub_pii_fields_detected_total",
			Help: "String fields found to contain at least one detection.",
		}),
		ReplacementsMade: promauto.NewCounter(prometheus.CounterOpts{
			Name: "datascrub_pii_replacements_total",
			Help: "Individual PII detections replaced.",
		}),
	}
}

// ObserveRun records the summary of one sanitization run.
func (m *Metrics) ObserveRun(result pii.Result) {
	outcome := "success"
	if !result.Success {
		outcome = "failure"
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RecordsProcessed.Add(float64(result.RecordsProcessed))
	m.FieldsDetected.Add(float64(result.FieldsDetected))
	m.ReplacementsMade.Add(float64(result.ReplacementsMade))
}
