// Package metrics provides Prometheus metrics for the notes pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meeting_notes"

// Metrics holds all Prometheus metrics for the pipeline.
type Metrics struct {
	// Run metrics
	RunsTotal   prometheus.Counter
	RunsFailed  *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Summarisation metrics
	ChunksPerRun       prometheus.Histogram
	CompletionLatency  *prometheus.HistogramVec
	CompletionErrors   *prometheus.CounterVec
	ReduceDepthReached prometheus.Histogram

	// Persistence metrics
	ArtifactWrites       *prometheus.CounterVec
	NotificationsSent    prometheus.Counter
	NotificationFailures prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of pipeline invocations",
		}),
		RunsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_failed_total",
			Help:      "Total number of failed pipeline invocations",
		}, []string{"stage"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of pipeline invocations in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 900},
		}),

		ChunksPerRun: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunks_per_run",
			Help:      "Number of transcript chunks summarised per invocation",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200},
		}),
		CompletionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_latency_seconds",
			Help:      "Latency of text-completion calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}, []string{"phase"}),
		CompletionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_errors_total",
			Help:      "Total number of failed text-completion calls",
		}, []string{"phase"}),
		ReduceDepthReached: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reduce_depth",
			Help:      "Number of collapse levels needed before the final combine",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}),

		ArtifactWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_writes_total",
			Help:      "Total number of artifacts written to the object store",
		}, []string{"kind"}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of notifications handed to the notifier",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Total number of notifications that failed to send",
		}),
	}
}

// RecordCompletion records the outcome of one completion call.
func (m *Metrics) RecordCompletion(phase string, err error, seconds float64) {
	m.CompletionLatency.WithLabelValues(phase).Observe(seconds)
	if err != nil {
		m.CompletionErrors.WithLabelValues(phase).Inc()
	}
}

// RecordRun records the outcome of one invocation. stage is empty on success.
func (m *Metrics) RecordRun(stage string, seconds float64) {
	m.RunsTotal.Inc()
	m.RunDuration.Observe(seconds)
	if stage != "" {
		m.RunsFailed.WithLabelValues(stage).Inc()
	}
}
