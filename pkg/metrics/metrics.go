// Package metrics exports Prometheus counters for the summarization pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the pipeline reports into. Nop satisfies it for tests and CLI runs.
type Recorder interface {
	ObserveSummarize(sourceType, outcome string)
	ObserveCompletion(provider string, d time.Duration, err error)
	ObserveDegraded(sourceType string)
}

type PrometheusRecorder struct {
	registry *prometheus.Registry

	summarizeTotal    *prometheus.CounterVec
	completionLatency *prometheus.HistogramVec
	completionErrors  *prometheus.CounterVec
	degradedTotal     *prometheus.CounterVec
}

func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{registry: prometheus.NewRegistry()}

	r.summarizeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulse",
			Subsystem: "summary",
			Name:      "requests_total",
			Help:      "Summarization requests by source type and outcome",
		},
		[]string{"source_type", "outcome"},
	)
	r.completionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pulse",
			Subsystem: "ai",
			Name:      "completion_latency_seconds",
			Help:      "Completion service latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)
	r.completionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulse",
			Subsystem: "ai",
			Name:      "completion_errors_total",
			Help:      "Failed completion calls",
		},
		[]string{"provider"},
	)
	r.degradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pulse",
			Subsystem: "summary",
			Name:      "degraded_total",
			Help:      "Verdicts produced by fallback extraction",
		},
		[]string{"source_type"},
	)

	r.registry.MustRegister(r.summarizeTotal, r.completionLatency, r.completionErrors, r.degradedTotal)
	return r
}

func (r *PrometheusRecorder) ObserveSummarize(sourceType, outcome string) {
	r.summarizeTotal.WithLabelValues(sourceType, outcome).Inc()
}

func (r *PrometheusRecorder) ObserveCompletion(provider string, d time.Duration, err error) {
	r.completionLatency.WithLabelValues(provider).Observe(d.Seconds())
	if err != nil {
		r.completionErrors.WithLabelValues(provider).Inc()
	}
}

func (r *PrometheusRecorder) ObserveDegraded(sourceType string) {
	r.degradedTotal.WithLabelValues(sourceType).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

type Nop struct{}

func (Nop) ObserveSummarize(string, string)                {}
func (Nop) ObserveCompletion(string, time.Duration, error) {}
func (Nop) ObserveDegraded(string)                         {}
