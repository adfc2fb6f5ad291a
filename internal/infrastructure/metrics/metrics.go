package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fakenews"

// Pipeline stages used as the stage label of PipelineFailures
const (
	StageValidate = "validate"
	StageClassify = "classify"
	StageExplain  = "explain"
	StageAuth     = "authenticate"
	StagePersist  = "persist"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Detections          *prometheus.CounterVec
	PipelineFailures    *prometheus.CounterVec
	UpstreamDuration    *prometheus.HistogramVec
	ExplanationDegraded prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Persisted detections by label.",
		}, []string{"label"}),
		PipelineFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_failures_total",
			Help:      "Failed detection requests by pipeline stage.",
		}, []string{"stage"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream AI API calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"upstream", "outcome"}),
		ExplanationDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "explanations_degraded_total",
			Help:      "Explanations replaced by the placeholder after an upstream failure.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
	}

	reg.MustRegister(
		m.Detections,
		m.PipelineFailures,
		m.UpstreamDuration,
		m.ExplanationDegraded,
		m.HTTPRequests,
	)

	return m
}

// ObserveDetection counts a persisted detection
func (m *Metrics) ObserveDetection(label string) {
	if m == nil {
		return
	}
	m.Detections.WithLabelValues(label).Inc()
}

// ObserveFailure counts a request that failed at stage
func (m *Metrics) ObserveFailure(stage string) {
	if m == nil {
		return
	}
	m.PipelineFailures.WithLabelValues(stage).Inc()
}

// ObserveUpstream records the latency of one upstream call
func (m *Metrics) ObserveUpstream(upstream string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamDuration.WithLabelValues(upstream, outcome).Observe(time.Since(start).Seconds())
}

// ObserveDegradedExplanation counts a placeholder explanation
func (m *Metrics) ObserveDegradedExplanation() {
	if m == nil {
		return
	}
	m.ExplanationDegraded.Inc()
}

// ObserveHTTPRequest counts a served request
func (m *Metrics) ObserveHTTPRequest(method, path, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
}
