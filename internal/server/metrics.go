package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the service. Each server
// owns its own registry so tests can construct servers freely.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	AnalysisDuration *prometheus.HistogramVec
	AnalysisErrors   *prometheus.CounterVec
	ScoresObserved   *prometheus.HistogramVec
	ActiveSessions   prometheus.Gauge
}

// NewMetrics creates and registers the service instruments.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "symptom_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "symptom_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),

		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "symptom_analysis_duration_seconds",
				Help:    "Time spent scoring one capture",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"kind"},
		),

		AnalysisErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "symptom_analysis_errors_total",
				Help: "Analysis requests rejected before scoring",
			},
			[]string{"kind", "code"},
		),

		ScoresObserved: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "symptom_scores",
				Help:    "Distribution of composite scores on the 0-10 scale",
				Buckets: prometheus.LinearBuckets(0, 0.5, 21),
			},
			[]string{"kind"},
		),

		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "symptom_active_sessions",
				Help: "Streaming sessions currently open",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.AnalysisDuration,
		m.AnalysisErrors,
		m.ScoresObserved,
		m.ActiveSessions,
	)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
