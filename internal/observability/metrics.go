package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	gradingsTotal          *prometheus.CounterVec
	gradingDurationSeconds prometheus.Histogram
	idsAllocatedTotal      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessly_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assessly_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		gradingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessly_gradings_total",
			Help: "Total number of submissions graded, labelled by outcome.",
		}, []string{"status"})

		gradingDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "assessly_grading_duration_seconds",
			Help:    "Time spent grading a submission end to end.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		idsAllocatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessly_ids_allocated_total",
			Help: "Total number of sequential IDs handed out, labelled by kind.",
		}, []string{"kind"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, gradingsTotal, gradingDurationSeconds, idsAllocatedTotal)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// Gradings exposes the grading outcome counter.
func Gradings() *prometheus.CounterVec {
	RegisterMetrics()
	return gradingsTotal
}

// GradingDuration exposes the grading latency histogram.
func GradingDuration() prometheus.Histogram {
	RegisterMetrics()
	return gradingDurationSeconds
}

// IDsAllocated exposes the allocation counter.
func IDsAllocated() *prometheus.CounterVec {
	RegisterMetrics()
	return idsAllocatedTotal
}
