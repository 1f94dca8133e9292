package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	requestsTotal      *prometheus.CounterVec
	latencySeconds     *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	extractionSeconds  prometheus.Histogram
	extractionFailures prometheus.Counter
	eventsPublished    *prometheus.CounterVec
	wsConnections      prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the playground API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playground_requests_total",
			Help: "Total number of playground API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "playground_latency_seconds",
			Help:    "Latency distribution for playground API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playground_errors_total",
			Help: "Total number of error responses returned by playground endpoints.",
		}, []string{"method", "route", "status"})

		extractionSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "playground_extraction_duration_seconds",
			Help:    "Duration of attachment content extraction jobs.",
			Buckets: prometheus.DefBuckets,
		})

		extractionFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playground_extraction_failures_total",
			Help: "Number of attachment extraction jobs that failed.",
		})

		eventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playground_events_published_total",
			Help: "Session events fanned out to websocket subscribers.",
		}, []string{"type"})

		wsConnections = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playground_ws_connections_total",
			Help: "Total websocket event-stream connections accepted.",
		})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal,
			extractionSeconds, extractionFailures, eventsPublished, wsConnections)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// ExtractionDuration exposes the histogram for extraction job durations.
func ExtractionDuration() prometheus.Histogram {
	RegisterMetrics()
	return extractionSeconds
}

// ExtractionFailures exposes the counter for failed extraction jobs.
func ExtractionFailures() prometheus.Counter {
	RegisterMetrics()
	return extractionFailures
}

// EventsPublished exposes the counter for fanned-out session events.
func EventsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsPublished
}

// WSConnections exposes the counter for accepted websocket connections.
func WSConnections() prometheus.Counter {
	RegisterMetrics()
	return wsConnections
}
