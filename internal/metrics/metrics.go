// Package metrics holds the Prometheus collectors of the front end.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend API calls
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinesuggest_backend_requests_total",
			Help: "Movie backend requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"}, // outcome: success, failure, rejected
	)

	BackendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinesuggest_backend_request_duration_seconds",
			Help:    "Movie backend request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinesuggest_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// View pipeline
	StaleResponsesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinesuggest_stale_responses_total",
			Help: "Backend responses dropped because a newer request owns the region",
		},
		[]string{"region"},
	)

	QuoteFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinesuggest_quote_fallbacks_total",
			Help: "Quotes served from the local list after a backend failure",
		},
	)

	ToastsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinesuggest_toasts_total",
			Help: "Toasts sent to sessions by kind",
		},
		[]string{"kind"},
	)

	PosterFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinesuggest_poster_fallbacks_total",
			Help: "Cards switched to the placeholder poster by source",
		},
		[]string{"source"}, // client, probe
	)

	// Websocket
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinesuggest_websocket_connections",
			Help: "Open websocket connections",
		},
	)
)

// ObserveBackend records one backend call.
func ObserveBackend(endpoint string, start time.Time, err error) {
	BackendLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	BackendRequests.WithLabelValues(endpoint, outcome).Inc()
}
