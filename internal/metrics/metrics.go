package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ricirt/api-stub/internal/service"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
	HealthResponses *prometheus.CounterVec
	RateLimited     prometheus.Counter
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served, by route pattern and status.",
		}, []string{"method", "route", "status"}),

		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		HealthResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "health_responses_total",
			Help: "Health operations by outcome: ok (payload served) or empty (no example configured).",
		}, []string{"result"}),

		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_requests_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.HealthResponses,
		m.RateLimited,
	)

	return m
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// HealthObserver returns the hook expected by service.NewHealthService.
func (m *Metrics) HealthObserver() service.Observer {
	return func(served bool) {
		result := "ok"
		if !served {
			result = "empty"
		}
		m.HealthResponses.WithLabelValues(result).Inc()
	}
}
