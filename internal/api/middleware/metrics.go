package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ricirt/api-stub/internal/metrics"
)

// RequestMetrics records count and latency per route pattern. Using the
// pattern rather than the raw path keeps label cardinality bounded.
func RequestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := wrapWriter(w, r)

			next.ServeHTTP(ww, r)

			m.ObserveRequest(r.Method, routePattern(r), statusOf(ww), time.Since(start))
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
