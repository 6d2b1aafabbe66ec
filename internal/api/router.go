package api

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ricirt/api-stub/internal/api/handler"
	apimw "github.com/ricirt/api-stub/internal/api/middleware"
	"github.com/ricirt/api-stub/internal/metrics"
	"github.com/ricirt/api-stub/internal/ratelimiter"
	"github.com/ricirt/api-stub/internal/service"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(
	svc *service.HealthService,
	limiter *ratelimiter.ClientLimiters,
	m *metrics.Metrics,
	reg prometheus.Gatherer,
	allowedOrigins []string,
	trustedProxies []netip.Prefix,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)                      // recover panics, return 500
	r.Use(apimw.TrustedRealIP(trustedProxies)) // X-Forwarded-For / X-Real-IP from trusted proxies only
	r.Use(chimw.RequestSize(1 << 20))           // 1 MB max request body
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", apimw.CorrelationHeader},
		ExposedHeaders: []string{apimw.CorrelationHeader, "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(apimw.CorrelationID)
	r.Use(apimw.RequestLogger(logger))
	r.Use(apimw.RequestMetrics(m))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// --- handler instances ---
	hh := handler.NewHealthHandler(svc, logger)

	// --- routes ---
	// Raw Prometheus scrape endpoint, exempt from rate limiting.
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(limiter, logger, m.RateLimited.Inc))
		r.Get("/health", hh.Health)
	})

	return r
}
