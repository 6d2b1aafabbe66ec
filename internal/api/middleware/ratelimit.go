package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/api-stub/internal/domain"
	"github.com/ricirt/api-stub/internal/ratelimiter"
)

// RateLimit rejects requests once the client's token bucket is empty with
// 429 and a Retry-After header. The client key is the remote IP; behind a
// proxy, TrustedRealIP must run first. onReject is optional.
func RateLimit(limiter *ratelimiter.ClientLimiters, logger *zap.Logger, onReject func()) func(http.Handler) http.Handler {
	if onReject == nil {
		onReject = func() {}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			allowed, retryAfter := limiter.Allow(key)
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			onReject()
			logger.Debug("rate limited",
				zap.String("client", key),
				zap.Duration("retry_after", retryAfter),
				zap.String("correlation_id", GetCorrelationID(r.Context())),
			)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
			w.Header().Set("Content-Type", domain.ContentTypeJSON)
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": domain.ErrRateLimited.Error()})
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	return r.RemoteAddr
}

func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
