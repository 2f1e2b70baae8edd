package http

import (
	"net/http"

	"github.com/MKhiriev/go-gateway/internal/app"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"golang.org/x/time/rate"
)

// newLimiter returns the global token bucket, or nil when RPS is not
// positive. A non-positive burst is raised to 1.
func newLimiter(cfg config.RateLimit) *rate.Limiter {
	if cfg.RPS <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RPS), burst)
}

func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		logger.FromRequest(r).Warn().Str("uri", r.RequestURI).Msg("rate limit exceeded")
		w.Header().Set("Retry-After", "1")
		utils.WriteProblem(w, r, http.StatusTooManyRequests, app.MsgRateLimitExceeded)
	})
}
