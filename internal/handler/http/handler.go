package http

import (
	"github.com/MKhiriev/go-gateway/internal/auth"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/service"
	"github.com/MKhiriev/go-gateway/internal/session"
	"golang.org/x/time/rate"
)

// Handler owns the HTTP routes of the gateway. auth is nil when no identity
// provider is configured; login then answers 503.
type Handler struct {
	services *service.Services
	sessions *session.Manager
	auth     *auth.Flow
	cfg      *config.StructuredConfig

	metrics *metrics
	limiter *rate.Limiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions *session.Manager, flow *auth.Flow, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		sessions: sessions,
		auth:     flow,
		cfg:      cfg,
		metrics:  newMetrics(),
		limiter:  newLimiter(cfg.Server.RateLimit),
		logger:   logger,
	}
}
