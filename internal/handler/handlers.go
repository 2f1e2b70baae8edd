package handler

import (
	"github.com/MKhiriev/go-gateway/internal/auth"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/handler/grpc"
	"github.com/MKhiriev/go-gateway/internal/handler/http"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/service"
	"github.com/MKhiriev/go-gateway/internal/session"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, sessions *session.Manager, flow *auth.Flow, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.Port > 0 {
		handlers.HTTP = http.NewHandler(services, sessions, flow, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, cfg.Consul.ServiceName, cfg.Consul.HealthCheckInterval, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
