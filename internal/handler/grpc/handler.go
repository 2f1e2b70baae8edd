// Package grpc exposes the standard gRPC health service of the gateway.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/service"
	"github.com/MKhiriev/go-gateway/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// DefaultSyncInterval is used when no health check interval is configured.
const DefaultSyncInterval = 10 * time.Second

// Handler is the root gRPC transport handler.
//
// It publishes the result of the application health checks through the
// grpc.health.v1.Health service, both for the overall server ("") and for
// the registered service name.
type Handler struct {
	// services provides the health checks mirrored by the health service.
	services *service.Services

	health      *health.Server
	serviceName string
	interval    time.Duration

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. A non-positive interval falls back to
// [DefaultSyncInterval].
func NewHandler(services *service.Services, serviceName string, interval time.Duration, logger *logger.Logger) *Handler {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services:    services,
		health:      health.NewServer(),
		serviceName: serviceName,
		interval:    interval,
		logger:      logger,
	}
}

// Register mounts the health service on s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Sync runs the health checks once and publishes the result.
func (h *Handler) Sync(ctx context.Context) models.Health {
	result := h.services.HealthService.Check(ctx)

	status := healthpb.HealthCheckResponse_SERVING
	if !result.IsUp() {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		h.logger.Warn().Any("components", result.Components).Msg("publishing NOT_SERVING gRPC health status")
	}

	h.health.SetServingStatus("", status)
	if h.serviceName != "" {
		h.health.SetServingStatus(h.serviceName, status)
	}
	return result
}

// Run keeps the published status in sync until ctx is done, then reports
// every service as NOT_SERVING.
func (h *Handler) Run(ctx context.Context) {
	h.Sync(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			h.logger.Debug().Msg("gRPC health sync stopped")
			return
		case <-ticker.C:
			h.Sync(ctx)
		}
	}
}
