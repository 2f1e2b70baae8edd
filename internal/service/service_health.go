package service

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/models"
)

// healthCheckTimeout bounds every component check.
const healthCheckTimeout = 2 * time.Second

// HealthChecker reports the health of one dependency.
type HealthChecker func(ctx context.Context) error

type healthService struct {
	checks map[string]HealthChecker
	logger *logger.Logger
}

// NewHealthService returns a [HealthService] running the named checks.
func NewHealthService(checks map[string]HealthChecker, logger *logger.Logger) HealthService {
	return &healthService{
		checks: checks,
		logger: logger,
	}
}

// Check runs every check and reports DOWN when any of them fails.
func (s *healthService) Check(ctx context.Context) models.Health {
	health := models.Health{
		Status:     models.StatusUp,
		Components: make(map[string]models.HealthComponent, len(s.checks)),
	}

	for _, name := range slices.Sorted(maps.Keys(s.checks)) {
		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		err := s.checks[name](checkCtx)
		cancel()

		if err != nil {
			logger.FromContext(ctx).Err(err).Str("component", name).Msg("health check failed")
			health.Status = models.StatusDown
			health.Components[name] = models.HealthComponent{
				Status:  models.StatusDown,
				Details: map[string]string{"error": err.Error()},
			}
			continue
		}
		health.Components[name] = models.HealthComponent{Status: models.StatusUp}
	}

	return health
}
