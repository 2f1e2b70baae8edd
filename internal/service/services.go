package service

import (
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/models"
)

type Services struct {
	AccountService AccountService
	AppInfoService AppInfoService
	HealthService  HealthService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	return &Services{
		AccountService: NewAccountService(storages.UserRepository, logger),
		AppInfoService: NewAppInfoService(buildInfo, cfg.AppName, cfg.Profile, logger),
		HealthService:  NewHealthService(map[string]HealthChecker{"db": storages.Ping}, logger),
	}
}
