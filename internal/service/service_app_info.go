package service

import (
	"context"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/models"
)

type appInfoService struct {
	info models.AppInfo

	logger *logger.Logger
}

// NewAppInfoService returns an [AppInfoService] serving the given build
// metadata together with the application name and active profile.
func NewAppInfoService(buildInfo models.AppBuildInfo, appName, profile string, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		info: models.AppInfo{
			Name:    appName,
			Profile: profile,
			Version: buildInfo.BuildVersion(),
			Date:    buildInfo.BuildDate(),
			Commit:  buildInfo.BuildCommit(),
		},
		logger: logger,
	}
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return s.info
}
