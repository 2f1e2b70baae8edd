package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/models"
)

// ─────────────────────────────────────────────
// GetAppInfo
// ─────────────────────────────────────────────

func TestGetAppInfo_ReturnsBuildInfoAndProfile(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("1.2.3", "2026-01-01", "abc123"), "gateway", "dev", logger.Nop())

	assert.Equal(t, models.AppInfo{
		Name:    "gateway",
		Profile: "dev",
		Version: "1.2.3",
		Date:    "2026-01-01",
		Commit:  "abc123",
	}, svc.GetAppInfo(context.Background()))
}

func TestGetAppInfo_MissingBuildInfoIsNA(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("", "", ""), "gateway", "prod", logger.Nop())

	info := svc.GetAppInfo(context.Background())
	assert.Equal(t, "N/A", info.Version)
	assert.Equal(t, "N/A", info.Date)
	assert.Equal(t, "N/A", info.Commit)
}

func TestGetAppInfo_CancelledContext_StillReturnsInfo(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), "gateway", "dev", logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	assert.Equal(t, "1.0.0", svc.GetAppInfo(ctx).Version)
}
