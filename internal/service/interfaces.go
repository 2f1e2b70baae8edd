package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AccountService maps identity provider users onto local accounts.
type AccountService interface {
	// UpsertFromClaims creates or refreshes the account described by the
	// validated ID token claims and returns it with its authorities.
	UpsertFromClaims(ctx context.Context, claims jwt.MapClaims) (models.User, error)
}

// AppInfoService exposes build and runtime information.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}

// HealthService aggregates the health of the gateway dependencies.
type HealthService interface {
	Check(ctx context.Context) models.Health
}
