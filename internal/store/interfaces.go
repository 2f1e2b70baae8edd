package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-gateway/models"
)

// UserRepository persists users authenticated through the identity provider
// together with their granted authorities.
type UserRepository interface {
	// UpsertUser inserts the user, or updates the profile of the user with the
	// same login, and replaces its authorities. The stored user is returned.
	UpsertUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// SessionRepository is the server-side session store.
type SessionRepository interface {
	Save(ctx context.Context, session *models.Session) error
	// Find returns [ErrSessionNotFound] for unknown and expired sessions.
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that expired before now and reports how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
