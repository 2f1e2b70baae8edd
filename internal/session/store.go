package session

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/models"
)

// repositoryStore exposes a [store.SessionRepository] as an scs store.
// Tokens are the session ids of the repository.
type repositoryStore struct {
	sessions store.SessionRepository
	now      func() time.Time
}

// NewStore returns an scs store backed by sessions.
func NewStore(sessions store.SessionRepository) scs.CtxStore {
	return &repositoryStore{sessions: sessions, now: time.Now}
}

func (s *repositoryStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	found, err := s.sessions.Find(ctx, token)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return found.Data, true, nil
}

func (s *repositoryStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	return s.sessions.Save(ctx, &models.Session{
		ID:        token,
		Data:      b,
		CreatedAt: s.now(),
		ExpiresAt: expiry,
	})
}

func (s *repositoryStore) DeleteCtx(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *repositoryStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *repositoryStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *repositoryStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}
