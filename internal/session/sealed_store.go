package session

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-gateway/internal/crypto"
	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/models"
)

// sealedStore encrypts session data before it reaches the wrapped
// repository. Ids and timestamps stay in clear for expiry.
type sealedStore struct {
	store.SessionRepository
	sealer crypto.Sealer
}

// NewSealedStore wraps sessions so that session data is stored sealed.
// A stored session that cannot be opened (plain or sealed under another
// secret) is reported as [store.ErrSessionNotFound] and replaced on the next
// request.
func NewSealedStore(sessions store.SessionRepository, sealer crypto.Sealer) store.SessionRepository {
	return &sealedStore{SessionRepository: sessions, sealer: sealer}
}

func (s *sealedStore) Save(ctx context.Context, session *models.Session) error {
	sealed, err := s.sealer.Seal(session.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrEncodingSession, err)
	}

	stored := *session
	stored.Data = []byte(sealed)
	return s.SessionRepository.Save(ctx, &stored)
}

func (s *sealedStore) Find(ctx context.Context, id string) (*models.Session, error) {
	stored, err := s.SessionRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	var data []byte
	if err = s.sealer.Open(string(stored.Data), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrSessionNotFound, err)
	}

	stored.Data = data
	return stored, nil
}
