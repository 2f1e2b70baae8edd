package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/models"
)

// The data column is TEXT on every driver, so session data is stored
// base64-encoded.
func encodeSession(session *models.Session) string {
	return base64.StdEncoding.EncodeToString(session.Data)
}

func decodeSession(id, data string, createdAt, expiresAt time.Time) (*models.Session, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingSession, err)
	}
	return &models.Session{
		ID:        id,
		Data:      raw,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

// sessionRepository is the database/sql implementation of
// [SessionRepository] over the "sessions" table.
type sessionRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSessionRepository constructs a SQL-backed [SessionRepository].
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating sql session repository")
	return &sessionRepository{
		db:     db,
		now:    time.Now,
		logger: logger,
	}
}

// Save updates the stored session or inserts it when the id is unknown.
// An insert that loses a race against a concurrent insert of the same id
// falls back to an update.
func (r *sessionRepository) Save(ctx context.Context, session *models.Session) error {
	data := encodeSession(session)

	updated, err := r.update(ctx, session.ID, data, session.ExpiresAt.UTC())
	if err != nil || updated {
		return err
	}

	query, args, err := buildInsertSessionQuery(r.db.builder, session.ID, data, session.CreatedAt.UTC(), session.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		_, err = r.update(ctx, session.ID, data, session.ExpiresAt.UTC())
		return err
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.Save").Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *sessionRepository) update(ctx context.Context, id, data string, expiresAt time.Time) (bool, error) {
	query, args, err := buildUpdateSessionQuery(r.db.builder, id, data, expiresAt)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.update").Msg("error updating session")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n > 0, nil
}

// Find loads the session with the given id.
func (r *sessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	query, args, err := buildFindSessionQuery(r.db.builder, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		data                 string
		createdAt, expiresAt time.Time
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&data, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.Find").Msg("error scanning session")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	session, err := decodeSession(id, data, createdAt, expiresAt)
	if err != nil {
		return nil, err
	}
	if session.Expired(r.now()) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := buildDeleteSessionQuery(r.db.builder, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.Delete").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry is before now.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredSessionsQuery(r.db.builder, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.DeleteExpired").Msg("error deleting expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return res.RowsAffected()
}
