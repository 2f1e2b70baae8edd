package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
)

// Storages bundles the open backends and the repositories built on them.
type Storages struct {
	DB    *DB
	Redis *redis.Client

	UserRepository    UserRepository
	SessionRepository SessionRepository
}

// NewStorages opens the database, applies migrations and builds the
// repositories. The session repository is Redis-backed when sessionStore is
// [config.SessionStoreRedis].
func NewStorages(ctx context.Context, cfg config.Storage, sessionStore string, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	s := &Storages{
		DB:             db,
		UserRepository: NewUserRepository(db, log),
	}

	if sessionStore == config.SessionStoreRedis {
		s.Redis, err = NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error connecting redis: %w", err)
		}
		s.SessionRepository = NewRedisSessionRepository(s.Redis, log)
	} else {
		s.SessionRepository = NewSessionRepository(db, log)
	}

	return s, nil
}

// Ping checks every open backend.
func (s *Storages) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return err
	}
	if s.Redis != nil {
		return s.Redis.Ping(ctx).Err()
	}
	return nil
}

// Close closes every open backend.
func (s *Storages) Close() error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
