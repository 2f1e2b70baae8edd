package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/models"
)

const redisSessionPrefix = "gateway:session:"

// redisCommands is the subset of redis.Cmdable used by the session store.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// redisSession is the stored form of a session; expiry is handled by the
// key TTL.
type redisSession struct {
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// redisSessionRepository implements [SessionRepository] on Redis keys with
// a TTL equal to the remaining session lifetime.
type redisSessionRepository struct {
	client redisCommands
	now    func() time.Time
	logger *logger.Logger
}

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Str("addr", cfg.Addr).Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, err
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")
	return client, nil
}

// NewRedisSessionRepository constructs a Redis-backed [SessionRepository].
func NewRedisSessionRepository(client redis.Cmdable, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating redis session repository")
	return &redisSessionRepository{
		client: client,
		now:    time.Now,
		logger: logger,
	}
}

func redisSessionKey(id string) string {
	return redisSessionPrefix + id
}

// Save writes the session with a TTL; an already expired session is removed.
func (r *redisSessionRepository) Save(ctx context.Context, session *models.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, session.ID)
	}

	data, err := json.Marshal(redisSession{
		Data:      session.Data,
		CreatedAt: session.CreatedAt.UTC(),
		ExpiresAt: session.ExpiresAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingSession, err)
	}

	if err = r.client.Set(ctx, redisSessionKey(session.ID), data, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionRepository.Save").Msg("error saving session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// Find loads the session with the given id.
func (r *redisSessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, redisSessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionRepository.Find").Msg("error loading session")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var stored redisSession
	if err = json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingSession, err)
	}

	session := &models.Session{
		ID:        id,
		Data:      stored.Data,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}
	if session.Expired(r.now()) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session key.
func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisSessionKey(id)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionRepository.Delete").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired keys itself.
func (r *redisSessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
