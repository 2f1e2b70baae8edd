package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/models"
)

// fakeRedis keeps values in memory and records the last TTL.
type fakeRedis struct {
	values  map[string]string
	lastTTL time.Duration
	err     error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.lastTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newRedisTestSession(id string, createdAt time.Time, maxAge time.Duration) *models.Session {
	return &models.Session{ID: id, Data: []byte("payload"), CreatedAt: createdAt, ExpiresAt: createdAt.Add(maxAge)}
}

func newTestRedisRepo(client *fakeRedis, now time.Time) *redisSessionRepository {
	return &redisSessionRepository{
		client: client,
		now:    func() time.Time { return now },
		logger: logger.Nop(),
	}
}

func TestRedisSession_SaveFindDelete(t *testing.T) {
	client := newFakeRedis()
	repo := newTestRedisRepo(client, testNow)
	ctx := context.Background()

	session := newRedisTestSession("s-1", testNow, 4*time.Minute)

	require.NoError(t, repo.Save(ctx, session))
	assert.Equal(t, 4*time.Minute, client.lastTTL)
	assert.Contains(t, client.values, "gateway:session:s-1")

	found, err := repo.Find(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", found.ID)
	assert.Equal(t, []byte("payload"), found.Data)
	assert.True(t, found.ExpiresAt.Equal(testNow.Add(4*time.Minute)))

	require.NoError(t, repo.Delete(ctx, "s-1"))
	_, err = repo.Find(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSession_SaveExpiredDeletes(t *testing.T) {
	client := newFakeRedis()
	client.values["gateway:session:s-1"] = "{}"
	repo := newTestRedisRepo(client, testNow)

	session := newRedisTestSession("s-1", testNow.Add(-time.Hour), time.Minute)
	require.NoError(t, repo.Save(context.Background(), session))
	assert.NotContains(t, client.values, "gateway:session:s-1")
}

func TestRedisSession_FindExpiredByClock(t *testing.T) {
	client := newFakeRedis()
	require.NoError(t, newTestRedisRepo(client, testNow).Save(context.Background(), newRedisTestSession("s-1", testNow, time.Minute)))

	later := newTestRedisRepo(client, testNow.Add(2*time.Minute))
	_, err := later.Find(context.Background(), "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSession_Errors(t *testing.T) {
	client := newFakeRedis()
	client.err = errors.New("connection reset")
	repo := newTestRedisRepo(client, testNow)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Save(ctx, newRedisTestSession("s-1", testNow, time.Minute)), ErrExecutingQuery)
	_, err := repo.Find(ctx, "s-1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, repo.Delete(ctx, "s-1"), ErrExecutingQuery)

	n, err := repo.DeleteExpired(ctx, testNow)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisSession_CorruptPayload(t *testing.T) {
	client := newFakeRedis()
	client.values["gateway:session:s-1"] = "{oops"

	_, err := newTestRedisRepo(client, testNow).Find(context.Background(), "s-1")
	assert.ErrorIs(t, err, ErrEncodingSession)
}
