package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "github.com/Munnjee/Comp2537-A01/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = append([]byte(nil), value.([]byte)...)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	b, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(b), nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			delete(f.ttls, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newTestStore(t *testing.T, rdb RedisClient) *Store {
	t.Helper()
	s, err := NewStore(rdb, "crypt-key")
	require.NoError(t, err)
	return s
}

func authedSession(expiresAt time.Time) dom.Session {
	return dom.Session{Authenticated: true, Name: "alice", Email: "a@b.com", ExpiresAt: expiresAt}
}

func TestStoreCreateGet(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := newTestStore(t, rdb)

	id, err := s.Create(ctx, authedSession(time.Now().Add(time.Hour)))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Authenticated)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, "a@b.com", got.Email)

	// the stored bytes are sealed, and the Redis TTL tracks ExpiresAt
	raw := rdb.data[sessionKeyPrefix+id]
	assert.NotContains(t, string(raw), "alice")
	assert.InDelta(t, time.Hour, rdb.ttls[sessionKeyPrefix+id], float64(time.Minute))
}

func TestStoreGetAbsent(t *testing.T) {
	s := newTestStore(t, newFakeRedis())
	got, err := s.Get(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreGetCorruptReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := newTestStore(t, rdb)

	rdb.data[sessionKeyPrefix+"bad"] = []byte("garbage that never was sealed")
	got, err := s.Get(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newFakeRedis())

	base := time.Now()
	s.now = func() time.Time { return base }

	id, err := s.Create(ctx, authedSession(base.Add(time.Hour)))
	require.NoError(t, err)

	// readable as authenticated immediately
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Authenticated)

	// absent once the hour has elapsed
	s.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	got, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreCreateAlreadyExpired(t *testing.T) {
	s := newTestStore(t, newFakeRedis())
	_, err := s.Create(context.Background(), authedSession(time.Now().Add(-time.Minute)))
	assert.Error(t, err)
}

func TestStoreUpdateExtends(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newFakeRedis())

	base := time.Now()
	s.now = func() time.Time { return base }

	id, err := s.Create(ctx, authedSession(base.Add(10*time.Minute)))
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, id, authedSession(base.Add(time.Hour))))

	s.now = func() time.Time { return base.Add(30 * time.Minute) }
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestStoreDestroyIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newFakeRedis())

	id, err := s.Create(ctx, authedSession(time.Now().Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, s.Destroy(ctx, id))
	// destroying an absent identifier still succeeds
	require.NoError(t, s.Destroy(ctx, id))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreTransportErrors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := newTestStore(t, rdb)

	rdb.err = errors.New("connection refused")

	_, err := s.Create(ctx, authedSession(time.Now().Add(time.Hour)))
	assert.Error(t, err)

	_, err = s.Get(ctx, "some-id")
	assert.Error(t, err)

	assert.Error(t, s.Destroy(ctx, "some-id"))
}
