package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dom "github.com/Munnjee/Comp2537-A01/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisClient is the slice of the Redis API the store needs. *redis.Client
// satisfies it.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store manages session records in Redis, sealed at rest. Records live until
// their ExpiresAt (also enforced lazily on read) and each identifier is an
// independent key, so single-key Redis commands give per-session atomicity.
type Store struct {
	rdb RedisClient
	box *sealBox
	now func() time.Time
}

// NewStore returns a session store encrypting records with cryptKey.
func NewStore(rdb RedisClient, cryptKey string) (*Store, error) {
	box, err := newSealBox(cryptKey)
	if err != nil {
		return nil, err
	}
	return &Store{rdb: rdb, box: box, now: time.Now}, nil
}

// Create persists a new session record and returns its opaque identifier.
func (s *Store) Create(ctx context.Context, rec dom.Session) (string, error) {
	id := uuid.NewString()
	if err := s.write(ctx, id, rec); err != nil {
		return "", err
	}
	return id, nil
}

// Get resolves an identifier to its session record. Missing, expired and
// corrupt records all read as (nil, nil); only a transport failure is an
// error, and the login-check path treats even that as no session.
func (s *Store) Get(ctx context.Context, id string) (*dom.Session, error) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	plain, err := s.box.open(b)
	if err != nil {
		return nil, nil
	}
	var rec dom.Session
	if err := json.Unmarshal(plain, &rec); err != nil {
		return nil, nil
	}
	if !rec.ExpiresAt.After(s.now()) {
		return nil, nil
	}
	return &rec, nil
}

// Update rewrites the record for an existing identifier, resetting the Redis
// TTL to match the record's ExpiresAt.
func (s *Store) Update(ctx context.Context, id string, rec dom.Session) error {
	return s.write(ctx, id, rec)
}

// Destroy removes the record. Destroying an absent identifier succeeds.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, id string, rec dom.Session) error {
	ttl := rec.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session write: record already expired")
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	sealed, err := s.box.seal(b)
	if err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, sealed, ttl).Err(); err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	return nil
}
