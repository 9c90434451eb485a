package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. Keys are namespaced with a prefix
// ("session:" by default) so sessions can share a database with other data.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the key namespace.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithRefreshTTL sets the TTL applied to a key each time it is read.
func WithRefreshTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	cfg := DefaultConfig()
	s := &RedisStore{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRedisStoreFromConfig creates a Redis-backed store with prefix and TTL taken from cfg.
func NewRedisStoreFromConfig(client redis.UniversalClient, cfg Config) *RedisStore {
	return NewRedisStore(client, WithKeyPrefix(cfg.KeyPrefix), WithRefreshTTL(cfg.TTL))
}

// Get fetches the record and refreshes its TTL in one round trip (GETEX).
func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}

	var cmd *redis.StringCmd
	if s.ttl > 0 {
		cmd = s.client.GetEx(ctx, s.key(id), s.ttl)
	} else {
		cmd = s.client.Get(ctx, s.key(id))
	}

	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, fmt.Errorf("get session: %w", err))
	}
	return data, nil
}

// Set writes the record with SET EX. The last writer wins.
// A non-positive ttl stores the record without expiry.
func (s *RedisStore) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidToken
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(id), data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, fmt.Errorf("set session: %w", err))
	}
	return nil
}

// Delete removes the record. Missing keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, fmt.Errorf("delete session: %w", err))
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}
