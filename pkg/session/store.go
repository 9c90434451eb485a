package session

import (
	"context"
	"time"
)

// Store is a durable, expiring key/value store shared across server instances.
//
// Get returns ErrSessionNotFound for absent or expired ids and refreshes the
// TTL of a found record. Infrastructure failures are wrapped in ErrStoreUnavailable.
type Store interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Set(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
