package session

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	ttl       time.Duration
	expiresAt time.Time
}

// A zero expiresAt never expires.
func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// MemoryStore implements Store in process memory.
// It is meant for tests and single-instance development setups.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]memoryEntry
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
	now       func() time.Time
}

// NewMemoryStore creates a new in-memory session store.
// A positive cleanupInterval starts a goroutine that evicts expired entries.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		done:     make(chan struct{}),
		now:      time.Now,
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop(store.ticker.C)
	}

	return store
}

// Get returns the stored data and pushes the expiry forward by the entry's TTL.
func (m *MemoryStore) Get(ctx context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	now := m.now()
	if entry.expired(now) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}

	entry.expiresAt = expiry(now, entry.ttl)
	m.sessions[id] = entry

	return slices.Clone(entry.data), nil
}

// Set stores data under id, replacing any previous value.
// A non-positive ttl keeps the entry until it is deleted.
func (m *MemoryStore) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = memoryEntry{
		data:      slices.Clone(data),
		ttl:       ttl,
		expiresAt: expiry(m.now(), ttl),
	}
	return nil
}

// Delete removes id. Deleting a missing id is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// DeleteExpired removes all expired sessions
func (m *MemoryStore) DeleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, entry := range m.sessions {
		if entry.expired(now) {
			delete(m.sessions, id)
		}
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop(tick <-chan time.Time) {
	for {
		select {
		case <-tick:
			m.DeleteExpired()
		case <-m.done:
			return
		}
	}
}
