package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage keeps users in process memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[uuid.UUID]User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (m *MemoryStorage) GetByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := m.byID[id]
	return &u, nil
}

func (m *MemoryStorage) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *MemoryStorage) Insert(ctx context.Context, user *User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return ErrEmailTaken
	}
	m.byID[user.ID] = *user
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *MemoryStorage) Update(ctx context.Context, user *User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.byID[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	if old.Email != user.Email {
		if _, taken := m.byEmail[user.Email]; taken {
			return ErrEmailTaken
		}
		delete(m.byEmail, old.Email)
		m.byEmail[user.Email] = user.ID
	}
	m.byID[user.ID] = *user
	return nil
}

// Delete removes a user. Identity never deletes users itself; this exists for
// tests that need a dangling session.
func (m *MemoryStorage) Delete(_ context.Context, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.byID[id]; ok {
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
}
