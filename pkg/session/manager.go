package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"
)

// Manager handles the session life-cycle on top of a Store and a Transport.
type Manager struct {
	store     Store
	transport Transport
	ttl       time.Duration
	newToken  func() (string, error)
}

// New creates a new session manager
func New(store Store, transport Transport, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		transport: transport,
		ttl:       DefaultConfig().TTL,
		newToken:  generateToken,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// NewFromConfig creates a new Manager using cfg for lifetime settings.
func NewFromConfig(cfg Config, store Store, transport Transport, opts ...Option) *Manager {
	return New(store, transport, append([]Option{WithTTL(cfg.TTL)}, opts...)...)
}

// Token returns the session token carried by the request.
func (m *Manager) Token(r *http.Request) (string, error) {
	token, err := m.transport.GetToken(r)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

// Load returns the token and stored payload of the request's session.
// ErrSessionNotFound is returned when the request carries no token or the
// record is gone.
func (m *Manager) Load(ctx context.Context, r *http.Request) (string, []byte, error) {
	token, err := m.Token(r)
	if err != nil {
		return "", nil, err
	}

	data, err := m.store.Get(ctx, token)
	if err != nil {
		return "", nil, err
	}

	return token, data, nil
}

// Save stores data under a freshly generated token and sends the token to the
// client. A token already carried by the request is deleted first.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, r *http.Request, data []byte) (string, error) {
	token, err := m.newToken()
	if err != nil {
		return "", err
	}

	if old, err := m.Token(r); err == nil {
		if err := m.store.Delete(ctx, old); err != nil {
			return "", err
		}
	}

	if err := m.store.Set(ctx, token, data, m.ttl); err != nil {
		return "", err
	}

	if err := m.transport.SetToken(w, token, m.ttl); err != nil {
		_ = m.store.Delete(ctx, token)
		return "", err
	}

	return token, nil
}

// Destroy deletes the request's session, if any, and clears the token on the
// client. Calling it without a session is not an error.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var storeErr error
	if token, err := m.Token(r); err == nil {
		storeErr = m.store.Delete(ctx, token)
	}

	return errors.Join(storeErr, m.transport.ClearToken(w))
}

// generateToken creates a cryptographically secure token
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
