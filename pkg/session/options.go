package session

import "time"

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithTTL sets the session lifetime
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithTokenGenerator replaces the random token generator
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(m *Manager) {
		m.newToken = fn
	}
}
