package auth

import (
	"context"

	"github.com/zkcargopass/cargopass/pkg/scopes"
	"github.com/zkcargopass/cargopass/svc/identity"
)

// Session is the authenticated context of a request. It is derived on every
// request and never stored.
type Session struct {
	User        identity.User `json:"user"`
	Scopes      []string      `json:"scopes"`
	SessionRole string        `json:"sessionRole"`
}

// HasAnyScope reports whether the session grants at least one of required.
func (s *Session) HasAnyScope(required ...string) bool {
	return s != nil && scopes.HasAnyScopes(s.Scopes, required)
}

type sessionContextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session the guard attached, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}
