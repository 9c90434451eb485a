package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zkcargopass/cargopass/handler"
	"github.com/zkcargopass/cargopass/pkg/logger"
	"github.com/zkcargopass/cargopass/pkg/session"
)

// Guard decision labels.
const (
	DecisionPublic          = "public"
	DecisionLogout          = "logout"
	DecisionSession         = "session"
	DecisionCredentials     = "credentials"
	DecisionUnauthenticated = "unauthenticated"
	DecisionForbidden       = "forbidden"
	DecisionError           = "error"
)

// AccessPolicy is the access rule of one route.
//
// A nil RequiredScopes inherits the controller's scopes; a non-nil one,
// even empty, replaces them. An empty effective list admits any session.
type AccessPolicy struct {
	Public         bool
	Logout         bool
	Login          bool // skip the session fast path and always check credentials
	RequiredScopes []string
}

// Public admits every request.
func Public() AccessPolicy { return AccessPolicy{Public: true} }

// Logout ends the caller's session and always admits the request.
func Logout() AccessPolicy { return AccessPolicy{Logout: true} }

// Login authenticates from the request body and issues a new session, even
// when the request already carries one.
func Login() AccessPolicy { return AccessPolicy{Login: true, RequiredScopes: []string{}} }

// Scopes requires a session holding at least one of required.
func Scopes(required ...string) AccessPolicy {
	return AccessPolicy{RequiredScopes: append([]string{}, required...)}
}

// Authenticated requires any session, ignoring controller scopes.
func Authenticated() AccessPolicy { return AccessPolicy{RequiredScopes: []string{}} }

// requiredScopes applies the route-over-controller override.
func (p AccessPolicy) requiredScopes(controller []string) []string {
	if p.RequiredScopes != nil {
		return p.RequiredScopes
	}
	return controller
}

// SessionManager stores session payloads behind a client token.
// *session.Manager satisfies it.
type SessionManager interface {
	Load(ctx context.Context, r *http.Request) (string, []byte, error)
	Save(ctx context.Context, w http.ResponseWriter, r *http.Request, data []byte) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Strategy authenticates a request that carries no usable session.
type Strategy interface {
	Authenticate(r *http.Request) (*Session, error)
}

// Guard enforces AccessPolicy values on requests.
type Guard struct {
	sessions   SessionManager
	serializer *Serializer
	strategy   Strategy
	logger     *slog.Logger
	metrics    Metrics
	writeError handler.ErrorWriter
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithGuardLogger sets the logger.
func WithGuardLogger(l *slog.Logger) GuardOption {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithGuardMetrics sets the metrics sink.
func WithGuardMetrics(m Metrics) GuardOption {
	return func(g *Guard) {
		if m != nil {
			g.metrics = m
		}
	}
}

// WithErrorWriter sets how denials and failures are written.
func WithErrorWriter(w handler.ErrorWriter) GuardOption {
	return func(g *Guard) {
		if w != nil {
			g.writeError = w
		}
	}
}

// NewGuard creates a Guard.
func NewGuard(sessions SessionManager, serializer *Serializer, strategy Strategy, opts ...GuardOption) *Guard {
	g := &Guard{
		sessions:   sessions,
		serializer: serializer,
		strategy:   strategy,
		logger:     slog.New(slog.DiscardHandler),
		metrics:    noopMetrics{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.writeError == nil {
		g.writeError = handler.NewErrorWriter(g.logger)
	}
	g.logger = g.logger.With(logger.Component("guard"))
	return g
}

// Middleware enforces policy. controllerScopes are used when policy does not
// set its own.
func (g *Guard) Middleware(controllerScopes []string, policy AccessPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g.serve(w, r, next, controllerScopes, policy)
		})
	}
}

func (g *Guard) serve(w http.ResponseWriter, r *http.Request, next http.Handler, controllerScopes []string, policy AccessPolicy) {
	ctx := r.Context()

	if policy.Public {
		g.decide(ctx, r, DecisionPublic, nil)
		next.ServeHTTP(w, r)
		return
	}

	if policy.Logout {
		if err := g.sessions.Destroy(ctx, w, r); err != nil {
			g.logger.WarnContext(ctx, "logout left a session behind", logger.Error(err))
		}
		g.decide(ctx, r, DecisionLogout, nil)
		next.ServeHTTP(w, r)
		return
	}

	required := policy.requiredScopes(controllerScopes)

	var current *Session
	if !policy.Login {
		var err error
		if current, err = g.currentSession(ctx, r); err != nil {
			g.fail(w, r, err)
			return
		}
		if current != nil && current.HasAnyScope(required...) {
			g.decide(ctx, r, DecisionSession, current)
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, current)))
			return
		}
	}

	established, err := g.strategy.Authenticate(r)
	switch {
	case errors.Is(err, ErrUnauthenticated):
		g.deny(w, r, current != nil, current)
		return
	case err != nil:
		g.fail(w, r, err)
		return
	}

	if !established.HasAnyScope(required...) {
		g.deny(w, r, true, established)
		return
	}

	data, err := g.serializer.Encode(g.serializer.Serialize(established))
	if err != nil {
		g.fail(w, r, err)
		return
	}
	if _, err := g.sessions.Save(ctx, w, r, data); err != nil {
		g.fail(w, r, err)
		return
	}

	g.decide(ctx, r, DecisionCredentials, established)
	next.ServeHTTP(w, r.WithContext(WithSession(ctx, established)))
}

// currentSession loads and rehydrates the request's session. Absent,
// undecodable and dangling sessions all read as nil.
func (g *Guard) currentSession(ctx context.Context, r *http.Request) (*Session, error) {
	_, data, err := g.sessions.Load(ctx, r)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	rec, err := g.serializer.Decode(data)
	if err != nil {
		g.logger.WarnContext(ctx, "discarding unreadable session record", logger.Error(err))
		return nil, nil
	}

	return g.serializer.Deserialize(ctx, rec)
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, authenticated bool, s *Session) {
	if authenticated {
		g.decide(r.Context(), r, DecisionForbidden, s)
		g.writeError(w, r, errors.Join(ErrForbidden, handler.ErrForbidden))
		return
	}
	g.decide(r.Context(), r, DecisionUnauthenticated, nil)
	g.writeError(w, r, errors.Join(ErrUnauthenticated, handler.ErrUnauthorized))
}

func (g *Guard) fail(w http.ResponseWriter, r *http.Request, err error) {
	g.metrics.GuardDecision(DecisionError)
	g.writeError(w, r, err)
}

func (g *Guard) decide(ctx context.Context, r *http.Request, decision string, s *Session) {
	g.metrics.GuardDecision(decision)

	attrs := []any{slog.String("decision", decision), slog.String("method", r.Method), slog.String("path", r.URL.Path)}
	if s != nil {
		attrs = append(attrs, logger.UserID(s.User.ID), logger.Role(s.SessionRole))
	}
	g.logger.DebugContext(ctx, "guard decision", attrs...)
}
