package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zkcargopass/cargopass/pkg/credential"
	"github.com/zkcargopass/cargopass/pkg/logger"
	"github.com/zkcargopass/cargopass/pkg/sanitizer"
	"github.com/zkcargopass/cargopass/svc/identity"
)

// Login outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// UserFinder is the part of identity.Service that authentication reads.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*identity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// RoleTable maps a role to its scopes.
type RoleTable interface {
	ScopesFor(role string) []string
}

// Metrics receives authentication counters. *metrics.Metrics satisfies it.
type Metrics interface {
	LoginOutcome(outcome string)
	GuardDecision(decision string)
}

type noopMetrics struct{}

func (noopMetrics) LoginOutcome(string)  {}
func (noopMetrics) GuardDecision(string) {}

// Service verifies credentials and builds sessions.
type Service struct {
	users   UserFinder
	roles   RoleTable
	logger  *slog.Logger
	metrics Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithServiceMetrics sets the metrics sink.
func WithServiceMetrics(m Metrics) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService creates a Service. roles is read-only for the service lifetime.
func NewService(users UserFinder, roles RoleTable, opts ...ServiceOption) *Service {
	s := &Service{
		users:   users,
		roles:   roles,
		logger:  slog.New(slog.DiscardHandler),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("auth"))
	return s
}

// Login checks email and password. An unknown email and a wrong password
// both yield ErrUnauthenticated. Storage failures are returned as is.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, s.loginFailed(ctx, email, "unknown email")
		}
		s.metrics.LoginOutcome(OutcomeError)
		s.logger.ErrorContext(ctx, "login lookup failed", logger.Error(err))
		return nil, err
	}

	if !credential.Verify(password, user.PasswordSalt, user.PasswordDigest) {
		return nil, s.loginFailed(ctx, email, "password mismatch")
	}

	sess := s.sessionFor(user)
	s.metrics.LoginOutcome(OutcomeSuccess)
	s.logger.InfoContext(ctx, "login succeeded", logger.UserID(user.ID), logger.Role(user.Role))
	return sess, nil
}

// ResolveSession rebuilds the session of userID with the scopes of the
// user's current role. A missing user yields ErrUnauthenticated.
func (s *Service) ResolveSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			s.logger.DebugContext(ctx, "session user no longer exists", logger.UserID(userID))
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return s.sessionFor(user), nil
}

func (s *Service) sessionFor(user *identity.User) *Session {
	granted := s.roles.ScopesFor(user.Role)
	if granted == nil {
		granted = []string{}
	}
	return &Session{
		User:        user.Scrubbed(),
		Scopes:      granted,
		SessionRole: user.Role,
	}
}

func (s *Service) loginFailed(ctx context.Context, email, reason string) error {
	s.metrics.LoginOutcome(OutcomeFailure)
	s.logger.InfoContext(ctx, "login failed",
		slog.String("email", sanitizer.MaskEmail(email)),
		slog.String("reason", reason),
		logger.Outcome(OutcomeFailure))
	return ErrUnauthenticated
}
