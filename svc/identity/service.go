package identity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zkcargopass/cargopass/pkg/credential"
	"github.com/zkcargopass/cargopass/pkg/logger"
	"github.com/zkcargopass/cargopass/pkg/sanitizer"
	"github.com/zkcargopass/cargopass/pkg/validator"
)

const (
	MinPasswordLength = 3
	MaxNameLength     = 100
)

// Service manages user accounts.
type Service struct {
	storage     Storage
	defaultRole string
	logger      *slog.Logger
	now         func() time.Time
	newID       func() (uuid.UUID, error)
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultRole sets the role assigned at signup.
func WithDefaultRole(role string) Option {
	return func(s *Service) {
		if role != "" {
			s.defaultRole = role
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides user id generation.
func WithIDGenerator(fn func() (uuid.UUID, error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService creates a Service on top of storage.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:     storage,
		defaultRole: DefaultRole,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		newID:       uuid.NewRandom,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("identity"))
	return s
}

// FindByEmail looks a user up by case-insensitive email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.storage.GetByEmail(ctx, sanitizer.NormalizeEmail(email))
}

// FindByID looks a user up by id.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.storage.GetByID(ctx, id)
}

// Create is get-or-create signup. When the email is already registered the
// stored user is returned untouched, whatever password was supplied.
func (s *Service) Create(ctx context.Context, email, password, name string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)
	name = sanitizer.SingleLine(name)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.MinLen("password", password, MinPasswordLength),
		validator.Required("name", name),
		validator.MaxLen("name", name, MaxNameLength),
	); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	existing, err := s.storage.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}

	now := s.now().UTC()
	salt := credential.NewSalt()
	user := &User{
		ID:             id,
		Email:          email,
		Name:           name,
		PasswordSalt:   salt,
		PasswordDigest: credential.Digest(password, salt),
		Role:           s.defaultRole,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.storage.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Lost a concurrent signup race; the winner's row is the answer.
			return s.storage.GetByEmail(ctx, email)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", logger.UserID(user.ID), logger.Role(user.Role))
	return user, nil
}

// ChangePassword rotates the salt and digest of a user.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, password string) (*User, error) {
	if err := validator.Apply(validator.MinLen("password", password, MinPasswordLength)); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	user, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordSalt = credential.NewSalt()
	user.PasswordDigest = credential.Digest(password, user.PasswordSalt)
	user.UpdatedAt = s.now().UTC()

	if err := s.storage.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "password changed", logger.UserID(user.ID))
	return user, nil
}
