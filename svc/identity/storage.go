package identity

import (
	"context"

	"github.com/google/uuid"
)

// Storage persists users. Implementations return ErrUserNotFound for missing
// rows, ErrEmailTaken when a write hits an existing email, and wrap backend
// failures with ErrStorageUnavailable. Context errors are returned as is.
type Storage interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Insert(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
