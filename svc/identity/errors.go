package identity

import "errors"

var (
	ErrUserNotFound       = errors.New("identity.user_not_found")
	ErrEmailTaken         = errors.New("identity.email_taken")
	ErrInvalidInput       = errors.New("identity.invalid_input")
	ErrStorageUnavailable = errors.New("identity.storage_unavailable")
)
