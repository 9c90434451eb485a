package auth

import "errors"

var (
	// ErrUnauthenticated covers bad credentials, missing sessions and
	// sessions whose user no longer exists.
	ErrUnauthenticated = errors.New("auth.unauthenticated")

	// ErrForbidden means the caller is authenticated but lacks every required scope.
	ErrForbidden = errors.New("auth.forbidden")

	// ErrInvalidRecord is returned for session payloads that do not decode.
	ErrInvalidRecord = errors.New("auth.invalid_session_record")
)
