package session

import "errors"

var (
	// ErrSessionNotFound indicates no session was found for the token
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrStoreUnavailable indicates the session store could not be reached
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrInvalidToken indicates an empty or malformed token
	ErrInvalidToken = errors.New("session.invalid_token")
)
