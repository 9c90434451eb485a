package scopes

import "errors"

var (
	// ErrInvalidScope is returned when a scope is syntactically invalid
	ErrInvalidScope = errors.New("scopes.invalid_scope")
	// ErrScopeNotAllowed is returned when a scope is not in the list of allowed scopes
	ErrScopeNotAllowed = errors.New("scopes.not_allowed")
)
