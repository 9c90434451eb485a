package rbac

import "errors"

// Domain errors for RBAC operations.
var (
	// ErrInvalidRole is returned when a role does not exist.
	ErrInvalidRole = errors.New("rbac.invalid_role")

	// ErrCircularInheritance is returned when roles have circular inheritance.
	ErrCircularInheritance = errors.New("rbac.circular_inheritance")

	// ErrEmptyRole is returned when a role resolves to no scopes at all.
	ErrEmptyRole = errors.New("rbac.empty_role")

	// ErrUnknownScope is returned when a role grants a scope outside the vocabulary.
	ErrUnknownScope = errors.New("rbac.unknown_scope")
)
