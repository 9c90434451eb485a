// Package scopes provides helpers for working with permission scope strings.
//
// A scope is an opaque string such as "custom:read:self". Segments are joined
// by ScopeDelimiter (":"). A trailing "*" segment matches every scope below a
// prefix, so "custom:*" grants "custom:read:self" and "custom:delete", and a
// bare "*" matches everything.
//
//	granted := []string{"auth:log-in", "custom:*"}
//
//	scopes.HasScope(granted, "custom:write:all")                          // true
//	scopes.HasAnyScopes(granted, []string{"auth:admin", "auth:log-in"})  // true
//	scopes.HasAnyScopes(granted, []string{"auth:admin"})                 // false
//
// Validate checks a list against a closed vocabulary and reports the first
// offending scope wrapped in ErrScopeNotAllowed.
package scopes
