package scopes

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// ScopeWildcard matches any scope or, as the last segment, any sub-scope
	ScopeWildcard = "*"

	// ScopeDelimiter separates scope segments (e.g., "custom:read:self")
	ScopeDelimiter = ":"
)

// ScopeMatches reports whether scope is granted by pattern.
//
//   - "auth:admin" matches "auth:admin"
//   - "*" matches any scope
//   - "custom:*" matches every scope starting with "custom:"
func ScopeMatches(scope, pattern string) bool {
	if scope == "" {
		return false
	}
	if scope == pattern || pattern == ScopeWildcard {
		return true
	}

	if prefix, ok := strings.CutSuffix(pattern, ScopeDelimiter+ScopeWildcard); ok {
		return strings.HasPrefix(scope, prefix+ScopeDelimiter)
	}

	return false
}

// IsValid reports whether scope is syntactically well formed:
// non-empty, no white space, no empty segments.
func IsValid(scope string) bool {
	if scope == "" || strings.ContainsAny(scope, " \t\r\n") {
		return false
	}
	return !slices.Contains(strings.Split(scope, ScopeDelimiter), "")
}

// HasScope reports whether any of the granted scopes matches scope.
func HasScope(granted []string, scope string) bool {
	for _, g := range granted {
		if ScopeMatches(scope, g) {
			return true
		}
	}
	return false
}

// HasAnyScopes reports whether granted satisfies at least one required scope.
// An empty required list is always satisfied.
func HasAnyScopes(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, req := range required {
		if HasScope(granted, req) {
			return true
		}
	}
	return false
}

// NormalizeScopes removes duplicates and sorts the result. Returns nil for empty input.
func NormalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return nil
	}
	out := slices.Clone(scopes)
	slices.Sort(out)
	return slices.Compact(out)
}

// Validate checks that every scope is well formed and matched by an entry of allowed.
// The first failing scope is reported in the returned error.
func Validate(scopes, allowed []string) error {
	for _, s := range scopes {
		if !IsValid(s) {
			return fmt.Errorf("%w: %q", ErrInvalidScope, s)
		}
		if !HasScope(allowed, s) {
			return fmt.Errorf("%w: %q", ErrScopeNotAllowed, s)
		}
	}
	return nil
}
