package rbac

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zkcargopass/cargopass/pkg/scopes"
)

// Table is an immutable role to scope mapping with inheritance resolved.
type Table struct {
	// roleScopes contains all scopes (direct and inherited) for each role.
	roleScopes map[string][]string
	// sortedRoles lists all roles sorted by inheritance (base roles first).
	sortedRoles []string
}

// NewTable validates roles and precomputes every role's full scope list.
func NewTable(roles map[string]Role, opts ...Option) (*Table, error) {
	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateRoleInheritance(roles); err != nil {
		return nil, err
	}

	roleScopes := make(map[string][]string, len(roles))
	for name := range roles {
		all := scopes.NormalizeScopes(collectScopes(name, roles, make(map[string]bool), 0))
		if len(all) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRole, name)
		}
		if o.vocabulary != nil {
			if err := scopes.Validate(all, o.vocabulary); err != nil {
				return nil, errors.Join(ErrUnknownScope, fmt.Errorf("role %s: %w", name, err))
			}
		}
		roleScopes[name] = all
	}

	return &Table{
		roleScopes:  roleScopes,
		sortedRoles: sortRolesByInheritance(roles),
	}, nil
}

// ScopesFor returns a copy of every scope granted to role.
// Unmapped roles get an empty (nil) list.
func (t *Table) ScopesFor(role string) []string {
	return slices.Clone(t.roleScopes[role])
}

// VerifyRole returns an error if the given role does not exist.
func (t *Table) VerifyRole(role string) error {
	if _, exists := t.roleScopes[role]; !exists {
		return ErrInvalidRole
	}
	return nil
}

// Roles returns all role names sorted by inheritance (base roles first).
func (t *Table) Roles() []string {
	return slices.Clone(t.sortedRoles)
}

// collectScopes recursively collects all scopes for a role, including inherited ones.
func collectScopes(name string, roles map[string]Role, visited map[string]bool, depth int) []string {
	if depth > MaxInheritanceDepth || visited[name] {
		return nil
	}
	visited[name] = true

	role, exists := roles[name]
	if !exists {
		return nil
	}

	result := slices.Clone(role.Scopes)
	for _, parent := range role.Inherits {
		result = append(result, collectScopes(parent, roles, visited, depth+1)...)
	}
	return result
}

// sortRolesByInheritance returns role names sorted by inheritance depth, then by name.
func sortRolesByInheritance(roles map[string]Role) []string {
	depths := make(map[string]int, len(roles))
	for name := range roles {
		roleDepth(name, roles, depths, make(map[string]bool))
	}

	result := make([]string, 0, len(roles))
	for name := range roles {
		result = append(result, name)
	}
	slices.SortFunc(result, func(a, b string) int {
		if d := depths[a] - depths[b]; d != 0 {
			return d
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return result
}

// roleDepth computes the inheritance depth of a role using DFS.
func roleDepth(name string, roles map[string]Role, depths map[string]int, inProcess map[string]bool) int {
	if d, ok := depths[name]; ok {
		return d
	}
	if inProcess[name] {
		return 0
	}
	inProcess[name] = true
	defer delete(inProcess, name)

	maxDepth := 0
	for _, parent := range roles[name].Inherits {
		if d := roleDepth(parent, roles, depths, inProcess) + 1; d > maxDepth {
			maxDepth = d
		}
	}
	depths[name] = maxDepth
	return maxDepth
}

// validateRoleInheritance checks for undefined parents, cycles and excessive depth.
func validateRoleInheritance(roles map[string]Role) error {
	for name, role := range roles {
		for _, parent := range role.Inherits {
			if _, ok := roles[parent]; !ok {
				return fmt.Errorf("%w: %s inherits undefined role %s", ErrInvalidRole, name, parent)
			}
		}
	}

	for name := range roles {
		if err := checkCircularInheritance(name, roles, []string{name}); err != nil {
			return err
		}
	}

	depths := make(map[string]int, len(roles))
	for name := range roles {
		if roleDepth(name, roles, depths, make(map[string]bool)) > MaxInheritanceDepth {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("inheritance depth exceeds maximum allowed depth of %d", MaxInheritanceDepth))
		}
	}

	return nil
}

// checkCircularInheritance performs DFS to detect circular dependencies in role inheritance.
func checkCircularInheritance(name string, roles map[string]Role, path []string) error {
	for _, parent := range roles[name].Inherits {
		if slices.Contains(path, parent) {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("circular inheritance detected: %s -> %s", name, parent))
		}
		if len(path) > MaxInheritanceDepth+1 {
			return nil
		}
		if err := checkCircularInheritance(parent, roles, append(slices.Clone(path), parent)); err != nil {
			return err
		}
	}
	return nil
}
