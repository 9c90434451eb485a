// Package rbac maps roles to the scopes they grant.
//
// A Table is built once at startup from a static role definition and is
// read-only afterwards, so it can be shared by every request goroutine without
// locking. Roles may inherit the scopes of other roles; inheritance is resolved
// at construction time, which makes a parent role a superset of its children
// by construction.
//
//	table, err := rbac.NewTable(map[string]rbac.Role{
//	    "USER":  {Scopes: []string{"auth:log-in"}},
//	    "ADMIN": {Scopes: []string{"auth:admin"}, Inherits: []string{"USER"}},
//	}, rbac.WithVocabulary(allScopes))
//
//	table.ScopesFor("ADMIN")     // [auth:admin auth:log-in]
//	table.VerifyRole("GUEST")    // rbac.ErrInvalidRole
//
// Construction fails on circular or overly deep inheritance, on references to
// undefined roles, on roles that resolve to an empty scope list, and, when a
// vocabulary is supplied, on scopes outside of it.
package rbac
