// Package auth authenticates requests and enforces scope-based access.
//
// Login verifies an email and password against the identity service and
// returns a Session whose scopes come from the role table. Only the user id
// is persisted in the session store; every request rehydrates the Session,
// so role changes apply on the next request.
//
// Routes declare an AccessPolicy when they are registered:
//
//	routes := guard.Routes(r, auth.ScopeAuthLogIn)
//	routes.Post("/login", auth.Login(), loginHandler)
//	routes.Post("/logout", auth.Logout(), logoutHandler)
//	routes.Get("/admin", auth.Scopes(auth.ScopeAuthAdmin), adminHandler)
//
// The Guard evaluates Public, then Logout, then the required scopes against
// the stored session. A request without a matching session falls back to the
// LocalStrategy, which reads JSON credentials from the body; Login routes go
// to the strategy directly. Denials are 403 when the caller is authenticated
// and 401 otherwise.
package auth
