package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers handlers on a chi router with their access policy.
// The scopes given to Guard.Routes act as the controller-level requirement.
type Routes struct {
	guard  *Guard
	router chi.Router
	scopes []string
}

// Routes binds guard to r with controller-level scopes.
func (g *Guard) Routes(r chi.Router, controllerScopes ...string) *Routes {
	return &Routes{guard: g, router: r, scopes: controllerScopes}
}

// Handle registers h for method and pattern behind policy.
func (rt *Routes) Handle(method, pattern string, policy AccessPolicy, h http.Handler) {
	rt.router.With(rt.guard.Middleware(rt.scopes, policy)).Method(method, pattern, h)
}

func (rt *Routes) Get(pattern string, policy AccessPolicy, h http.HandlerFunc) {
	rt.Handle(http.MethodGet, pattern, policy, h)
}

func (rt *Routes) Post(pattern string, policy AccessPolicy, h http.HandlerFunc) {
	rt.Handle(http.MethodPost, pattern, policy, h)
}
