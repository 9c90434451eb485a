package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zkcargopass/cargopass/handler"
	"github.com/zkcargopass/cargopass/svc/auth"
)

// SessionService serves login, logout and the current session.
// The guard does the work; the handlers only report the outcome.
type SessionService struct {
	guard       *auth.Guard
	errorWriter handler.ErrorWriter
}

func NewSessionService(guard *auth.Guard, errorWriter handler.ErrorWriter) *SessionService {
	return &SessionService{guard: guard, errorWriter: errorWriter}
}

func (s *SessionService) Handle() http.Handler {
	r := chi.NewRouter()
	routes := s.guard.Routes(r, auth.ScopeAuthLogIn)

	routes.Post("/login", auth.Login(), handler.Wrap(s.current,
		handler.WithErrorWriter[struct{}](s.errorWriter),
		handler.WithDecorators(requireSession[struct{}]()),
	))
	routes.Post("/logout", auth.Logout(), handler.Wrap(s.logout,
		handler.WithErrorWriter[struct{}](s.errorWriter),
	))
	routes.Get("/session", auth.AccessPolicy{}, handler.Wrap(s.current,
		handler.WithErrorWriter[struct{}](s.errorWriter),
		handler.WithDecorators(requireSession[struct{}]()),
	))

	return r
}

func (s *SessionService) current(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(auth.SessionFromContext(ctx))
}

func (s *SessionService) logout(handler.Context, struct{}) handler.Response {
	return handler.JSON(true)
}
