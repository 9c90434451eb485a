package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zkcargopass/cargopass/binder"
	"github.com/zkcargopass/cargopass/handler"
	"github.com/zkcargopass/cargopass/svc/auth"
	"github.com/zkcargopass/cargopass/svc/identity"
)

// Users is the part of identity.Service the user endpoints need.
type Users interface {
	Create(ctx context.Context, email, password, name string) (*identity.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, password string) (*identity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

type UserService struct {
	guard       *auth.Guard
	users       Users
	errorWriter handler.ErrorWriter
}

func NewUserService(guard *auth.Guard, users Users, errorWriter handler.ErrorWriter) *UserService {
	return &UserService{guard: guard, users: users, errorWriter: errorWriter}
}

// Handle mounts the user routes. Everything defaults to admin only; signup
// and password rotation relax that per route.
func (s *UserService) Handle() http.Handler {
	r := chi.NewRouter()
	routes := s.guard.Routes(r, auth.ScopeAuthAdmin)

	routes.Post("/signup", auth.Public(), handler.Wrap(s.signup,
		handler.WithBinders[SignupRequest](binder.BindJSON()),
		handler.WithErrorWriter[SignupRequest](s.errorWriter),
	))
	routes.Post("/password", auth.Scopes(auth.ScopeAuthLogIn), handler.Wrap(s.changePassword,
		handler.WithBinders[ChangePasswordRequest](binder.BindJSON()),
		handler.WithErrorWriter[ChangePasswordRequest](s.errorWriter),
		handler.WithDecorators(requireSession[ChangePasswordRequest]()),
	))
	routes.Get("/{id}", auth.AccessPolicy{}, handler.Wrap(s.findByID,
		handler.WithErrorWriter[struct{}](s.errorWriter),
	))

	return r
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *UserService) signup(ctx handler.Context, req SignupRequest) handler.Response {
	user, err := s.users.Create(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(user.Scrubbed())
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

func (s *UserService) changePassword(ctx handler.Context, req ChangePasswordRequest) handler.Response {
	user, err := s.users.ChangePassword(ctx, auth.SessionFromContext(ctx).User.ID, req.Password)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(user.Scrubbed())
}

func (s *UserService) findByID(ctx handler.Context, _ struct{}) handler.Response {
	id, err := uuid.Parse(chi.URLParam(ctx.Request(), "id"))
	if err != nil {
		return handler.Error(handler.ErrNotFound)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(user.Scrubbed())
}
