package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the account module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	// Sessions serves /auth: login, logout and the current session.
	Sessions Mountable

	// Users serves /user: signup, password rotation and admin lookup.
	Users Mountable
}

// Router creates the account module router.
//
// Example:
//
//	errs := account.NewErrorWriter(log)
//	r := chi.NewRouter()
//	r.Mount("/", account.Router(account.RouterOptions{
//	    Sessions: account.NewSessionService(guard, errs),
//	    Users:    account.NewUserService(guard, users, errs),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Sessions != nil {
		r.Mount("/auth", opts.Sessions.Handle())
	}
	if opts.Users != nil {
		r.Mount("/user", opts.Users.Handle())
	}

	return r
}
