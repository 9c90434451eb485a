// Package handler provides type-safe HTTP handlers with JSON rendering and a
// single error-to-response mapping.
//
// A HandlerFunc receives a typed request value filled by the configured
// binders and returns a Response:
//
//	type signupRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//		Name     string `json:"name"`
//	}
//
//	h := handler.HandlerFunc[signupRequest](
//		func(ctx handler.Context, req signupRequest) handler.Response {
//			user, err := users.Create(ctx, req.Email, req.Password, req.Name)
//			if err != nil {
//				return handler.Error(err)
//			}
//			return handler.JSON(user)
//		},
//	)
//
//	r.Post("/user/signup", handler.Wrap(h, handler.WithBinders[signupRequest](binder.BindJSON())))
//
// # Errors
//
// Errors returned from binders, rendering, or handler.Error go through an
// ErrorWriter. NewErrorWriter maps HTTPError values, validator failures and
// registered sentinel mappings to status codes, and writes the envelope
//
//	{"error": {"code": "unauthorized", "message": "Unauthorized"}}
//
// Anything unmapped becomes 500 with a generic message; the cause is logged,
// never sent to the client.
package handler
