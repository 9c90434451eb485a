package account

import (
	"github.com/zkcargopass/cargopass/handler"
	"github.com/zkcargopass/cargopass/svc/auth"
)

// requireSession rejects requests that reached the handler without a
// session in context.
func requireSession[R any]() handler.Decorator[R] {
	return func(next handler.HandlerFunc[R]) handler.HandlerFunc[R] {
		return func(ctx handler.Context, req R) handler.Response {
			if auth.SessionFromContext(ctx) == nil {
				return handler.Error(handler.ErrUnauthorized)
			}
			return next(ctx, req)
		}
	}
}
