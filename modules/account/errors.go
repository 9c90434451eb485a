package account

import (
	"log/slog"

	"github.com/zkcargopass/cargopass/handler"
	"github.com/zkcargopass/cargopass/svc/auth"
	"github.com/zkcargopass/cargopass/svc/identity"
)

// ErrorMappings translate domain errors into HTTP responses.
// identity.ErrInvalidInput carries validation errors and needs no entry.
var ErrorMappings = []handler.Mapping{
	handler.Map(identity.ErrUserNotFound, handler.ErrNotFound),
	handler.Map(auth.ErrUnauthenticated, handler.ErrUnauthorized),
	handler.Map(auth.ErrForbidden, handler.ErrForbidden),
}

// NewErrorWriter returns the error writer shared by the account handlers and
// the guard.
func NewErrorWriter(log *slog.Logger) handler.ErrorWriter {
	return handler.NewErrorWriter(log, ErrorMappings...)
}
