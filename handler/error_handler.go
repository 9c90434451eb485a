package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zkcargopass/cargopass/binder"
	"github.com/zkcargopass/cargopass/pkg/logger"
	"github.com/zkcargopass/cargopass/pkg/validator"
)

// ErrorWriter writes err as an HTTP response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Mapping translates errors matching Target (errors.Is) into HTTP.
type Mapping struct {
	Target error
	HTTP   HTTPError
}

// Map is shorthand for a Mapping literal.
func Map(target error, httpErr HTTPError) Mapping {
	return Mapping{Target: target, HTTP: httpErr}
}

var binderMappings = []Mapping{
	Map(binder.ErrMissingContentType, ErrUnsupportedMediaType),
	Map(binder.ErrUnsupportedMediaType, ErrUnsupportedMediaType),
	Map(binder.ErrInvalidJSON, ErrBadRequest),
}

// NewErrorWriter returns the JSON ErrorWriter. Mappings are checked in order
// after HTTPError and validation errors. Server errors are logged at error
// level, client errors at debug.
func NewErrorWriter(log *slog.Logger, mappings ...Mapping) ErrorWriter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	all := append(append([]Mapping{}, mappings...), binderMappings...)

	return func(w http.ResponseWriter, r *http.Request, err error) {
		status, detail := classify(err, all)

		if status >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method), slog.String("path", r.URL.Path),
				slog.Int("status", status), logger.Error(err))
		} else {
			log.DebugContext(r.Context(), "request rejected",
				slog.String("method", r.Method), slog.String("path", r.URL.Path),
				slog.Int("status", status), logger.Error(err))
		}

		writeJSON(w, status, errorEnvelope{Error: detail})
	}
}

func classify(err error, mappings []Mapping) (int, ErrorDetail) {
	if fields := validator.ExtractValidationErrors(err); fields != nil {
		details := make(map[string][]string)
		for _, f := range fields {
			details[f.Field] = append(details[f.Field], f.Message)
		}
		return ErrUnprocessableEntity.Code, ErrorDetail{
			Code:    ErrUnprocessableEntity.Key,
			Message: "Validation failed",
			Details: details,
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, detailFor(httpErr)
	}

	for _, m := range mappings {
		if errors.Is(err, m.Target) {
			return m.HTTP.Code, detailFor(m.HTTP)
		}
	}

	return ErrInternalServerError.Code, detailFor(ErrInternalServerError)
}

func detailFor(e HTTPError) ErrorDetail {
	return ErrorDetail{Code: e.Key, Message: http.StatusText(e.Code)}
}
