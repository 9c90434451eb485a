package handler

import (
	"errors"
	"net/http"

	"github.com/zkcargopass/cargopass/binder"
)

// HandlerFunc handles a request whose body has already been bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses HTTP requests into typed values.
type Bind func(r *http.Request, v any) error

// Decorator wraps a HandlerFunc. The first decorator passed to WithDecorators
// is the outermost.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

// WrapOption configures Wrap.
type WrapOption[R any] func(*wrapConfig[R])

type wrapConfig[R any] struct {
	binders     []Bind
	errorWriter ErrorWriter
	decorators  []Decorator[R]
}

// WithBinders sets request binders applied in order. A binder returning
// binder.ErrBinderNotApplicable is skipped.
func WithBinders[R any](binders ...Bind) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorWriter routes errors through w.
func WithErrorWriter[R any](w ErrorWriter) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if w != nil {
			c.errorWriter = w
		}
	}
}

// WithDecorators adds decorators around the handler.
func WithDecorators[R any](decorators ...Decorator[R]) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc. Without
// WithErrorWriter, errors go through NewErrorWriter(nil).
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.errorWriter == nil {
		cfg.errorWriter = NewErrorWriter(nil)
	}

	final := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		final = cfg.decorators[i](final)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				if errors.Is(err, binder.ErrBinderNotApplicable) {
					continue
				}
				cfg.errorWriter(w, r, err)
				return
			}
		}

		response := final(ctx, req)
		if response == nil {
			cfg.errorWriter(w, r, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorWriter(w, r, err)
		}
	}
}
