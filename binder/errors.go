package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrInvalidJSON          = errors.New("binder.invalid_json")
	ErrMissingContentType   = errors.New("binder.missing_content_type")

	// ErrBinderNotApplicable tells handler.Wrap to skip a binder.
	ErrBinderNotApplicable = errors.New("binder.not_applicable")
)
