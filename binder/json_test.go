package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkcargopass/cargopass/binder"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func request(contentType, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestBindJSON(t *testing.T) {
	t.Parallel()
	bind := binder.BindJSON()

	t.Run("decodes body", func(t *testing.T) {
		var c credentials
		require.NoError(t, bind(request("application/json; charset=utf-8", `{"email":"a@example.com","password":"pw"}`), &c))
		assert.Equal(t, credentials{Email: "a@example.com", Password: "pw"}, c)
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		want        error
	}{
		{"missing content type", "", `{}`, binder.ErrMissingContentType},
		{"wrong media type", "text/plain", `{}`, binder.ErrUnsupportedMediaType},
		{"empty body", "application/json", ``, binder.ErrInvalidJSON},
		{"malformed", "application/json", `{"email":`, binder.ErrInvalidJSON},
		{"unknown field", "application/json", `{"email":"a","role":"ADMIN"}`, binder.ErrInvalidJSON},
		{"trailing data", "application/json", `{"email":"a"}{"email":"b"}`, binder.ErrInvalidJSON},
		{"wrong type", "application/json", `{"email":42}`, binder.ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c credentials
			assert.ErrorIs(t, bind(request(tt.contentType, tt.body), &c), tt.want)
		})
	}
}

func TestBindJSON_MaxBodySize(t *testing.T) {
	t.Parallel()
	bind := binder.BindJSON(binder.WithMaxBodySize(16))

	var c credentials
	err := bind(request("application/json", `{"email":"`+strings.Repeat("a", 64)+`"}`), &c)
	assert.ErrorIs(t, err, binder.ErrInvalidJSON)
}
