package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkcargopass/cargopass/pkg/config"
	"github.com/zkcargopass/cargopass/pkg/rbac"
	"github.com/zkcargopass/cargopass/svc/identity"
)

func testApp(t *testing.T, extra map[string]string) *app {
	t.Helper()

	vars := map[string]string{
		"SESSION_SECRET": strings.Repeat("m", 32),
		"LOG_LEVEL":      "error",
	}
	for k, v := range extra {
		vars[k] = v
	}

	cfg, err := config.Parse[appConfig](vars)
	require.NoError(t, err)

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func serve(a *app, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	return rec
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse[appConfig](map[string]string{"SESSION_SECRET": strings.Repeat("m", 32)})
	require.NoError(t, err)

	assert.Empty(t, cfg.Postgres.ConnectionString)
	assert.Empty(t, cfg.Redis.ConnectionURL)
	assert.Equal(t, "auth.sessionId", cfg.Session.CookieName)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.Cookie.HttpOnly)
	assert.Equal(t, identity.DefaultRole, cfg.SignupRole)

	_, err = config.Parse[appConfig](map[string]string{})
	assert.Error(t, err, "SESSION_SECRET is required")
}

func TestNewApp_ShortSecret(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse[appConfig](map[string]string{"SESSION_SECRET": "short", "LOG_LEVEL": "error"})
	require.NoError(t, err)

	_, err = newApp(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewApp_UnknownSignupRole(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse[appConfig](map[string]string{
		"SESSION_SECRET": strings.Repeat("m", 32),
		"LOG_LEVEL":      "error",
		"SIGNUP_ROLE":    "AUDITOR",
	})
	require.NoError(t, err)

	_, err = newApp(context.Background(), cfg)
	assert.ErrorIs(t, err, rbac.ErrInvalidRole)
}

func TestApp_SignupRole(t *testing.T) {
	t.Parallel()
	a := testApp(t, map[string]string{"SIGNUP_ROLE": "IMPORTER"})

	rec := serve(a, http.MethodPost, "/user/signup", `{"email":"imp@example.com","password":"pw12345","name":"Imp"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"IMPORTER"`)
}

func TestApp_Health(t *testing.T) {
	t.Parallel()
	a := testApp(t, nil)

	rec := serve(a, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())

	rec = serve(a, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_NotFound(t *testing.T) {
	t.Parallel()
	a := testApp(t, nil)

	rec := serve(a, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApp_LoginFlowIsMetered(t *testing.T) {
	t.Parallel()
	a := testApp(t, nil)

	rec := serve(a, http.MethodPost, "/user/signup", `{"email":"alice@example.com","password":"pw12345","name":"Alice"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(a, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(a, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pw12345"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = serve(a, http.MethodGet, "/auth/session", "", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(a, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `auth_login_total{outcome="success"} 1`)
	assert.Contains(t, body, `auth_login_total{outcome="failure"} 1`)
	assert.Contains(t, body, `cargopass_http_requests_total{method="POST",route="/auth/login",status="401"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestApp_HeaderTransport(t *testing.T) {
	t.Parallel()
	a := testApp(t, map[string]string{"SESSION_HEADER_NAME": "X-Session-Token"})

	rec := serve(a, http.MethodPost, "/user/signup", `{"email":"bob@example.com","password":"pw12345","name":"Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(a, http.MethodPost, "/auth/login", `{"email":"bob@example.com","password":"pw12345"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get("X-Session-Token")
	require.NotEmpty(t, token)

	r := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	r.Header.Set("X-Session-Token", token)
	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}
