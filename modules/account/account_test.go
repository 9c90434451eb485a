package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkcargopass/cargopass/modules/account"
	"github.com/zkcargopass/cargopass/pkg/cookie"
	"github.com/zkcargopass/cargopass/pkg/session"
	"github.com/zkcargopass/cargopass/svc/auth"
	"github.com/zkcargopass/cargopass/svc/identity"
)

type app struct {
	handler http.Handler
	storage *identity.MemoryStorage
}

func newApp(t *testing.T) *app {
	t.Helper()

	storage := identity.NewMemoryStorage()
	users := identity.NewService(storage)
	roles, err := auth.NewRoleTable()
	require.NoError(t, err)
	authSvc := auth.NewService(users, roles)

	cookies, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)
	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	sessions := session.New(store, session.NewCookieTransport(cookies, "auth.sessionId"))

	errs := account.NewErrorWriter(nil)
	guard := auth.NewGuard(sessions, auth.NewSerializer(authSvc), auth.NewLocalStrategy(authSvc), auth.WithErrorWriter(errs))

	return &app{
		handler: account.Router(account.RouterOptions{
			Sessions: account.NewSessionService(guard, errs),
			Users:    account.NewUserService(guard, users, errs),
		}),
		storage: storage,
	}
}

func (a *app) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
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

func (a *app) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rec := a.do(http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth.sessionId" {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func (a *app) signup(t *testing.T, email, password string) identity.User {
	t.Helper()
	rec := a.do(http.MethodPost, "/user/signup", `{"email":"`+email+`","password":"`+password+`","name":"Test"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var u identity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	return u
}

func (a *app) promote(t *testing.T, id uuid.UUID, role string) {
	t.Helper()
	ctx := context.Background()
	u, err := a.storage.GetByID(ctx, id)
	require.NoError(t, err)
	u.Role = role
	require.NoError(t, a.storage.Update(ctx, u))
}

type errorBody struct {
	Error struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e), rec.Body.String())
	return e
}

func TestAliceEndToEnd(t *testing.T) {
	t.Parallel()
	a := newApp(t)

	alice := a.signup(t, "alice@example.com", "pw12345")
	assert.Equal(t, "USER", alice.Role)
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.NotContains(t, a.do(http.MethodPost, "/user/signup", `{"email":"alice@example.com","password":"pw12345","name":"Test"}`).Body.String(), "password")

	rec := a.do(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Error.Code)

	rec = a.do(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pw12345"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var sess auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, alice.ID, sess.User.ID)
	assert.Equal(t, "USER", sess.SessionRole)
	assert.Contains(t, sess.Scopes, auth.ScopeAuthLogIn)

	c := a.login(t, "alice@example.com", "pw12345")

	rec = a.do(http.MethodGet, "/auth/session", "", c)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodPost, "/auth/logout", "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `true`, rec.Body.String())

	rec = a.do(http.MethodGet, "/auth/session", "", c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignup(t *testing.T) {
	t.Parallel()

	t.Run("get or create", func(t *testing.T) {
		t.Parallel()
		a := newApp(t)
		first := a.signup(t, "bob@example.com", "pw12345")
		second := a.signup(t, "BOB@example.com", "another")

		assert.Equal(t, first.ID, second.ID)
		a.login(t, "bob@example.com", "pw12345")
		assert.Equal(t, http.StatusUnauthorized,
			a.do(http.MethodPost, "/auth/login", `{"email":"bob@example.com","password":"another"}`).Code)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		a := newApp(t)

		rec := a.do(http.MethodPost, "/user/signup", `{"email":"not-an-email","password":"x","name":""}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		e := decodeError(t, rec)
		assert.Equal(t, "validation_error", e.Error.Code)
		assert.Contains(t, e.Error.Details, "email")
		assert.Contains(t, e.Error.Details, "password")
		assert.Contains(t, e.Error.Details, "name")
	})

	t.Run("content type", func(t *testing.T) {
		t.Parallel()
		a := newApp(t)

		r := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(`email=a`))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		a.handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		a := newApp(t)

		rec := a.do(http.MethodPost, "/user/signup", `{"email":"c@example.com","password":"pw12345","name":"C","role":"ADMIN"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	a := newApp(t)
	a.signup(t, "dave@example.com", "pw12345")
	c := a.login(t, "dave@example.com", "pw12345")

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/user/password", `{"password":"newpass"}`).Code)

	rec := a.do(http.MethodPost, "/user/password", `{"password":"x"}`, c)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(http.MethodPost, "/user/password", `{"password":"newpass"}`, c)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "digest")

	a.login(t, "dave@example.com", "newpass")
	assert.Equal(t, http.StatusUnauthorized,
		a.do(http.MethodPost, "/auth/login", `{"email":"dave@example.com","password":"pw12345"}`).Code)
}

func TestFindUser(t *testing.T) {
	t.Parallel()
	a := newApp(t)
	erin := a.signup(t, "erin@example.com", "pw12345")
	root := a.signup(t, "root@example.com", "pw12345")
	a.promote(t, root.ID, auth.RoleAdmin)

	userCookie := a.login(t, "erin@example.com", "pw12345")
	adminCookie := a.login(t, "root@example.com", "pw12345")

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/user/"+erin.ID.String(), "").Code)

	rec := a.do(http.MethodGet, "/user/"+erin.ID.String(), "", userCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Error.Code)

	rec = a.do(http.MethodGet, "/user/"+erin.ID.String(), "", adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var got identity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, erin.ID, got.ID)

	rec = a.do(http.MethodGet, "/user/"+uuid.NewString(), "", adminCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/user/not-a-uuid", "", adminCookie).Code)
}
