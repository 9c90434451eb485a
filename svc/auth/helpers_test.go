package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zkcargopass/cargopass/pkg/cookie"
	"github.com/zkcargopass/cargopass/pkg/rbac"
	"github.com/zkcargopass/cargopass/pkg/session"
	"github.com/zkcargopass/cargopass/svc/auth"
	"github.com/zkcargopass/cargopass/svc/identity"
)

const (
	cookieName = "auth.sessionId"
	testSecret = "0123456789abcdef0123456789abcdef"
)

type recorder struct {
	mu        sync.Mutex
	logins    []string
	decisions []string
}

func (r *recorder) LoginOutcome(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, outcome)
}

func (r *recorder) GuardDecision(decision string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, decision)
}

func (r *recorder) lastDecision() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.decisions) == 0 {
		return ""
	}
	return r.decisions[len(r.decisions)-1]
}

type harness struct {
	storage *identity.MemoryStorage
	users   *identity.Service
	auth    *auth.Service
	store   *session.MemoryStore
	guard   *auth.Guard
	router  chi.Router
	metrics *recorder

	cookies *cookie.Manager
	mu      sync.Mutex
	seq     int
}

// nextToken issues predictable store keys so tests can reach the raw record.
func (h *harness) nextToken() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	return fmt.Sprintf("token-%d", h.seq), nil
}

// tokenFor returns the store key behind a signed session cookie.
func (h *harness) tokenFor(t *testing.T, c *http.Cookie) string {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	token, err := h.cookies.GetSigned(r, cookieName)
	require.NoError(t, err)
	return token
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	roles      *rbac.Table
	wrapStore  func(session.Store) session.Store
	wrapFinder func(auth.UserFinder) auth.UserFinder
}

func withRoles(t *rbac.Table) harnessOption { return func(c *harnessConfig) { c.roles = t } }

func withStore(fn func(session.Store) session.Store) harnessOption {
	return func(c *harnessConfig) { c.wrapStore = fn }
}

func withUserFinder(fn func(auth.UserFinder) auth.UserFinder) harnessOption {
	return func(c *harnessConfig) { c.wrapFinder = fn }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	storage := identity.NewMemoryStorage()
	users := identity.NewService(storage)
	memStore := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = memStore.Close() })

	var cfg harnessConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var store session.Store = memStore
	if cfg.wrapStore != nil {
		store = cfg.wrapStore(memStore)
	}
	var finder auth.UserFinder = users
	if cfg.wrapFinder != nil {
		finder = cfg.wrapFinder(users)
	}
	if cfg.roles == nil {
		table, err := auth.NewRoleTable()
		require.NoError(t, err)
		cfg.roles = table
	}

	metrics := &recorder{}
	svc := auth.NewService(finder, cfg.roles, auth.WithServiceMetrics(metrics))

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	h := &harness{storage: storage, users: users, store: memStore, metrics: metrics, cookies: cookies}
	manager := session.New(store, session.NewCookieTransport(cookies, cookieName),
		session.WithTokenGenerator(h.nextToken))

	h.auth = svc
	h.guard = auth.NewGuard(manager, auth.NewSerializer(svc), auth.NewLocalStrategy(svc), auth.WithGuardMetrics(metrics))
	h.router = h.routes()
	return h
}

func (h *harness) routes() chi.Router {
	r := chi.NewRouter()

	open := h.guard.Routes(r)
	open.Get("/public", auth.Public(), writeSession)
	open.Post("/login", auth.Login(), loginHandler)
	open.Post("/logout", auth.Logout(), writeSession)

	loggedIn := h.guard.Routes(r, auth.ScopeAuthLogIn)
	loggedIn.Get("/me", auth.AccessPolicy{}, writeSession)
	loggedIn.Post("/me", auth.AccessPolicy{}, writeSession)
	loggedIn.Get("/admin", auth.Scopes(auth.ScopeAuthAdmin), writeSession)
	loggedIn.Post("/admin", auth.Scopes(auth.ScopeAuthAdmin), writeSession)
	loggedIn.Get("/doc/x", auth.Scopes("doc:x"), writeSession)
	loggedIn.Get("/doc/x-or-q", auth.Scopes("doc:q", "doc:x"), writeSession)

	adminOnly := h.guard.Routes(r, auth.ScopeAuthAdmin)
	adminOnly.Get("/admin/inherited", auth.AccessPolicy{}, writeSession)
	adminOnly.Get("/admin/any-session", auth.Authenticated(), writeSession)

	return r
}

// loginHandler decodes the body again to prove the strategy restored it.
func loginHandler(w http.ResponseWriter, r *http.Request) {
	var c auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "body not restored", http.StatusTeapot)
		return
	}
	writeSession(w, r)
}

func writeSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s := auth.SessionFromContext(r.Context())
	if s == nil {
		_, _ = w.Write([]byte(`null`))
		return
	}
	_ = json.NewEncoder(w).Encode(s)
}

func (h *harness) signup(t *testing.T, email, password, role string) *identity.User {
	t.Helper()
	ctx := context.Background()
	u, err := h.users.Create(ctx, email, password, "Test User")
	require.NoError(t, err)
	if role != "" && role != u.Role {
		h.setRole(t, u.ID, role)
		u.Role = role
	}
	return u
}

func (h *harness) setRole(t *testing.T, id uuid.UUID, role string) {
	t.Helper()
	ctx := context.Background()
	u, err := h.storage.GetByID(ctx, id)
	require.NoError(t, err)
	u.Role = role
	require.NoError(t, h.storage.Update(ctx, u))
}

func (h *harness) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
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
	h.router.ServeHTTP(rec, r)
	return rec
}

func (h *harness) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rec := h.do(http.MethodPost, "/login", credentialsBody(email, password))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c := sessionCookie(rec)
	require.NotNil(t, c, "login must set the session cookie")
	return c
}

func credentialsBody(email, password string) string {
	b, _ := json.Marshal(auth.Credentials{Email: email, Password: password})
	return string(b)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) *auth.Session {
	t.Helper()
	var s *auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

type failingStore struct {
	session.Store
	getErr, deleteErr error
}

func (f failingStore) Get(ctx context.Context, id string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Store.Get(ctx, id)
}

func (f failingStore) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Store.Delete(ctx, id)
}

type failingFinder struct {
	auth.UserFinder
	byIDErr error
}

func (f failingFinder) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return nil, f.byIDErr
}
