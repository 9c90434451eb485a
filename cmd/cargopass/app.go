package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zkcargopass/cargopass/handler"
	"github.com/zkcargopass/cargopass/migrations"
	"github.com/zkcargopass/cargopass/modules/account"
	"github.com/zkcargopass/cargopass/pkg/clientip"
	"github.com/zkcargopass/cargopass/pkg/cookie"
	"github.com/zkcargopass/cargopass/pkg/httpserver"
	"github.com/zkcargopass/cargopass/pkg/logger"
	"github.com/zkcargopass/cargopass/pkg/metrics"
	"github.com/zkcargopass/cargopass/pkg/pg"
	"github.com/zkcargopass/cargopass/pkg/redis"
	"github.com/zkcargopass/cargopass/pkg/requestid"
	"github.com/zkcargopass/cargopass/pkg/secrets"
	"github.com/zkcargopass/cargopass/pkg/session"
	"github.com/zkcargopass/cargopass/svc/auth"
	"github.com/zkcargopass/cargopass/svc/identity"
)

type app struct {
	log     *slog.Logger
	handler http.Handler
	closers []func() error
}

func newApp(ctx context.Context, cfg appConfig) (*app, error) {
	log, err := logger.NewFromConfig(cfg.Logger,
		logger.WithOutput(os.Stdout),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	a := &app{log: log}
	checks := []httpserver.Check{}

	storage, check, err := a.userStorage(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if check != nil {
		checks = append(checks, *check)
	}

	store, check, err := a.sessionStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if check != nil {
		checks = append(checks, *check)
	}

	transport, err := sessionTransport(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	roles, err := auth.NewRoleTable()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("role table: %w", err)
	}
	if err := roles.VerifyRole(cfg.SignupRole); err != nil {
		a.Close()
		return nil, fmt.Errorf("signup role %q: %w", cfg.SignupRole, err)
	}
	log.Debug("role table loaded", slog.Any("roles", roles.Roles()))

	users := identity.NewService(storage, identity.WithLogger(log), identity.WithDefaultRole(cfg.SignupRole))
	authSvc := auth.NewService(users, roles, auth.WithServiceLogger(log), auth.WithServiceMetrics(m))
	errs := account.NewErrorWriter(log)
	guard := auth.NewGuard(
		session.NewFromConfig(cfg.Session, store, transport),
		auth.NewSerializer(authSvc),
		auth.NewLocalStrategy(authSvc),
		auth.WithGuardLogger(log),
		auth.WithGuardMetrics(m),
		auth.WithErrorWriter(errs),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.NewFromConfig(cfg.ClientIP).Middleware,
		middleware.Recoverer,
		m.Middleware,
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) { errs(w, r, handler.ErrNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { errs(w, r, handler.ErrMethodNotAllowed) })

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, cfg.HTTP.CheckTimeout, checks...))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	r.Mount("/", account.Router(account.RouterOptions{
		Sessions: account.NewSessionService(guard, errs),
		Users:    account.NewUserService(guard, users, errs),
	}))

	a.handler = r
	return a, nil
}

func (a *app) userStorage(ctx context.Context, cfg appConfig) (identity.Storage, *httpserver.Check, error) {
	if cfg.Postgres.ConnectionString == "" {
		a.log.WarnContext(ctx, "PG_CONN_URL is empty, users are kept in memory")
		return identity.NewMemoryStorage(), nil, nil
	}

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	if err := pg.Migrate(ctx, pool, migrations.FS, cfg.Postgres, a.log); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	db := pg.OpenDB(pool)
	a.closers = append(a.closers, db.Close)

	return identity.NewPostgresStorage(db), &httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)}, nil
}

func (a *app) sessionStore(ctx context.Context, cfg appConfig) (session.Store, *httpserver.Check, error) {
	if cfg.Redis.ConnectionURL == "" {
		a.log.WarnContext(ctx, "REDIS_URL is empty, sessions are kept in memory")
		store := session.NewMemoryStore(cfg.Session.CleanupInterval)
		a.closers = append(a.closers, store.Close)
		return store, nil, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	a.closers = append(a.closers, client.Close)

	return session.NewRedisStoreFromConfig(client, cfg.Session), &httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}, nil
}

// sessionTransport signs the session cookie with a key derived from the
// master secret. A configured header name adds a bearer-style header transport.
func sessionTransport(cfg appConfig) (session.Transport, error) {
	keys := make([]string, 0, 2)
	for _, master := range []string{cfg.SessionSecret, cfg.PreviousSessionSecret} {
		if master == "" {
			continue
		}
		key, err := secrets.DeriveHex([]byte(master), secrets.PurposeCookieSigning)
		if err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
		keys = append(keys, key)
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie, keys)
	if err != nil {
		return nil, fmt.Errorf("cookie manager: %w", err)
	}

	var opts []cookie.Option
	if cfg.Session.SecureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	cookieTransport := session.NewCookieTransport(cookies, cfg.Session.CookieName, opts...)

	if cfg.Session.HeaderName == "" {
		return cookieTransport, nil
	}
	return session.NewCompositeTransport(cookieTransport, session.NewHeaderTransport(cfg.Session.HeaderName)), nil
}

// Close releases backends in reverse order of acquisition.
func (a *app) Close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Error("shutdown cleanup failed", logger.Error(err))
	}
}
