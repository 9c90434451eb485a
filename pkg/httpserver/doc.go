// Package httpserver runs the service's HTTP listener with graceful shutdown
// and provides liveness and readiness handlers.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM arrives, or the
// listener fails. On shutdown in-flight requests get ShutdownTimeout to
// finish.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// ReadinessHandler runs named checks (database ping, redis ping) with a
// per-request deadline and reports each result as JSON.
package httpserver
