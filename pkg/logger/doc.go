// Package logger builds the service's *slog.Logger.
//
// New takes functional options for format, level, output, static attributes
// and context extractors. Extractors run on every record and pull
// request-scoped values (request id, user id) out of context.Context, so
// handlers can log with plain slog calls and still get correlated output:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "cargopass"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "login succeeded", logger.UserID(id), logger.Component("auth"))
//
// NewFromConfig reads the same settings from a Config populated by
// github.com/caarlos0/env.
//
// Attribute helpers (Error, UserID, Role, RequestID, Component, ...) keep key
// names consistent across packages. Helpers that receive a nil value return
// an empty slog.Attr, which slog drops.
package logger
