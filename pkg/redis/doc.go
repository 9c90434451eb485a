// Package redis provides helpers for connecting to the Redis server that backs
// the shared session store.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the initial connection and ping using the
//     supplied configuration.
//   - Healthcheck, a closure suitable for readiness probes.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // terminate the application
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
//
// # Errors
//
// Sentinel errors (e.g. ErrRedisNotReady) wrap the underlying go-redis errors
// using errors.Join.
package redis
