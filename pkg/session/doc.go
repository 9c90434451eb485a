// Package session provides server-side session storage and token transport.
//
// A session here is an opaque identifier handed to the client plus a small
// byte payload kept in a shared TTL store. The package does not interpret the
// payload; callers encode whatever minimal record they need.
//
// # Architecture
//
// A Manager ties a Store to a Transport:
//
//	┌────────┐   token   ┌────────────┐
//	│ Client │ ────────► │  Transport │  (signed cookie, header, composite)
//	└────────┘           └────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────┐
//	│            Manager              │  Load / Save / Destroy
//	└─────────────────────────────────┘
//	           │  get / set / delete, TTL
//	           ▼
//	┌────────────────────┐
//	│ Store              │  (RedisStore, MemoryStore)
//	└────────────────────┘
//
// Reads refresh the record TTL, so an active session never expires while in
// use. Save always issues a fresh identifier and deletes the previous one,
// which prevents session fixation. Concurrent writers for the same identifier
// are last-writer-wins; no locking is done on top of the store.
//
// # Usage
//
//	cookies, _ := cookie.New([]string{signingKey})
//	store := session.NewRedisStore(redisClient, session.WithKeyPrefix("session:"))
//	manager := session.New(store, session.NewCookieTransport(cookies, "auth.sessionId"),
//	    session.WithTTL(24*time.Hour))
//
//	id, err := manager.Save(ctx, w, r, payload)
//	id, payload, err := manager.Load(ctx, r)   // ErrSessionNotFound when absent
//	err = manager.Destroy(ctx, w, r)          // idempotent
//
// # Errors
//
// ErrSessionNotFound means "no session" and is a normal outcome.
// ErrStoreUnavailable wraps every infrastructure failure from a Store and
// must not be treated as an anonymous request.
package session
