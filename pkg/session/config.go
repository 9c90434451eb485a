package session

import "time"

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"auth.sessionId"`

	// HeaderName enables the header transport alongside the cookie when set
	HeaderName string `env:"SESSION_HEADER_NAME" envDefault:""`

	// KeyPrefix namespaces session keys in the shared store
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`

	// TTL is the store-level session lifetime, refreshed on every read
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CleanupInterval for the memory store (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure flag on session cookies
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:      "auth.sessionId",
		KeyPrefix:       "session:",
		TTL:             24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}
