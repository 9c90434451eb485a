// Package secrets derives purpose-bound keys from the application master
// secret.
//
// Keys are derived with HKDF-SHA-256 using the purpose string as HKDF info,
// so the cookie signing key and any other derived key never share material
// even though they come from the same master secret. Rotating the master
// secret rotates every derived key.
//
//	key, err := secrets.DeriveKey([]byte(cfg.AuthSecret), secrets.PurposeCookieSigning)
//
// DeriveHex returns the same key hex-encoded, which is the form expected by
// pkg/cookie.
package secrets
