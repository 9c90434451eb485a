// Package cookie provides an HTTP cookie manager with HMAC-signed values.
//
// The Manager is initialised with one or more secrets and a set of default
// cookie Options. The first secret signs new cookies; every secret is tried
// when verifying, which allows rotation without logging everybody out.
//
//	man, err := cookie.New([]string{signingKey}, cookie.WithSecure(true))
//	if err != nil { return err }
//
//	_ = man.SetSigned(w, "auth.sessionId", id)
//	id, err := man.GetSigned(r, "auth.sessionId") // ErrInvalidSignature when tampered
//
// Signed values have the form b64(value) "." b64(hmac-sha256(name, value)),
// unpadded URL-safe base64, so a value cannot be replayed under another name.
//
// The Config struct can be populated from environment variables via
// github.com/caarlos0/env and passed to NewFromConfig.
package cookie
