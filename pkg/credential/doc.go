// Package credential implements the salted one-way password transform used to
// store and verify user credentials.
//
// A digest is the hex-encoded HMAC-SHA256 of the raw password, keyed by a
// per-user salt. Salts are generated once at signup (and on password
// rotation) and stored next to the digest. They are unique but not secret.
//
// Usage:
//
//	salt := credential.NewSalt()
//	digest := credential.Digest("pw12345", salt)
//
//	if credential.Verify(input, salt, digest) {
//	    // password matches
//	}
//
// There is no inverse transform; a forgotten password can only be replaced.
package credential
