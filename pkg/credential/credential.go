package credential

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// DigestLength is the length of a hex-encoded digest.
const DigestLength = sha256.Size * 2

// SaltLength is the length of a salt returned by NewSalt.
const SaltLength = md5.Size * 2

// saltEntropy bounds the random component mixed into a salt.
var saltEntropy = big.NewInt(1 << 62)

// Digest returns the hex-encoded HMAC-SHA256 of raw keyed by salt.
func Digest(raw, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// NewSalt returns a fresh salt: the md5 hex of "salt-<random>-<unix millis>".
// The format matches digests already stored by existing deployments.
func NewSalt() string {
	n, err := rand.Int(rand.Reader, saltEntropy)
	if err != nil {
		// crypto/rand never fails on supported platforms; fall back to the clock.
		n = big.NewInt(time.Now().UnixNano())
	}
	sum := md5.Sum(fmt.Appendf(nil, "salt-%s-%d", n.String(), time.Now().UnixMilli()))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether raw hashes to digest under salt.
// The comparison runs in constant time with respect to the digest contents.
func Verify(raw, salt, digest string) bool {
	if len(digest) != DigestLength {
		return false
	}
	computed := Digest(raw, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
