package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the size of every derived key.
	KeySize = 32

	// MinMasterKeySize is the minimum accepted master secret length.
	MinMasterKeySize = 32

	// saltInfo is the fixed HKDF salt providing domain separation for this service.
	saltInfo = "cargopass-secrets-v1"
)

// Purposes for derived keys.
const (
	PurposeCookieSigning = "cookie-signing"
)

// DeriveKey derives a KeySize key from master for the given purpose.
func DeriveKey(master []byte, purpose string) ([]byte, error) {
	if len(master) < MinMasterKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrMasterKeyTooShort, len(master), MinMasterKeySize)
	}
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}

	r := hkdf.New(sha256.New, master, []byte(saltInfo), []byte(purpose))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// DeriveHex is DeriveKey with the result hex-encoded.
func DeriveHex(master []byte, purpose string) (string, error) {
	key, err := DeriveKey(master, purpose)
	if err != nil {
		return "", err
	}
	defer clearBytes(key)
	return hex.EncodeToString(key), nil
}

// clearBytes zeros out a byte slice holding key material.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateKey creates a new random KeySize key, suitable as a master secret.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
