package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const minSecretLength = 32

// separator joins the encoded value and its signature.
const separator = "."

var encoding = base64.RawURLEncoding

// Manager writes and reads cookies with shared defaults. Signed cookies are
// bound to their name, so a value signed for one cookie fails under another.
type Manager struct {
	keys     [][]byte
	defaults Options
}

// New creates a Manager. secrets[0] signs; every secret verifies.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([][]byte, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		keys = append(keys, []byte(s))
	}

	return &Manager{
		keys: keys,
		defaults: applyOptions(Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}, opts),
	}, nil
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	http.SetCookie(w, m.build(name, value, applyOptions(m.defaults, opts)))
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	switch {
	case errors.Is(err, http.ErrNoCookie):
		return "", ErrCookieNotFound
	case err != nil:
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie on the client. Path and domain must match the
// ones it was set with, so the same options apply.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	c := m.build(name, "", applyOptions(m.defaults, opts))
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, encoding.EncodeToString([]byte(value))+separator+m.mac(m.keys[0], name, value), opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	encoded, signature, ok := strings.Cut(signed, separator)
	if !ok {
		return "", ErrInvalidFormat
	}
	raw, err := encoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	value := string(raw)

	for _, key := range m.keys {
		if hmac.Equal([]byte(signature), []byte(m.mac(key, name, value))) {
			return value, nil
		}
	}
	return "", ErrInvalidSignature
}

func (m *Manager) build(name, value string, o Options) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}

func (m *Manager) mac(key []byte, name, value string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return encoding.EncodeToString(h.Sum(nil))
}
