package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// DefaultMaxCredentialsBody caps the body LocalStrategy reads.
const DefaultMaxCredentialsBody int64 = 64 << 10

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticator performs a credential login.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*Session, error)
}

// LocalStrategy authenticates a request from {email, password} in its JSON body.
type LocalStrategy struct {
	auth    Authenticator
	maxBody int64
}

// NewLocalStrategy creates a LocalStrategy delegating to auth.
func NewLocalStrategy(auth Authenticator) *LocalStrategy {
	return &LocalStrategy{auth: auth, maxBody: DefaultMaxCredentialsBody}
}

// Authenticate reads credentials and calls Login. The body is restored so the
// route handler can decode it again. A missing or malformed body, or an
// empty field, yields ErrUnauthenticated.
func (s *LocalStrategy) Authenticate(r *http.Request) (*Session, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, ErrUnauthenticated
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBody))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var c Credentials
	if err := json.Unmarshal(body, &c); err != nil || c.Email == "" || c.Password == "" {
		return nil, ErrUnauthenticated
	}

	return s.auth.Login(r.Context(), c.Email, c.Password)
}
