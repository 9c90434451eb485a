package identity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned at signup unless WithDefaultRole overrides it.
const DefaultRole = "USER"

// User is a stored account. The digest and salt never leave the process in
// JSON form.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordDigest string    `json:"-"`
	PasswordSalt   string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Scrubbed returns a copy without credential material.
func (u User) Scrubbed() User {
	u.PasswordDigest = ""
	u.PasswordSalt = ""
	return u
}
