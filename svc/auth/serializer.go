package auth

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// SessionRecord is the only session data written to the store.
type SessionRecord struct {
	UserID uuid.UUID `json:"userId"`
}

// SessionResolver rebuilds a session from a user id.
type SessionResolver interface {
	ResolveSession(ctx context.Context, userID uuid.UUID) (*Session, error)
}

// Serializer converts between sessions and store records.
type Serializer struct {
	resolver SessionResolver
}

// NewSerializer creates a Serializer backed by resolver.
func NewSerializer(resolver SessionResolver) *Serializer {
	return &Serializer{resolver: resolver}
}

// Serialize keeps only the user id; scopes and the user are rebuilt on load.
func (*Serializer) Serialize(s *Session) SessionRecord {
	return SessionRecord{UserID: s.User.ID}
}

// Deserialize rehydrates rec. A record without a user id, or one whose user
// is gone, yields (nil, nil). Other failures propagate.
func (z *Serializer) Deserialize(ctx context.Context, rec SessionRecord) (*Session, error) {
	if rec.UserID == uuid.Nil {
		return nil, nil
	}

	sess, err := z.resolver.ResolveSession(ctx, rec.UserID)
	if errors.Is(err, ErrUnauthenticated) {
		return nil, nil
	}
	return sess, err
}

// Encode marshals rec for the session store.
func (*Serializer) Encode(rec SessionRecord) ([]byte, error) {
	return json.Marshal(rec)
}

// Decode unmarshals a stored payload.
func (*Serializer) Decode(data []byte) (SessionRecord, error) {
	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return SessionRecord{}, errors.Join(ErrInvalidRecord, err)
	}
	return rec, nil
}
