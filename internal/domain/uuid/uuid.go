package uuid

import (
	"github.com/google/uuid"
)

// UUID is the identifier type used across the domain.
type UUID string

// MustParseUUID parses a string into a UUID or panics.
func MustParseUUID(s string) UUID {
	id, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewUUID creates a new random UUID.
func NewUUID() UUID {
	return UUID(uuid.New().String())
}

// ParseUUID parses a string into a UUID.
func ParseUUID(s string) (UUID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return UUID(s), nil
}

// String returns the string representation.
func (u UUID) String() string {
	return string(u)
}

// IsZero reports whether the UUID is empty.
func (u UUID) IsZero() bool {
	return u == ""
}

// FromGoogleUUID converts a google/uuid value into a domain UUID.
func FromGoogleUUID(id uuid.UUID) UUID {
	return UUID(id.String())
}

// ToGoogleUUID converts a domain UUID into a google/uuid value.
func (u UUID) ToGoogleUUID() (uuid.UUID, error) {
	return uuid.Parse(string(u))
}
