package user

import (
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// AuthMethod identifies how an account authenticates.
type AuthMethod string

const (
	// AuthMethodEmail is a regular email+password account.
	AuthMethodEmail AuthMethod = "email"

	// AuthMethodThirdParty is an account created via an external OAuth provider.
	// Such accounts carry no local password.
	AuthMethodThirdParty AuthMethod = "third-party"
)

// User represents an application account.
type User struct {
	id            uuid.UUID
	email         string
	username      string
	passwordHash  *string
	emailVerified bool
	authMethod    AuthMethod
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUser creates a new email+password account with an unverified email.
func NewUser(email, username, passwordHash string) (*User, error) {
	if email == "" {
		return nil, errs.ErrInvalidInput
	}
	if username == "" {
		return nil, errs.ErrInvalidInput
	}
	if passwordHash == "" {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &User{
		id:            uuid.NewUUID(),
		email:         email,
		username:      username,
		passwordHash:  &passwordHash,
		emailVerified: false,
		authMethod:    AuthMethodEmail,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// NewThirdPartyUser creates an account backed by an external OAuth provider.
// The email is considered verified by the provider and no password is stored.
func NewThirdPartyUser(email, username string) (*User, error) {
	if email == "" {
		return nil, errs.ErrInvalidInput
	}
	if username == "" {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &User{
		id:            uuid.NewUUID(),
		email:         email,
		username:      username,
		emailVerified: true,
		authMethod:    AuthMethodThirdParty,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct restores a user from storage.
func Reconstruct(
	id uuid.UUID,
	email, username string,
	passwordHash *string,
	emailVerified bool,
	authMethod AuthMethod,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		email:         email,
		username:      username,
		passwordHash:  passwordHash,
		emailVerified: emailVerified,
		authMethod:    authMethod,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the user ID.
func (u *User) ID() uuid.UUID {
	return u.id
}

// Email returns the account email.
func (u *User) Email() string {
	return u.email
}

// Username returns the display username.
func (u *User) Username() string {
	return u.username
}

// PasswordHash returns the stored password hash, nil for third-party accounts.
func (u *User) PasswordHash() *string {
	return u.passwordHash
}

// HasPassword reports whether the account carries a local password.
func (u *User) HasPassword() bool {
	return u.passwordHash != nil && *u.passwordHash != ""
}

// EmailVerified reports whether the email has been confirmed.
func (u *User) EmailVerified() bool {
	return u.emailVerified
}

// AuthMethod returns how the account authenticates.
func (u *User) AuthMethod() AuthMethod {
	return u.authMethod
}

// CreatedAt returns the creation time.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the last update time.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Update methods return a modified copy instead of mutating the receiver,
// so a half-applied update can never leak into shared state.

// WithVerifiedEmail returns a copy of the user with the email marked verified.
func (u *User) WithVerifiedEmail() *User {
	clone := *u
	clone.emailVerified = true
	clone.updatedAt = time.Now()
	return &clone
}

// WithPasswordHash returns a copy of the user with a replaced password hash.
func (u *User) WithPasswordHash(hash string) (*User, error) {
	if hash == "" {
		return nil, errs.ErrInvalidInput
	}
	clone := *u
	clone.passwordHash = &hash
	clone.updatedAt = time.Now()
	return &clone, nil
}

// WithUsername returns a copy of the user with a replaced username.
func (u *User) WithUsername(username string) (*User, error) {
	if username == "" {
		return nil, errs.ErrInvalidInput
	}
	clone := *u
	clone.username = username
	clone.updatedAt = time.Now()
	return &clone, nil
}
