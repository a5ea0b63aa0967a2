package verification

import (
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// RecoveryTTL is how long a recovery key stays valid after issue.
const RecoveryTTL = 30 * time.Minute

// Recovery is a single-use password recovery grant issued after a
// successful RECOVERY email verification.
type Recovery struct {
	email     string
	key       string
	expiresAt time.Time
	used      bool
	createdAt time.Time
	updatedAt time.Time
}

// NewRecovery issues a fresh recovery grant with a random key and expiry
// RecoveryTTL from now.
func NewRecovery(email string, now time.Time) (*Recovery, error) {
	if email == "" {
		return nil, errs.ErrInvalidInput
	}

	return &Recovery{
		email:     email,
		key:       uuid.NewUUID().String(),
		expiresAt: now.Add(RecoveryTTL),
		used:      false,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructRecovery restores a recovery grant from storage.
func ReconstructRecovery(
	email, key string,
	expiresAt time.Time,
	used bool,
	createdAt, updatedAt time.Time,
) *Recovery {
	return &Recovery{
		email:     email,
		key:       key,
		expiresAt: expiresAt,
		used:      used,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Email returns the address the grant was issued for.
func (r *Recovery) Email() string {
	return r.email
}

// Key returns the recovery key.
func (r *Recovery) Key() string {
	return r.key
}

// ExpiresAt returns the expiry time.
func (r *Recovery) ExpiresAt() time.Time {
	return r.expiresAt
}

// Used reports whether the grant was already consumed.
func (r *Recovery) Used() bool {
	return r.used
}

// CreatedAt returns the creation time.
func (r *Recovery) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns the last update time.
func (r *Recovery) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsExpired reports whether the grant is past its expiry.
func (r *Recovery) IsExpired(now time.Time) bool {
	return now.After(r.expiresAt)
}

// Matches reports whether the grant is usable with the supplied key:
// the key must be equal and the grant neither used nor expired.
func (r *Recovery) Matches(key string, now time.Time) bool {
	return r.key == key && !r.used && !r.IsExpired(now)
}

// Consumed returns a copy marked as used. The receiver is left untouched.
func (r *Recovery) Consumed(now time.Time) *Recovery {
	clone := *r
	clone.used = true
	clone.updatedAt = now
	return &clone
}
