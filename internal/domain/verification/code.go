// Package verification holds the email verification code and password
// recovery entities together with their lifecycle rules.
package verification

import (
	"math"
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// Verification code lifecycle constants.
const (
	// CodeTTL is how long a verification code stays valid after it is
	// issued or renewed.
	CodeTTL = 10 * time.Minute

	// MaxAttempts is the number of codes that may be issued for one email
	// before the cycle locks until the active code expires.
	MaxAttempts = 3
)

// Purpose distinguishes what a verification code confirms.
type Purpose string

const (
	// PurposeRegister confirms a freshly registered email address.
	PurposeRegister Purpose = "REGISTER"

	// PurposeRecovery confirms ownership of an email before a password reset.
	PurposeRecovery Purpose = "RECOVERY"
)

// Valid reports whether the purpose is one of the known values.
func (p Purpose) Valid() bool {
	return p == PurposeRegister || p == PurposeRecovery
}

// Code is the verification record for one email address. At most one live
// record exists per email, guarded by a unique index on the email field.
type Code struct {
	email     string
	code      *string
	attempts  int
	expiresAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewCode starts a fresh verification cycle: first attempt, expiry CodeTTL
// from now.
func NewCode(email, code string, now time.Time) (*Code, error) {
	if email == "" || code == "" {
		return nil, errs.ErrInvalidInput
	}

	expires := now.Add(CodeTTL)
	return &Code{
		email:     email,
		code:      &code,
		attempts:  1,
		expiresAt: &expires,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct restores a verification record from storage.
func Reconstruct(
	email string,
	code *string,
	attempts int,
	expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) *Code {
	return &Code{
		email:     email,
		code:      code,
		attempts:  attempts,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Email returns the address this record belongs to.
func (c *Code) Email() string {
	return c.email
}

// Value returns the active code, nil when the record has no code.
func (c *Code) Value() *string {
	return c.code
}

// Attempts returns how many codes were issued in the current cycle.
func (c *Code) Attempts() int {
	return c.attempts
}

// ExpiresAt returns the expiry of the active code, nil when unset.
func (c *Code) ExpiresAt() *time.Time {
	return c.expiresAt
}

// CreatedAt returns the creation time.
func (c *Code) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last update time.
func (c *Code) UpdatedAt() time.Time {
	return c.updatedAt
}

// Matches reports whether the supplied code equals the active one.
// A record without a code never matches.
func (c *Code) Matches(code string) bool {
	return c.code != nil && *c.code == code
}

// IsExpired reports whether the active code is past its expiry.
// A record without an expiry counts as expired.
func (c *Code) IsExpired(now time.Time) bool {
	return c.expiresAt == nil || now.After(*c.expiresAt)
}

// IsLocked reports whether the cycle used up all attempts while the active
// code is still live. An expired record is never locked: expiry takes
// precedence and restarts the cycle.
func (c *Code) IsLocked(now time.Time) bool {
	return c.attempts >= MaxAttempts && !c.IsExpired(now)
}

// RemainingLockMinutes returns the minutes until a locked record unlocks,
// rounded up so the caller never reports "0 minutes" for a live lock.
func (c *Code) RemainingLockMinutes(now time.Time) int {
	if c.expiresAt == nil {
		return 0
	}
	remaining := c.expiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Minutes()))
}

// AttemptsLeft returns how many resends remain in the current cycle.
func (c *Code) AttemptsLeft() int {
	left := MaxAttempts - c.attempts
	if left < 0 {
		return 0
	}
	return left
}

// Renewed returns a copy carrying a regenerated code: attempts incremented
// and expiry pushed CodeTTL from now. The receiver is left untouched.
func (c *Code) Renewed(code string, now time.Time) (*Code, error) {
	if code == "" {
		return nil, errs.ErrInvalidInput
	}

	expires := now.Add(CodeTTL)
	clone := *c
	clone.code = &code
	clone.attempts = c.attempts + 1
	clone.expiresAt = &expires
	clone.updatedAt = now
	return &clone, nil
}
