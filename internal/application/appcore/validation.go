package appcore

import (
	"fmt"
	"slices"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxNameLength bounds user-supplied names (deck names, usernames).
	MaxNameLength = 200

	// VerificationCodeLength is the exact length of an email verification code.
	VerificationCodeLength = 6
)

// ValidateRequired checks that the string is not empty.
func ValidateRequired(field, value string) error {
	if value == "" {
		return NewValidationError(field, "is required")
	}
	return nil
}

// ValidateUUID checks that the UUID is set.
func ValidateUUID(field string, id uuid.UUID) error {
	if id.IsZero() {
		return NewValidationError(field, "must be a valid UUID")
	}
	return nil
}

// ValidateMaxLength checks the maximum string length.
func ValidateMaxLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxLength))
	}
	return nil
}

// ValidateMinLength checks the minimum string length.
func ValidateMinLength(field, value string, minLength int) error {
	if len(value) < minLength {
		return NewValidationError(field, fmt.Sprintf("must be at least %d characters", minLength))
	}
	return nil
}

// ValidateExactLength checks that the string has exactly the given length.
func ValidateExactLength(field, value string, length int) error {
	if len(value) != length {
		return NewValidationError(field, fmt.Sprintf("must be exactly %d characters", length))
	}
	return nil
}

// ValidateEnum checks that the value is in the list of allowed values.
func ValidateEnum(field, value string, allowedValues []string) error {
	if slices.Contains(allowedValues, value) {
		return nil
	}
	return NewValidationError(field, fmt.Sprintf("must be one of: %v", allowedValues))
}

// ValidateEmail checks the basic email shape: an @ followed by a dot.
func ValidateEmail(field, value string) error {
	if value == "" {
		return NewValidationError(field, "email is required")
	}
	hasAt := false
	hasDot := false
	for i, ch := range value {
		if ch == '@' {
			hasAt = true
		}
		if hasAt && ch == '.' && i > 0 && i < len(value)-1 {
			hasDot = true
		}
	}
	if !hasAt || !hasDot {
		return NewValidationError(field, "must be a valid email address")
	}
	return nil
}

// ValidatePassword checks the minimum password policy.
func ValidatePassword(field, value string) error {
	return ValidateMinLength(field, value, MinPasswordLength)
}
