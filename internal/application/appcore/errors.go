package appcore

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidID        = errors.New("invalid ID")
	ErrEmptyField       = errors.New("required field is empty")
	ErrInvalidFormat    = errors.New("invalid format")
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ValidationFailure converts a validation error into a failed Result with
// the generic invalid-input code and the validation message as text.
func ValidationFailure[T any](err error) Result[T] {
	return Failure[T](CodeInvalidInput, err.Error())
}
