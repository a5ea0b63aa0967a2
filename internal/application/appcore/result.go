package appcore

import "context"

// UseCase is the base interface for all use cases.
// TCommand is the input type, TResult the output type.
type UseCase[TCommand any, TResult any] interface {
	// Execute runs the use case with the given command.
	Execute(ctx context.Context, cmd TCommand) Result[TResult]
}

// Command is a marker interface for commands (state-changing input).
type Command interface {
	CommandName() string
}

// Query is a marker interface for read-only requests.
type Query interface {
	QueryName() string
}

// Result is the outcome of a use case or service operation. It is either a
// success carrying a value, or a failure carrying a machine-readable code
// plus a human-readable message. Accessing the wrong side panics, so a
// forgotten IsSuccess check fails loudly instead of propagating zero values.
type Result[T any] struct {
	value   T
	code    string
	message string
	failed  bool
}

// Success creates a successful result carrying value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure creates a failed result with a failure code and message.
// The code identifies the failure for callers; the message is already
// localized and safe to show to the end user.
func Failure[T any](code, message string) Result[T] {
	return Result[T]{code: code, message: message, failed: true}
}

// IsSuccess reports whether the operation succeeded.
func (r Result[T]) IsSuccess() bool {
	return !r.failed
}

// IsFailure reports whether the operation failed.
func (r Result[T]) IsFailure() bool {
	return r.failed
}

// Value returns the success value. Panics on a failed result.
func (r Result[T]) Value() T {
	if r.failed {
		panic("appcore: Value called on a failed result")
	}
	return r.value
}

// Code returns the failure code. Panics on a successful result.
func (r Result[T]) Code() string {
	if !r.failed {
		panic("appcore: Code called on a successful result")
	}
	return r.code
}

// Message returns the failure message. Panics on a successful result.
func (r Result[T]) Message() string {
	if !r.failed {
		panic("appcore: Message called on a successful result")
	}
	return r.message
}

// MapFailure converts a failed Result of one type into another, keeping the
// code and message. Panics on a successful result.
func MapFailure[T, U any](r Result[T]) Result[U] {
	return Failure[U](r.Code(), r.Message())
}
