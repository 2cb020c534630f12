// Package errors defines the error categories shared by every domain. Domain
// errors wrap one category, and the HTTP layer maps categories to status codes.
package errors

import (
	"errors"
	"fmt"
)

// Error categories.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInternal marks failures whose cause must not reach the caller, such
	// as a stored field that no longer decrypts.
	ErrInternal = errors.New("internal error")
)

// Wrap adds context to err while keeping its category. Returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Internal reclassifies err as ErrInternal. The cause stays in the message for
// logs, but errors.Is no longer matches the cause's category, so a crypto
// input error raised while reading stored data is not reported as bad input.
func Internal(err error, message string) error {
	if err == nil {
		return nil
	}
	return &internalError{message: message, cause: err}
}

type internalError struct {
	message string
	cause   error
}

func (e *internalError) Error() string {
	return e.message + ": " + e.cause.Error()
}

func (e *internalError) Unwrap() error {
	return ErrInternal
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
