package domain

import (
	"github.com/allisson/mealguard/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrTokenMissing indicates the request carried no bearer token.
	ErrTokenMissing = errors.Wrap(errors.ErrUnauthorized, "authentication required")

	// ErrTokenExpired indicates the token signature verified but it is past expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenInvalid indicates a bad signature, shape or claim set.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrAccountUnavailable indicates the token subject no longer maps to an
	// active account.
	ErrAccountUnavailable = errors.Wrap(errors.ErrUnauthorized, "account not found or deactivated")

	// ErrInvalidCredentials indicates a failed login. Unknown emails and wrong
	// passwords share this error.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInsufficientRole indicates the identity lacks every role a route requires.
	ErrInsufficientRole = errors.Wrap(errors.ErrForbidden, "insufficient permissions")

	// ErrInvalidPassword indicates a password or hash token failed validation.
	ErrInvalidPassword = errors.Wrap(errors.ErrInvalidInput, "invalid password")
)
