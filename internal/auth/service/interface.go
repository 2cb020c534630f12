// Package service provides the credential services of the auth gate: adaptive
// password hashing and signed bearer tokens.
package service

import (
	"time"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// PasswordHasher hashes and verifies account credentials. Hash tokens are
// one-way and self-describing; they are compared only through Verify.
type PasswordHasher interface {
	// Hash returns a salted hash token for plaintext. Empty or short passwords
	// return ErrInvalidPassword.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches token in constant time. A mismatch
	// returns false and no error.
	Verify(plaintext, token string) (bool, error)

	// NeedsRehash reports whether token should be replaced by a fresh Hash, either
	// because its cost is below the configured one or because it cannot be parsed.
	NeedsRehash(token string) bool

	// ValidateStrength checks every password rule and reports all failures.
	ValidateStrength(password string) authDomain.PasswordStrength
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	// Issue signs a token for identity and returns it with its expiry.
	Issue(identity *authDomain.Identity) (token string, expiresAt time.Time, err error)

	// Verify checks the signature, issuer and expiry of token and returns the
	// identity it claims. Expired tokens return ErrTokenExpired, anything else
	// that fails returns ErrTokenInvalid.
	Verify(token string) (*authDomain.Identity, error)
}
