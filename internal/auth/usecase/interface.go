// Package usecase implements the request authentication and login flows.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// AccountFinder resolves the live state of a token subject. A missing or
// deactivated account is reported as nil with no error.
type AccountFinder interface {
	FindActiveAccountByID(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error)
}

// CredentialStore defines the account operations used by login.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// Authenticator turns a bearer token into a verified identity.
type Authenticator interface {
	// Authenticate verifies token and re-resolves its subject. It returns
	// ErrTokenMissing, ErrTokenExpired, ErrTokenInvalid or ErrAccountUnavailable
	// for rejected requests; any other error is a lookup failure.
	Authenticate(ctx context.Context, token string) (*authDomain.Identity, error)
}

// LoginInput contains the credentials of a login attempt.
type LoginInput struct {
	Email    string
	Password string //nolint:gosec // plaintext credential, never stored
}

// LoginOutput contains the issued bearer token.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	Identity  *authDomain.Identity
}

// LoginUseCase exchanges credentials for a bearer token.
type LoginUseCase interface {
	// Login returns ErrInvalidCredentials for unknown emails and wrong passwords
	// alike, and ErrAccountUnavailable for deactivated accounts.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
