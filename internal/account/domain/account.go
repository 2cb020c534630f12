// Package domain defines the account entity of a tenant and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	"github.com/allisson/mealguard/internal/errors"
)

// Account is a person who can sign in to a tenant.
//
// PasswordHash is a one-way hash token. PhoneEncrypted holds the stored
// envelope of the phone number, or legacy plaintext not yet migrated.
type Account struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Email          string
	Name           string
	Role           authDomain.Role
	PasswordHash   string //nolint:gosec // hash token, not a password
	PhoneEncrypted string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity returns the request identity of the account.
func (a *Account) Identity() *authDomain.Identity {
	return &authDomain.Identity{
		ID:       a.ID,
		Email:    a.Email,
		TenantID: a.TenantID,
		Role:     a.Role,
	}
}

// Profile is an account as shown to its owner, with PII decrypted.
type Profile struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Email     string
	Name      string
	Role      authDomain.Role
	Phone     string
	CreatedAt time.Time
}

// CreateAccountInput contains the data needed to open an account.
type CreateAccountInput struct {
	TenantID uuid.UUID
	Email    string
	Name     string
	Role     authDomain.Role
	Password string //nolint:gosec // plaintext is hashed before storage
	Phone    string
}

// Account errors.
var (
	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists indicates an account with the same email exists.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")
)
