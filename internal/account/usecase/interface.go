// Package usecase implements account business logic: opening accounts with
// hashed credentials and encrypted PII, profile reads and field key rotation.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindActiveAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	UpdatePhoneEncrypted(ctx context.Context, id uuid.UUID, stored string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]*domain.Account, error)
	ListForRotation(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Account, error)
}

// KeyVersions reports which field key versions are superseded.
type KeyVersions interface {
	IsDeprecated(version int) bool
}

// UseCase defines account business operations.
type UseCase interface {
	// Create opens an account. A nil actor is the system itself (operator CLI);
	// otherwise admins are limited to their own tenant and cannot grant super_admin.
	Create(ctx context.Context, actor *authDomain.Identity, input *domain.CreateAccountInput) (*domain.Account, error)

	// Profile returns the account of id with its PII decrypted.
	Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// List returns the accounts of a tenant ordered by creation. Admins may only
	// list their own tenant.
	List(
		ctx context.Context,
		actor *authDomain.Identity,
		tenantID uuid.UUID,
		offset, limit int,
	) ([]*domain.Account, error)

	// Deactivate disables an account so its tokens stop authenticating.
	Deactivate(ctx context.Context, actor *authDomain.Identity, id uuid.UUID) error
}

// RotationResult counts what a rotation run did to stored fields.
type RotationResult struct {
	Scanned     int
	Encrypted   int
	Reencrypted int
	Unchanged   int
	Failed      int
}

// RotationUseCase re-encrypts stored PII to the current field key version.
type RotationUseCase interface {
	RotateFields(ctx context.Context, batchSize int) (*RotationResult, error)
}
