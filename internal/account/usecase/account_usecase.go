package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	authService "github.com/allisson/mealguard/internal/auth/service"
	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
	cryptoService "github.com/allisson/mealguard/internal/crypto/service"
	"github.com/allisson/mealguard/internal/database"
	apperrors "github.com/allisson/mealguard/internal/errors"
	appValidation "github.com/allisson/mealguard/internal/validation"
)

// accountUseCase implements UseCase.
type accountUseCase struct {
	txManager   database.TxManager
	accountRepo AccountRepository
	hasher      authService.PasswordHasher
	fields      cryptoService.FieldEncryptor
}

// NewAccountUseCase creates a new account UseCase.
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	hasher authService.PasswordHasher,
	fields cryptoService.FieldEncryptor,
) UseCase {
	return &accountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		hasher:      hasher,
		fields:      fields,
	}
}

func (a *accountUseCase) validateCreateInput(input *domain.CreateAccountInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.TenantID, appValidation.Tenant),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
			appValidation.Role,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordStrength{Check: a.hasher.ValidateStrength},
		),
		validation.Field(&input.Phone,
			validation.Length(0, 32).Error("phone must be at most 32 characters"),
			appValidation.Phone,
		),
	)
	return appValidation.AsInvalidInput(err)
}

// authorize enforces tenant scoping for actions taken by an authenticated actor.
func authorize(actor *authDomain.Identity, tenantID uuid.UUID, role authDomain.Role) error {
	if actor == nil || actor.Role == authDomain.RoleSuperAdmin {
		return nil
	}
	if actor.Role != authDomain.RoleAdmin {
		return authDomain.ErrInsufficientRole
	}
	if actor.TenantID != tenantID || role == authDomain.RoleSuperAdmin {
		return authDomain.ErrInsufficientRole
	}
	return nil
}

// Create validates the input, hashes the password and encrypts the phone
// before the account is stored.
func (a *accountUseCase) Create(
	ctx context.Context,
	actor *authDomain.Identity,
	input *domain.CreateAccountInput,
) (*domain.Account, error) {
	if err := a.validateCreateInput(input); err != nil {
		return nil, err
	}
	if err := authorize(actor, input.TenantID, input.Role); err != nil {
		return nil, err
	}

	passwordHash, err := a.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		TenantID:     input.TenantID,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" {
		stored, err := a.fields.EncryptField(ctx, phone)
		if err != nil {
			return nil, apperrors.Internal(err, "failed to encrypt phone")
		}
		account.PhoneEncrypted = stored
	}

	if err := a.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Profile returns the account with its phone decrypted. Values stored before
// field encryption was introduced are returned as they are.
func (a *accountUseCase) Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	account, err := a.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	phone := account.PhoneEncrypted
	if a.fields.IsEncrypted(phone) {
		ctx = cryptoDomain.WithRecordID(ctx, account.ID.String())
		phone, err = a.fields.DecryptField(ctx, account.PhoneEncrypted)
		if err != nil {
			return nil, apperrors.Internal(err, "failed to decrypt phone")
		}
	}

	return &domain.Profile{
		ID:        account.ID,
		TenantID:  account.TenantID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role,
		Phone:     phone,
		CreatedAt: account.CreatedAt,
	}, nil
}

// List returns a page of the tenant's accounts. Employees cannot list and
// admins only see their own tenant.
func (a *accountUseCase) List(
	ctx context.Context,
	actor *authDomain.Identity,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	if err := authorize(actor, tenantID, authDomain.RoleEmployee); err != nil {
		return nil, err
	}
	return a.accountRepo.ListByTenant(ctx, tenantID, offset, limit)
}

// Deactivate disables the account after checking the actor may manage it.
// The check and the update share one transaction.
func (a *accountUseCase) Deactivate(ctx context.Context, actor *authDomain.Identity, id uuid.UUID) error {
	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		account, err := a.accountRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(actor, account.TenantID, account.Role); err != nil {
			return err
		}
		return a.accountRepo.Deactivate(ctx, id)
	})
}
