// Package repository provides data persistence implementations for accounts.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/mealguard/internal/account/domain"
	"github.com/allisson/mealguard/internal/database"
	apperrors "github.com/allisson/mealguard/internal/errors"
)

const postgresAccountColumns = `id, tenant_id, email, name, role, password_hash, phone_encrypted, is_active, created_at, updated_at`

// PostgreSQLAccountRepository handles account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a new account.
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (id, tenant_id, email, name, role, password_hash, phone_encrypted, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.TenantID,
		account.Email,
		account.Name,
		string(account.Role),
		account.PasswordHash,
		account.PhoneEncrypted,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by ID regardless of its active state.
func (r *PostgreSQLAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE id = $1`
	return r.getOne(querier.QueryRowContext(ctx, query, id), "failed to get account by id")
}

// GetByEmail retrieves an account by its normalized email.
func (r *PostgreSQLAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE email = $1`
	return r.getOne(querier.QueryRowContext(ctx, query, email), "failed to get account by email")
}

// FindActiveAccountByID returns the active account with id, or nil when the
// account does not exist or is deactivated.
func (r *PostgreSQLAccountRepository) FindActiveAccountByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE id = $1 AND is_active = TRUE`

	account, err := r.getOne(querier.QueryRowContext(ctx, query, id), "failed to find active account")
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, nil
	}
	return account, err
}

// UpdatePasswordHash replaces the stored hash token of an account.
func (r *PostgreSQLAccountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	querier := database.GetTx(ctx, r.db)
	query := `UPDATE accounts SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	return execAffectingOne(ctx, querier, "failed to update password hash", query, hash, id)
}

// UpdatePhoneEncrypted replaces the stored phone value of an account.
func (r *PostgreSQLAccountRepository) UpdatePhoneEncrypted(ctx context.Context, id uuid.UUID, stored string) error {
	querier := database.GetTx(ctx, r.db)
	query := `UPDATE accounts SET phone_encrypted = $1, updated_at = NOW() WHERE id = $2`
	return execAffectingOne(ctx, querier, "failed to update phone", query, stored, id)
}

// Deactivate marks an account inactive so it can no longer authenticate.
func (r *PostgreSQLAccountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	query := `UPDATE accounts SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	return execAffectingOne(ctx, querier, "failed to deactivate account", query, id)
}

// ListByTenant returns accounts of a tenant ordered by creation time.
func (r *PostgreSQLAccountRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE tenant_id = $1
			  ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAccounts(rows)
}

// ListForRotation returns up to limit accounts ordered by ID, starting after
// afterID. Pass uuid.Nil to start from the beginning.
func (r *PostgreSQLAccountRepository) ListForRotation(
	ctx context.Context,
	afterID uuid.UUID,
	limit int,
) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE id > $1 ORDER BY id ASC LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAccounts(rows)
}

func (r *PostgreSQLAccountRepository) getOne(row *sql.Row, message string) (*domain.Account, error) {
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, message)
	}
	return account, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
