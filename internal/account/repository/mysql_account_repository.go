package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	"github.com/allisson/mealguard/internal/database"
	apperrors "github.com/allisson/mealguard/internal/errors"
)

const mysqlAccountColumns = `id, tenant_id, email, name, role, password_hash, phone_encrypted, is_active, created_at, updated_at`

// MySQLAccountRepository handles account persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a new account.
func (r *MySQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}
	tenantID, err := account.TenantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}

	query := `INSERT INTO accounts (id, tenant_id, email, name, role, password_hash, phone_encrypted, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		tenantID,
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
		if isMySQLUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by ID regardless of its active state.
func (r *MySQLAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE id = ?`
	return r.getOne(querier.QueryRowContext(ctx, query, id), "failed to get account by id")
}

// GetByEmail retrieves an account by its normalized email.
func (r *MySQLAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE email = ?`
	return r.getOne(querier.QueryRowContext(ctx, query, email), "failed to get account by email")
}

// FindActiveAccountByID returns the active account with accountID, or nil when
// the account does not exist or is deactivated.
func (r *MySQLAccountRepository) FindActiveAccountByID(
	ctx context.Context,
	accountID uuid.UUID,
) (*domain.Account, error) {
	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE id = ? AND is_active = TRUE`

	account, err := r.getOne(querier.QueryRowContext(ctx, query, id), "failed to find active account")
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, nil
	}
	return account, err
}

// UpdatePasswordHash replaces the stored hash token of an account.
func (r *MySQLAccountRepository) UpdatePasswordHash(ctx context.Context, accountID uuid.UUID, hash string) error {
	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	querier := database.GetTx(ctx, r.db)
	query := `UPDATE accounts SET password_hash = ?, updated_at = NOW(6) WHERE id = ?`
	return execAffectingOne(ctx, querier, "failed to update password hash", query, hash, id)
}

// UpdatePhoneEncrypted replaces the stored phone value of an account.
func (r *MySQLAccountRepository) UpdatePhoneEncrypted(
	ctx context.Context,
	accountID uuid.UUID,
	stored string,
) error {
	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	querier := database.GetTx(ctx, r.db)
	query := `UPDATE accounts SET phone_encrypted = ?, updated_at = NOW(6) WHERE id = ?`
	return execAffectingOne(ctx, querier, "failed to update phone", query, stored, id)
}

// Deactivate marks an account inactive so it can no longer authenticate.
func (r *MySQLAccountRepository) Deactivate(ctx context.Context, accountID uuid.UUID) error {
	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	querier := database.GetTx(ctx, r.db)
	query := `UPDATE accounts SET is_active = FALSE, updated_at = NOW(6) WHERE id = ?`
	return execAffectingOne(ctx, querier, "failed to deactivate account", query, id)
}

// ListByTenant returns accounts of a tenant ordered by creation time.
func (r *MySQLAccountRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	tenant, err := tenantID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal tenant id")
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE tenant_id = ?
			  ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, tenant, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLAccounts(rows)
}

// ListForRotation returns up to limit accounts ordered by ID, starting after
// afterID. Pass uuid.Nil to start from the beginning.
func (r *MySQLAccountRepository) ListForRotation(
	ctx context.Context,
	afterID uuid.UUID,
	limit int,
) ([]*domain.Account, error) {
	after, err := afterID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mysqlAccountColumns + ` FROM accounts WHERE id > ? ORDER BY id ASC LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, after, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLAccounts(rows)
}

func (r *MySQLAccountRepository) getOne(row *sql.Row, message string) (*domain.Account, error) {
	account, err := scanMySQLAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, message)
	}
	return account, nil
}

func scanMySQLAccounts(rows *sql.Rows) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanMySQLAccount(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account")
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate accounts")
	}
	return accounts, nil
}

func scanMySQLAccount(s scanner) (*domain.Account, error) {
	var (
		account  domain.Account
		id       []byte
		tenantID []byte
		role     string
	)
	err := s.Scan(
		&id,
		&tenantID,
		&account.Email,
		&account.Name,
		&role,
		&account.PasswordHash,
		&account.PhoneEncrypted,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := account.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	if err := account.TenantID.UnmarshalBinary(tenantID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal tenant id")
	}
	account.Role = authDomain.Role(role)
	return &account, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error.
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
