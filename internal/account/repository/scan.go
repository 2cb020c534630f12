package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	"github.com/allisson/mealguard/internal/database"
	apperrors "github.com/allisson/mealguard/internal/errors"
)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*domain.Account, error) {
	var (
		account domain.Account
		role    string
	)
	err := s.Scan(
		&account.ID,
		&account.TenantID,
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
	account.Role = authDomain.Role(role)
	return &account, nil
}

func scanAccounts(rows *sql.Rows) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
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

// execAffectingOne runs an update and maps zero affected rows to ErrAccountNotFound.
func execAffectingOne(
	ctx context.Context,
	querier database.Querier,
	message, query string,
	args ...any,
) error {
	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
