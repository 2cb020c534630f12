package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/mealguard/internal/account/domain"
	accountUseCase "github.com/allisson/mealguard/internal/account/usecase"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// CreateAccountOptions holds the create-account flag values.
type CreateAccountOptions struct {
	TenantID string
	Email    string
	Name     string
	Role     string
	Password string //nolint:gosec // read from a flag or prompt, hashed before storage
	Phone    string
	Format   string
}

// RunCreateAccount opens an account as the system operator, without the tenant
// and role restrictions applied to admins over HTTP. This is how the first
// super_admin of a deployment is created. The password is prompted for when
// not given as a flag.
//
// Requirements: Database must be migrated and field encryption keys configured.
func RunCreateAccount(
	ctx context.Context,
	useCase accountUseCase.UseCase,
	logger *slog.Logger,
	io IOTuple,
	opts CreateAccountOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}

	tenantID, err := uuid.Parse(opts.TenantID)
	if err != nil {
		return fmt.Errorf("invalid tenant id: %w", err)
	}

	role := authDomain.Role(opts.Role)
	if !role.Valid() {
		return fmt.Errorf("invalid role: %s (valid options: employee, admin, super_admin)", opts.Role)
	}

	password := opts.Password
	if password == "" {
		password, err = readLine(bufio.NewReader(io.Reader), io.Writer, "Password: ")
		if err != nil {
			return err
		}
	}

	logger.Info("creating account",
		slog.String("tenant_id", tenantID.String()),
		slog.String("role", string(role)),
	)

	account, err := useCase.Create(ctx, nil, &accountDomain.CreateAccountInput{
		TenantID: tenantID,
		Email:    opts.Email,
		Name:     opts.Name,
		Role:     role,
		Password: password,
		Phone:    opts.Phone,
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("account created",
		slog.String("account_id", account.ID.String()),
		slog.String("tenant_id", account.TenantID.String()),
	)

	if opts.Format == "json" {
		return writeJSON(io.Writer, map[string]string{
			"account_id": account.ID.String(),
			"tenant_id":  account.TenantID.String(),
			"email":      account.Email,
			"role":       string(account.Role),
		})
	}

	_, _ = fmt.Fprintln(io.Writer, "\nAccount created successfully!")
	_, _ = fmt.Fprintf(io.Writer, "Account ID: %s\n", account.ID)
	_, _ = fmt.Fprintf(io.Writer, "Tenant ID: %s\n", account.TenantID)
	_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", account.Email)
	_, _ = fmt.Fprintf(io.Writer, "Role: %s\n", account.Role)
	return nil
}
