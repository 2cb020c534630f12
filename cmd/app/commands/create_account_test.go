package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/mealguard/internal/account/domain"
	accountMocks "github.com/allisson/mealguard/internal/account/usecase/mocks"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	apperrors "github.com/allisson/mealguard/internal/errors"
)

func TestRunCreateAccount(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	tenantID := uuid.Must(uuid.NewV7())
	accountID := uuid.Must(uuid.NewV7())

	created := &accountDomain.Account{
		ID:        accountID,
		TenantID:  tenantID,
		Email:     "root@example.com",
		Name:      "Root",
		Role:      authDomain.RoleSuperAdmin,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	t.Run("flags-text", func(t *testing.T) {
		mockUseCase := &accountMocks.MockAccountUseCase{}
		expected := &accountDomain.CreateAccountInput{
			TenantID: tenantID,
			Email:    "root@example.com",
			Name:     "Root",
			Role:     authDomain.RoleSuperAdmin,
			Password: "Str0ng!Passw0rd",
			Phone:    "+5511999990000",
		}
		mockUseCase.On("Create", ctx, (*authDomain.Identity)(nil), expected).Return(created, nil)

		var out bytes.Buffer
		err := RunCreateAccount(ctx, mockUseCase, logger, IOTuple{Writer: &out}, CreateAccountOptions{
			TenantID: tenantID.String(),
			Email:    "root@example.com",
			Name:     "Root",
			Role:     "super_admin",
			Password: "Str0ng!Passw0rd",
			Phone:    "+5511999990000",
			Format:   "text",
		})

		require.NoError(t, err)
		require.Contains(t, out.String(), accountID.String())
		require.NotContains(t, out.String(), "Str0ng!Passw0rd")
		require.NotContains(t, out.String(), "+5511999990000")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("prompted-password-json", func(t *testing.T) {
		mockUseCase := &accountMocks.MockAccountUseCase{}
		mockUseCase.On("Create", ctx, (*authDomain.Identity)(nil), mock.MatchedBy(
			func(input *accountDomain.CreateAccountInput) bool {
				return input.Password == "Pr0mpted!Secret"
			},
		)).Return(created, nil)

		var out bytes.Buffer
		io := IOTuple{
			Reader: bytes.NewBufferString("Pr0mpted!Secret\n"),
			Writer: &out,
		}

		err := RunCreateAccount(ctx, mockUseCase, logger, io, CreateAccountOptions{
			TenantID: tenantID.String(),
			Email:    "root@example.com",
			Name:     "Root",
			Role:     "super_admin",
			Format:   "json",
		})
		require.NoError(t, err)

		payload := out.String()[strings.Index(out.String(), "{"):]
		var result map[string]string
		require.NoError(t, json.Unmarshal([]byte(payload), &result))
		require.Equal(t, accountID.String(), result["account_id"])
		require.Equal(t, "super_admin", result["role"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-tenant", func(t *testing.T) {
		mockUseCase := &accountMocks.MockAccountUseCase{}

		err := RunCreateAccount(ctx, mockUseCase, logger, IOTuple{Writer: &bytes.Buffer{}}, CreateAccountOptions{
			TenantID: "not-a-uuid",
			Role:     "employee",
			Format:   "text",
		})

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid tenant id")
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid-role", func(t *testing.T) {
		mockUseCase := &accountMocks.MockAccountUseCase{}

		err := RunCreateAccount(ctx, mockUseCase, logger, IOTuple{Writer: &bytes.Buffer{}}, CreateAccountOptions{
			TenantID: tenantID.String(),
			Role:     "owner",
			Format:   "text",
		})

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid role")
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &accountMocks.MockAccountUseCase{}
		mockUseCase.On("Create", ctx, (*authDomain.Identity)(nil), mock.Anything).
			Return(nil, accountDomain.ErrAccountAlreadyExists)

		err := RunCreateAccount(ctx, mockUseCase, logger, IOTuple{Writer: &bytes.Buffer{}}, CreateAccountOptions{
			TenantID: tenantID.String(),
			Email:    "root@example.com",
			Name:     "Root",
			Role:     "admin",
			Password: "Str0ng!Passw0rd",
			Format:   "text",
		})

		require.Error(t, err)
		require.ErrorIs(t, err, apperrors.ErrConflict)
	})
}
