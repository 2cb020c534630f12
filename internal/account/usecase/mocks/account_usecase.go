package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// MockAccountUseCase is a mock implementation of UseCase for testing.
type MockAccountUseCase struct {
	mock.Mock
}

// Create mocks the Create method of UseCase.
func (m *MockAccountUseCase) Create(
	ctx context.Context,
	actor *authDomain.Identity,
	input *domain.CreateAccountInput,
) (*domain.Account, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// Profile mocks the Profile method of UseCase.
func (m *MockAccountUseCase) Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// List mocks the List method of UseCase.
func (m *MockAccountUseCase) List(
	ctx context.Context,
	actor *authDomain.Identity,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	args := m.Called(ctx, actor, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

// Deactivate mocks the Deactivate method of UseCase.
func (m *MockAccountUseCase) Deactivate(ctx context.Context, actor *authDomain.Identity, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
