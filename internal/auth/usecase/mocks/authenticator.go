package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	"github.com/allisson/mealguard/internal/auth/usecase"
)

// MockAuthenticator is a mock implementation of Authenticator for testing.
type MockAuthenticator struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method of Authenticator.
func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*authDomain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

// MockLoginUseCase is a mock implementation of LoginUseCase for testing.
type MockLoginUseCase struct {
	mock.Mock
}

// Login mocks the Login method of LoginUseCase.
func (m *MockLoginUseCase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}
