package mocks

import (
	"context"

	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// AuthService is a mock of the register/login/refresh operations of
// auth.Authenticator.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, username, password string) (*auth.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if pair, ok := args.Get(0).(*auth.TokenPair); ok {
		return pair, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if pair, ok := args.Get(0).(*auth.TokenPair); ok {
		return pair, args.Error(1)
	}
	return nil, args.Error(1)
}
