package mocks

import (
	"context"

	"github.com/phrazzld/review-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// IdentityVerifier is a mock of middleware.IdentityVerifier.
type IdentityVerifier struct {
	mock.Mock
}

// Verify is a mock implementation of the token-to-identity lookup.
func (m *IdentityVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	args := m.Called(ctx, token)
	if identity, ok := args.Get(0).(*domain.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}
