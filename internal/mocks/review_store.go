package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// ReviewStore is a mock of store.ReviewStore.
type ReviewStore struct {
	mock.Mock
}

var _ store.ReviewStore = (*ReviewStore)(nil)

func (m *ReviewStore) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if review, ok := args.Get(0).(*domain.Review); ok {
		return review, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Review, error) {
	args := m.Called(ctx, itemID)
	return reviews(args)
}

func (m *ReviewStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	args := m.Called(ctx, userID)
	return reviews(args)
}

func (m *ReviewStore) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *ReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.ReviewStore); ok {
		return ret
	}
	return m
}

func reviews(args mock.Arguments) ([]*domain.Review, error) {
	if list, ok := args.Get(0).([]*domain.Review); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
