package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// CommentStore is a mock of store.CommentStore.
type CommentStore struct {
	mock.Mock
}

var _ store.CommentStore = (*CommentStore)(nil)

func (m *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if comment, ok := args.Get(0).(*domain.Comment); ok {
		return comment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentStore) ListByReview(ctx context.Context, itemID, reviewID uuid.UUID) ([]*domain.Comment, error) {
	args := m.Called(ctx, itemID, reviewID)
	return comments(args)
}

func (m *CommentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Comment, error) {
	args := m.Called(ctx, userID)
	return comments(args)
}

func (m *CommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *CommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.CommentStore); ok {
		return ret
	}
	return m
}

func comments(args mock.Arguments) ([]*domain.Comment, error) {
	if list, ok := args.Get(0).([]*domain.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
