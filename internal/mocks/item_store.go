package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// ItemStore is a mock of store.ItemStore.
type ItemStore struct {
	mock.Mock
}

var _ store.ItemStore = (*ItemStore)(nil)

func (m *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*domain.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemStore) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	args := m.Called(ctx, name)
	if item, ok := args.Get(0).(*domain.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]*domain.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.ItemStore); ok {
		return ret
	}
	return m
}
