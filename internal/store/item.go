package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
)

// ItemStore defines the interface for catalog item persistence.
type ItemStore interface {
	// Create saves a new item.
	// Returns ErrItemNameExists if an item with the same name exists.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// GetByName returns ErrItemNotFound if no item has that name.
	GetByName(ctx context.Context, name string) (*domain.Item, error)

	// List returns all items ordered by creation time.
	// An empty catalog yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Item, error)

	WithTx(tx *sql.Tx) ItemStore
}
