package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
)

// ReviewStore defines the interface for review persistence.
//
// Mutations are scoped to the author: Update and Delete match on both the
// review ID and the user ID, and report ErrReviewNotFound when either does
// not match so callers cannot probe for other users' reviews.
type ReviewStore interface {
	// Create saves a new review.
	// Returns ErrReviewExists if the user already reviewed the item,
	// ErrItemNotFound or ErrUserNotFound if a referenced row is missing.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// ListByItem returns the reviews of an item with the author's username
	// populated, oldest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Review, error)

	// ListByUser returns the reviews written by a user, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)

	// Update persists the rating and text of a review owned by review.UserID.
	// On success review.UpdatedAt and the other stored fields are refreshed.
	Update(ctx context.Context, review *domain.Review) error

	// Delete removes the review id owned by userID, together with its comments.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	WithTx(tx *sql.Tx) ReviewStore
}
