package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
)

// CommentStore defines the interface for comment persistence.
// Like ReviewStore, Update and Delete are scoped to the author.
type CommentStore interface {
	// Create saves a new comment. The parent review must exist and belong to
	// comment.ItemID, otherwise ErrReviewNotFound is returned.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// ListByReview returns the comments on a review of itemID, oldest first.
	// A review that does not belong to itemID yields an empty slice.
	ListByReview(ctx context.Context, itemID, reviewID uuid.UUID) ([]*domain.Comment, error)

	// ListByUser returns the comments written by a user, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Comment, error)

	// Update persists the text of a comment owned by comment.UserID.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes the comment id owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	WithTx(tx *sql.Tx) CommentStore
}
