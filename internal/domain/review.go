package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating bounds, enforced here and by a CHECK constraint on reviews.rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Review validation errors
var (
	ErrEmptyReviewID     = fmt.Errorf("%w: review ID cannot be empty", ErrValidation)
	ErrReviewUserIDEmpty = fmt.Errorf("%w: review user ID cannot be empty", ErrValidation)
	ErrReviewItemIDEmpty = fmt.Errorf("%w: review item ID cannot be empty", ErrValidation)
	ErrInvalidRating     = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
)

// Review is a user's rating of an item. A user may review a given item
// at most once.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"review_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Username of the author. Only populated when reviews are listed by item.
	Username string `json:"username,omitempty"`
}

// NewReview creates a new Review with a fresh UUID.
func NewReview(userID, itemID uuid.UUID, rating int, text string) (*Review, error) {
	now := time.Now().UTC()
	review := &Review{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    itemID,
		Rating:    rating,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReviewID
	}
	if r.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}
	if r.ItemID == uuid.Nil {
		return ErrReviewItemIDEmpty
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// Revise replaces the rating and text of the review.
func (r *Review) Revise(rating int, text string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	r.Rating = rating
	r.Text = text
	r.UpdatedAt = time.Now().UTC()
	return nil
}
