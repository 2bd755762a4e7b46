package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment validation errors
var (
	ErrEmptyCommentID       = fmt.Errorf("%w: comment ID cannot be empty", ErrValidation)
	ErrCommentUserIDEmpty   = fmt.Errorf("%w: comment user ID cannot be empty", ErrValidation)
	ErrCommentItemIDEmpty   = fmt.Errorf("%w: comment item ID cannot be empty", ErrValidation)
	ErrCommentReviewIDEmpty = fmt.Errorf("%w: comment review ID cannot be empty", ErrValidation)
	ErrEmptyCommentText     = fmt.Errorf("%w: comment text cannot be empty", ErrValidation)
)

// Comment is a remark left by any user on a review.
// ItemID is the item the parent review belongs to.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ItemID    uuid.UUID `json:"item_id"`
	ReviewID  uuid.UUID `json:"review_id"`
	Text      string    `json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewComment creates a new Comment with a fresh UUID.
func NewComment(userID, itemID, reviewID uuid.UUID, text string) (*Comment, error) {
	now := time.Now().UTC()
	comment := &Comment{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    itemID,
		ReviewID:  reviewID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	switch {
	case c.ID == uuid.Nil:
		return ErrEmptyCommentID
	case c.UserID == uuid.Nil:
		return ErrCommentUserIDEmpty
	case c.ItemID == uuid.Nil:
		return ErrCommentItemIDEmpty
	case c.ReviewID == uuid.Nil:
		return ErrCommentReviewIDEmpty
	case strings.TrimSpace(c.Text) == "":
		return ErrEmptyCommentText
	}
	return nil
}

// Edit replaces the comment text.
func (c *Comment) Edit(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyCommentText
	}
	c.Text = text
	c.UpdatedAt = time.Now().UTC()
	return nil
}
