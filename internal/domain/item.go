package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxItemNameLength matches the items.name column.
const MaxItemNameLength = 255

// Item validation errors
var (
	ErrEmptyItemID     = fmt.Errorf("%w: item ID cannot be empty", ErrValidation)
	ErrEmptyItemName   = fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	ErrItemNameTooLong = fmt.Errorf("%w: item name must be at most 255 characters long", ErrValidation)
	ErrCategoryTooLong = fmt.Errorf("%w: category must be at most 255 characters long", ErrValidation)
)

// Item is a catalog entry that users can review.
// Items are immutable once created.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItem creates a new Item with a fresh UUID.
func NewItem(name, description, category string) (*Item, error) {
	item := &Item{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Category:    strings.TrimSpace(category),
		CreatedAt:   time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyItemID
	}
	if i.Name == "" {
		return ErrEmptyItemName
	}
	if len([]rune(i.Name)) > MaxItemNameLength {
		return ErrItemNameTooLong
	}
	if len([]rune(i.Category)) > MaxItemNameLength {
		return ErrCategoryTooLong
	}
	return nil
}
