package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/service/auth"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=20"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse is the public view of a newly registered user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse defines the successful response for login and refresh.
type AuthResponse struct {
	// AccessToken is sent as "token", the field name clients already use.
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the RFC 3339 time at which the access token expires.
	ExpiresAt string `json:"expires_at"`
}

// CreateItemRequest defines the payload for adding a catalog item.
type CreateItemRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category"    validate:"max=255"`
}

// ReviewRequest is the payload for creating or revising a review.
type ReviewRequest struct {
	Rating     int    `json:"rating"     validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText"`
}

// CommentRequest is the payload for creating or editing a comment.
type CommentRequest struct {
	CommentText string `json:"commentText" validate:"required"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

func tokenPairToResponse(pair *auth.TokenPair) AuthResponse {
	return AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
