package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/review-api/internal/api/shared"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/service/auth"
	"github.com/phrazzld/review-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"invalid token", fmt.Errorf("%w: user no longer exists", auth.ErrInvalidToken), http.StatusUnauthorized, "Invalid token"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized, "Invalid token"},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized, "Invalid refresh token"},
		{"missing identity", domain.ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
		{"item not found", store.ErrItemNotFound, http.StatusNotFound, "Item not found"},
		{"review not found", store.ErrReviewNotFound, http.StatusNotFound, "Review not found"},
		{"comment not found", store.ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
		{"wrapped not found", store.NewStoreError("review", "get", "lookup failed", store.ErrNotFound), http.StatusNotFound, "Resource not found"},
		{"username exists", store.ErrUsernameExists, http.StatusConflict, "Username already exists"},
		{"review exists", store.ErrReviewExists, http.StatusConflict, "You have already reviewed this item"},
		{"item name exists", store.ErrItemNameExists, http.StatusConflict, "Item name already exists"},
		{"invalid rating", domain.ErrInvalidRating, http.StatusBadRequest, "rating must be between 1 and 5"},
		{"invalid path id", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest, "id has invalid format"},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest, "Invalid entity data"},
		{"unknown", errors.New("pq: relation \"users\" does not exist"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.wantMsg, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestHandleAPIErrorDoesNotLeakInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req = req.WithContext(shared.WithTraceID(req.Context(), "trace-123"))
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, internal, "Failed to list items")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.NotContains(t, body, "10.0.0.5")
	assert.NotContains(t, body, "connection refused")

	resp := decodeError(t, rec)
	assert.Equal(t, "Failed to list items", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
}

func TestHandleAPIErrorFallbackOnlyForServerErrors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/items/x", nil)
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, store.ErrItemNotFound, "Failed to get item")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Item not found", decodeError(t, rec).Error)
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(&RegisterRequest{Password: "pw"})
	require.Error(t, err)

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Invalid username: required field", SanitizeValidationError(err))

	err = shared.ValidateRequest(&ReviewRequest{Rating: 9})
	assert.Equal(t, "Invalid rating: too long or too large", SanitizeValidationError(err))

	assert.Equal(t, "comment text cannot be empty", SanitizeValidationError(domain.ErrEmptyCommentText))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
