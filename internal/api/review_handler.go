package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/review-api/internal/api/shared"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/store"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviews store.ReviewStore
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews store.ReviewStore, logger *slog.Logger) *ReviewHandler {
	if reviews == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviews cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// CreateReview handles POST /items/{id}/reviews.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := domain.NewReview(identity.ID, itemID, req.Rating, req.ReviewText)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.reviews.Create(r.Context(), review); err != nil {
		HandleAPIError(w, r, err, "Failed to create review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, review)
}

// ListItemReviews handles GET /items/{id}/reviews. Each review carries its
// author's username.
func (h *ReviewHandler) ListItemReviews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByItem(r.Context(), itemID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}

// GetReview handles GET /reviews/{id}.
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	reviewID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	review, err := h.reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, review)
}

// ListMyReviews handles GET /reviews/me.
func (h *ReviewHandler) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByUser(r.Context(), identity.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}

// UpdateReview handles PUT /reviews/{id}. Only the author can update a
// review; anyone else gets 404.
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review := &domain.Review{ID: reviewID, UserID: identity.ID}
	if err := review.Revise(req.Rating, req.ReviewText); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.reviews.Update(r.Context(), review); err != nil {
		HandleAPIError(w, r, err, "Failed to update review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, review)
}

// DeleteReview handles DELETE /reviews/{id}. Only the author can delete a
// review; its comments go with it.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), reviewID, identity.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
