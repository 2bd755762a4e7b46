package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/review-api/internal/api/shared"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/store"
)

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	comments store.CommentStore
	logger   *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments store.CommentStore, logger *slog.Logger) *CommentHandler {
	if comments == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("comments cannot be nil for CommentHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommentHandler")
	}

	return &CommentHandler{
		comments: comments,
		logger:   logger.With(slog.String("component", "comment_handler")),
	}
}

// CreateComment handles POST /items/{id}/reviews/{reviewId}/comments.
// The review must belong to the item in the path.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(w, r, "reviewId", log)
	if !ok {
		return
	}

	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := domain.NewComment(identity.ID, itemID, reviewID, req.CommentText)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.comments.Create(r.Context(), comment); err != nil {
		HandleAPIError(w, r, err, "Failed to create comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, comment)
}

// ListReviewComments handles GET /items/{id}/reviews/{reviewId}/comments.
func (h *CommentHandler) ListReviewComments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(w, r, "reviewId", log)
	if !ok {
		return
	}

	comments, err := h.comments.ListByReview(r.Context(), itemID, reviewID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list comments")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, comments)
}

// ListMyComments handles GET /comments/me.
func (h *CommentHandler) ListMyComments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	comments, err := h.comments.ListByUser(r.Context(), identity.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list comments")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, comments)
}

// UpdateComment handles PUT /comments/{id}. Only the author can edit a comment.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	commentID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment := &domain.Comment{ID: commentID, UserID: identity.ID}
	if err := comment.Edit(req.CommentText); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.comments.Update(r.Context(), comment); err != nil {
		HandleAPIError(w, r, err, "Failed to update comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, comment)
}

// DeleteComment handles DELETE /comments/{id}. Only the author can delete a comment.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}
	commentID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), commentID, identity.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
