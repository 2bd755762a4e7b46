package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/mocks"
	"github.com/phrazzld/review-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewHandler(t *testing.T) (*ReviewHandler, *mocks.ReviewStore) {
	t.Helper()
	reviews := new(mocks.ReviewStore)
	t.Cleanup(func() { reviews.AssertExpectations(t) })
	return NewReviewHandler(reviews, quietLogger()), reviews
}

func TestCreateReview(t *testing.T) {
	t.Parallel()

	itemID := uuid.New()
	target := "/api/items/" + itemID.String() + "/reviews"

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		handler, reviews := newReviewHandler(t)
		identity := newIdentity()

		reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
			return r.UserID == identity.ID && r.ItemID == itemID && r.Rating == 5 && r.Text == "Great toy!"
		})).Return(nil)

		req := newJSONRequest(t, http.MethodPost, target, map[string]interface{}{
			"rating":     5,
			"reviewText": "Great toy!",
		})
		rec := httptest.NewRecorder()
		handler.CreateReview(rec, withIdentity(withURLParams(req, "id", itemID.String()), identity))

		require.Equal(t, http.StatusCreated, rec.Code)
		review := decodeBody[domain.Review](t, rec)
		assert.Equal(t, "Great toy!", review.Text)
		assert.Equal(t, identity.ID, review.UserID)
		assert.Contains(t, rec.Body.String(), `"review_text":"Great toy!"`)
	})

	t.Run("duplicate review", func(t *testing.T) {
		t.Parallel()
		handler, reviews := newReviewHandler(t)
		reviews.On("Create", mock.Anything, mock.Anything).Return(store.ErrReviewExists)

		req := newJSONRequest(t, http.MethodPost, target, ReviewRequest{Rating: 4})
		rec := httptest.NewRecorder()
		handler.CreateReview(rec, withIdentity(withURLParams(req, "id", itemID.String()), newIdentity()))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "You have already reviewed this item", decodeError(t, rec).Error)
	})

	t.Run("unknown item", func(t *testing.T) {
		t.Parallel()
		handler, reviews := newReviewHandler(t)
		reviews.On("Create", mock.Anything, mock.Anything).Return(store.ErrItemNotFound)

		req := newJSONRequest(t, http.MethodPost, target, ReviewRequest{Rating: 4})
		rec := httptest.NewRecorder()
		handler.CreateReview(rec, withIdentity(withURLParams(req, "id", itemID.String()), newIdentity()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		t.Parallel()
		handler, _ := newReviewHandler(t)

		req := newJSONRequest(t, http.MethodPost, target, ReviewRequest{Rating: 6})
		rec := httptest.NewRecorder()
		handler.CreateReview(rec, withIdentity(withURLParams(req, "id", itemID.String()), newIdentity()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListItemReviews(t *testing.T) {
	t.Parallel()
	handler, reviews := newReviewHandler(t)

	itemID := uuid.New()
	reviews.On("ListByItem", mock.Anything, itemID).Return([]*domain.Review{
		{ID: uuid.New(), ItemID: itemID, Rating: 4, Text: "fun", Username: "bob"},
	}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/items/"+itemID.String()+"/reviews", nil),
		"id", itemID.String())
	rec := httptest.NewRecorder()
	handler.ListItemReviews(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[[]domain.Review](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Username)
}

func TestGetReview(t *testing.T) {
	t.Parallel()
	handler, reviews := newReviewHandler(t)

	id := uuid.New()
	reviews.On("GetByID", mock.Anything, id).Return(nil, store.ErrReviewNotFound)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/reviews/"+id.String(), nil), "id", id.String())
	rec := httptest.NewRecorder()
	handler.GetReview(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Review not found", decodeError(t, rec).Error)
}

func TestListMyReviews(t *testing.T) {
	t.Parallel()
	handler, reviews := newReviewHandler(t)

	identity := newIdentity()
	reviews.On("ListByUser", mock.Anything, identity.ID).Return([]*domain.Review{}, nil)

	rec := httptest.NewRecorder()
	handler.ListMyReviews(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/reviews/me", nil), identity))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateReview(t *testing.T) {
	t.Parallel()

	t.Run("owner", func(t *testing.T) {
		t.Parallel()
		handler, reviews := newReviewHandler(t)
		identity := newIdentity()
		id := uuid.New()
		itemID := uuid.New()

		reviews.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
			return r.ID == id && r.UserID == identity.ID && r.Rating == 3 && r.Text == "changed my mind"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Review).ItemID = itemID
		}).Return(nil)

		req := newJSONRequest(t, http.MethodPut, "/api/reviews/"+id.String(),
			ReviewRequest{Rating: 3, ReviewText: "changed my mind"})
		rec := httptest.NewRecorder()
		handler.UpdateReview(rec, withIdentity(withURLParams(req, "id", id.String()), identity))

		require.Equal(t, http.StatusOK, rec.Code)
		review := decodeBody[domain.Review](t, rec)
		assert.Equal(t, itemID, review.ItemID)
		assert.Equal(t, 3, review.Rating)
	})

	t.Run("not the owner", func(t *testing.T) {
		t.Parallel()
		handler, reviews := newReviewHandler(t)
		id := uuid.New()
		reviews.On("Update", mock.Anything, mock.Anything).Return(store.ErrReviewNotFound)

		req := newJSONRequest(t, http.MethodPut, "/api/reviews/"+id.String(), ReviewRequest{Rating: 1})
		rec := httptest.NewRecorder()
		handler.UpdateReview(rec, withIdentity(withURLParams(req, "id", id.String()), newIdentity()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteReview(t *testing.T) {
	t.Parallel()

	t.Run("owner", func(t *testing.T) {
		t.Parallel()
		handler, reviews := newReviewHandler(t)
		identity := newIdentity()
		id := uuid.New()
		reviews.On("Delete", mock.Anything, id, identity.ID).Return(nil)

		req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/reviews/"+id.String(), nil), "id", id.String())
		rec := httptest.NewRecorder()
		handler.DeleteReview(rec, withIdentity(req, identity))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("not the owner", func(t *testing.T) {
		t.Parallel()
		handler, reviews := newReviewHandler(t)
		identity := newIdentity()
		id := uuid.New()
		reviews.On("Delete", mock.Anything, id, identity.ID).Return(store.ErrReviewNotFound)

		req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/reviews/"+id.String(), nil), "id", id.String())
		rec := httptest.NewRecorder()
		handler.DeleteReview(rec, withIdentity(req, identity))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
