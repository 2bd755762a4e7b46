package main

import (
	"io"
	"log/slog"
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

type routerFixture struct {
	auth     *mocks.AuthService
	verifier *mocks.IdentityVerifier
	items    *mocks.ItemStore
	reviews  *mocks.ReviewStore
	comments *mocks.CommentStore
	handler  http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		auth:     new(mocks.AuthService),
		verifier: new(mocks.IdentityVerifier),
		items:    new(mocks.ItemStore),
		reviews:  new(mocks.ReviewStore),
		comments: new(mocks.CommentStore),
	}
	f.handler = newRouter(routerDeps{
		auth:        f.auth,
		verifier:    f.verifier,
		items:       f.items,
		reviews:     f.reviews,
		comments:    f.comments,
		corsOrigins: []string{"http://localhost:5173"},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	t.Cleanup(func() {
		f.auth.AssertExpectations(t)
		f.verifier.AssertExpectations(t)
		f.items.AssertExpectations(t)
		f.reviews.AssertExpectations(t)
		f.comments.AssertExpectations(t)
	})
	return f
}

func (f *routerFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) signedIn(token string) *domain.Identity {
	identity := &domain.Identity{ID: uuid.New(), Username: "PeterParker"}
	f.verifier.On("Verify", mock.Anything, token).Return(identity, nil)
	return identity
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.serve(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestPublicRoutesSkipAuthentication(t *testing.T) {
	f := newRouterFixture(t)
	itemID, reviewID := uuid.New(), uuid.New()

	f.items.On("List", mock.Anything).Return([]*domain.Item{}, nil)
	f.reviews.On("ListByItem", mock.Anything, itemID).Return([]*domain.Review{}, nil)
	f.reviews.On("GetByID", mock.Anything, reviewID).Return(&domain.Review{ID: reviewID}, nil)
	f.comments.On("ListByReview", mock.Anything, itemID, reviewID).Return([]*domain.Comment{}, nil)

	for _, path := range []string{
		"/api/items",
		"/api/items/" + itemID.String() + "/reviews",
		"/api/reviews/" + reviewID.String(),
		"/api/items/" + itemID.String() + "/reviews/" + reviewID.String() + "/comments",
	} {
		rec := f.serve(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t)
	id := uuid.New().String()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/items"},
		{http.MethodPost, "/api/items/" + id + "/reviews"},
		{http.MethodGet, "/api/reviews/me"},
		{http.MethodPut, "/api/reviews/" + id},
		{http.MethodDelete, "/api/reviews/" + id},
		{http.MethodPost, "/api/items/" + id + "/reviews/" + id + "/comments"},
		{http.MethodGet, "/api/comments/me"},
		{http.MethodPut, "/api/comments/" + id},
		{http.MethodDelete, "/api/comments/" + id},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := f.serve(httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMyReviewsRouteWinsOverReviewID(t *testing.T) {
	f := newRouterFixture(t)
	identity := f.signedIn("good-token")

	f.reviews.On("ListByUser", mock.Anything, identity.ID).Return([]*domain.Review{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := f.serve(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDeleteCommentScopesToCaller(t *testing.T) {
	f := newRouterFixture(t)
	identity := f.signedIn("good-token")
	commentID := uuid.New()

	f.comments.On("Delete", mock.Anything, commentID, identity.ID).Return(store.ErrCommentNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/comments/"+commentID.String(), nil)
	req.Header.Set("Authorization", "good-token")
	rec := f.serve(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeReturnsIdentity(t *testing.T) {
	f := newRouterFixture(t)
	identity := f.signedIn("good-token")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := f.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+identity.ID.String()+`","username":"PeterParker"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/items", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := f.serve(req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/items", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = f.serve(req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.serve(httptest.NewRequest(http.MethodGet, "/api/cards/next", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
