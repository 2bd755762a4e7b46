package middleware

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/api/shared"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/mocks"
	"github.com/phrazzld/review-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// identityEcho writes the identity found in the request context, so tests can
// tell whether the wrapped handler ran and with what.
func identityEcho() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		identity, ok := shared.IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(identity.Username))
	}), &called
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	identity := &domain.Identity{ID: uuid.New(), Username: "alice"}

	tests := []struct {
		name       string
		header     string
		verifyErr  error
		wantToken  string
		wantStatus int
		wantBody   string
		wantCalled bool
	}{
		{
			name:       "bearer token",
			header:     "Bearer good-token",
			wantToken:  "good-token",
			wantStatus: http.StatusOK,
			wantBody:   "alice",
			wantCalled: true,
		},
		{
			name:       "raw token",
			header:     "good-token",
			wantToken:  "good-token",
			wantStatus: http.StatusOK,
			wantBody:   "alice",
			wantCalled: true,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired",
			header:     "Bearer old-token",
			wantToken:  "old-token",
			verifyErr:  auth.ErrExpiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid",
			header:     "Bearer forged",
			wantToken:  "forged",
			verifyErr:  fmt.Errorf("%w: user no longer exists", auth.ErrInvalidToken),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "store failure",
			header:     "Bearer good-token",
			wantToken:  "good-token",
			verifyErr:  errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			verifier := new(mocks.IdentityVerifier)
			if tc.wantToken != "" {
				if tc.verifyErr != nil {
					verifier.On("Verify", mock.Anything, tc.wantToken).Return(nil, tc.verifyErr)
				} else {
					verifier.On("Verify", mock.Anything, tc.wantToken).Return(identity, nil)
				}
			}

			next, called := identityEcho()
			handler := NewAuthMiddleware(verifier, quietLogger()).Authenticate(next)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCalled, *called)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
			verifier.AssertExpectations(t)
		})
	}
}

func TestAuthenticateDoesNotLeakVerifierErrors(t *testing.T) {
	t.Parallel()

	verifier := new(mocks.IdentityVerifier)
	verifier.On("Verify", mock.Anything, "tok").
		Return(nil, errors.New("SELECT id FROM users WHERE id = $1: connection refused"))

	next, _ := identityEcho()
	handler := NewAuthMiddleware(verifier, quietLogger()).Authenticate(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "SELECT")
	assert.Contains(t, rec.Body.String(), "Authentication error")
}

func TestExtractToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"abc", "abc", true},
		{"Bearer", "", false},
		{"Token abc", "", false},
		{"Bearer abc def", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		token, ok := ExtractToken(tc.header)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.token, token, "header %q", tc.header)
	}
}

func TestNewAuthMiddlewarePanicsWithoutVerifier(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewAuthMiddleware(nil, nil) })
}
