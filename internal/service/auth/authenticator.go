package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/store"
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	PasswordHasher
	PasswordVerifier
}

// TokenPair is issued on login and refresh.
type TokenPair struct {
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Authenticator registers users, exchanges credentials for tokens and
// resolves tokens back to identities.
type Authenticator struct {
	users  store.UserStore
	hasher Hasher
	tokens JWTService
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthenticator creates an Authenticator. All dependencies except logger are required.
func NewAuthenticator(users store.UserStore, hasher Hasher, tokens JWTService, logger *slog.Logger) (*Authenticator, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Authenticator{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With(slog.String("component", "authenticator")),
	}, nil
}

// Register creates a user with a freshly hashed password. The plaintext
// password is cleared from the returned user.
// Returns store.ErrUsernameExists when the username is taken.
func (a *Authenticator) Register(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}

	hashed, err := a.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Login checks the credentials and issues a token pair. The username is
// trimmed the same way Register trims it before storing.
// Returns ErrInvalidCredentials for an unknown username or a wrong password.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	user, err := a.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Equalize timing with the found-user path.
			_ = a.hasher.Compare(a.dummyPasswordHash(), password)
			log.Debug("login failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := a.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	pair, err := a.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := a.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidRefreshToken)
		}
		return nil, err
	}

	return a.issue(ctx, user)
}

// Verify resolves an access token to the identity of a still-existing user.
// It fails closed: on any error the identity is nil.
func (a *Authenticator) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := a.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
		}
		return nil, err
	}

	return user.Identity(), nil
}

func (a *Authenticator) issue(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, expiresAt, err := a.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	refresh, _, err := a.tokens.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (a *Authenticator) dummyPasswordHash() string {
	a.dummyOnce.Do(func() {
		hash, err := a.hasher.Hash("review-api-dummy-password")
		if err == nil {
			a.dummyHash = hash
		}
	})
	return a.dummyHash
}
