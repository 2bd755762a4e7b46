package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/review-api/internal/config"
	"github.com/phrazzld/review-api/internal/platform/postgres"
	"github.com/phrazzld/review-api/internal/service/auth"
	"github.com/phrazzld/review-api/internal/store"
)

// stores groups the PostgreSQL-backed stores sharing one connection pool.
type stores struct {
	users    store.UserStore
	items    store.ItemStore
	reviews  store.ReviewStore
	comments store.CommentStore
}

func newStores(db *sql.DB, logger *slog.Logger) stores {
	return stores{
		users:    postgres.NewPostgresUserStore(db, logger),
		items:    postgres.NewPostgresItemStore(db, logger),
		reviews:  postgres.NewPostgresReviewStore(db, logger),
		comments: postgres.NewPostgresCommentStore(db, logger),
	}
}

// application holds the shared dependencies of a running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	stores        stores
	jwtService    auth.JWTService
	authenticator *auth.Authenticator
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		stores: newStores(db, logger),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.Int("refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes))

	app.authenticator, err = auth.NewAuthenticator(
		app.stores.users,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		app.jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	router := newRouter(routerDeps{
		auth:        app.authenticator,
		verifier:    app.authenticator,
		items:       app.stores.items,
		reviews:     app.stores.reviews,
		comments:    app.stores.comments,
		corsOrigins: app.config.Server.CORSAllowedOrigins,
		logger:      app.logger,
	})

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
