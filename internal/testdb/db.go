package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/review-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// EnvDatabaseURL names the variable pointing tests at an existing database.
// Packages share that database, so run with -p 1 when it is set.
const EnvDatabaseURL = "REVIEWS_TEST_DATABASE_URL"

// TestTimeout bounds container startup and migrations.
const TestTimeout = 90 * time.Second

var (
	urlOnce sync.Once
	dbURL   string
	urlErr  error
)

// URL returns the connection string of the test database, starting a
// container on first use. The container lives for the whole test binary and
// is reaped by testcontainers when the process exits.
func URL(t *testing.T) string {
	t.Helper()

	urlOnce.Do(func() {
		if url := os.Getenv(EnvDatabaseURL); url != "" {
			dbURL = url
			return
		}
		dbURL, urlErr = startContainer()
	})
	require.NoError(t, urlErr, "failed to provision test database")
	return dbURL
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	container, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("review_db"),
		tcpostgres.WithUsername("reviews"),
		tcpostgres.WithPassword("reviews"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", fmt.Errorf("failed to get connection string: %w", err)
	}
	return connStr, nil
}

// Open returns a migrated database with all tables emptied. The connection
// is closed when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", URL(t))
	require.NoError(t, err, "failed to open database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "failed to ping database")
	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, quietLogger()), "failed to run migrations")
	Reset(t, db)

	return db
}

// Reset removes all rows from every application table.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.ExecContext(context.Background(), `TRUNCATE comments, reviews, items, users`)
	require.NoError(t, err, "failed to truncate tables")
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
