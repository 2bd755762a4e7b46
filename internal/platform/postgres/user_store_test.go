package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/postgres"
	"github.com/phrazzld/review-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresUserStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { postgres.NewPostgresUserStore(nil, nil) })
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, quietLogger())
		user := &domain.User{ID: uuid.New(), Username: "alice", HashedPassword: "$2a$12$hash", CreatedAt: time.Now().UTC()}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.ID, "alice", "$2a$12$hash", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(ctx, user))
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, quietLogger())
		user := &domain.User{ID: uuid.New(), Username: "alice", HashedPassword: "$2a$12$hash"}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(newPgError("23505", "users_username_key"))

		err := s.Create(ctx, user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("refuses user without hash", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, quietLogger())
		user := &domain.User{ID: uuid.New(), Username: "alice", Password: "plaintext"}

		assert.ErrorIs(t, s.Create(ctx, user), domain.ErrEmptyHashedPassword)
	})

	t.Run("database failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, quietLogger())
		user := &domain.User{ID: uuid.New(), Username: "alice", HashedPassword: "$2a$12$hash"}

		dbErr := errors.New("connection reset")
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(dbErr)

		err := s.Create(ctx, user)
		require.Error(t, err)
		assert.False(t, store.IsDuplicateError(err))
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestPostgresUserStore_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	columns := []string{"id", "username", "password", "created_at"}

	t.Run("by username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, quietLogger())

		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "alice", "$2a$12$hash", created))

		user, err := s.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "$2a$12$hash", user.HashedPassword)
		assert.Empty(t, user.Password)
		assert.Equal(t, created, user.CreatedAt)
	})

	t.Run("by id not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, quietLogger())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := s.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("query failure is not reported as not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, quietLogger())

		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).WillReturnError(errors.New("timeout"))

		_, err := s.GetByID(ctx, id)
		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := postgres.NewPostgresUserStore(db, quietLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = s.WithTx(tx).GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	require.NoError(t, tx.Rollback())
}
