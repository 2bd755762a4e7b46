package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/review-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Named constraints from the migrations. Violations of these are mapped to
// entity-specific store errors.
const (
	constraintUsernameKey    = "users_username_key"
	constraintItemNameKey    = "items_name_key"
	constraintReviewUserItem = "reviews_user_item_key"
	constraintReviewUserFK   = "reviews_user_id_fkey"
	constraintReviewItemFK   = "reviews_item_id_fkey"
	constraintCommentUserFK  = "comments_user_id_fkey"
	constraintCommentItemFK  = "comments_item_id_fkey"
	constraintCommentRevFK   = "comments_review_id_fkey"
)

// constraintErrors maps constraint names to the store error callers expect.
var constraintErrors = map[string]error{
	constraintUsernameKey:    store.ErrUsernameExists,
	constraintItemNameKey:    store.ErrItemNameExists,
	constraintReviewUserItem: store.ErrReviewExists,
	constraintReviewUserFK:   store.ErrUserNotFound,
	constraintReviewItemFK:   store.ErrItemNotFound,
	constraintCommentUserFK:  store.ErrUserNotFound,
	constraintCommentItemFK:  store.ErrItemNotFound,
	constraintCommentRevFK:   store.ErrReviewNotFound,
}

// MapError maps a database error to an appropriate store error.
// Violations of known constraints map to entity-specific errors; other
// constraint violations map to the generic families. The driver error is not
// part of the returned chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return fmt.Errorf("%w: constraint %s", mapped, pgErr.ConstraintName)
	}

	switch {
	case IsUniqueViolation(pgErr):
		return fmt.Errorf("%w: constraint %s", store.ErrDuplicate, pgErr.ConstraintName)
	case IsForeignKeyViolation(pgErr):
		return fmt.Errorf("%w: foreign key violation (%s)", store.ErrInvalidEntity, pgErr.ConstraintName)
	case pgErr.Code == checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s)", store.ErrInvalidEntity, pgErr.ConstraintName)
	case pgErr.Code == notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s)", store.ErrInvalidEntity, pgErr.ColumnName)
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE matched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}
