package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/store"
)

const reviewColumns = `id, user_id, item_id, rating, COALESCE(review_text, ''), created_at, updated_at`

// PostgresReviewStore implements the store.ReviewStore interface.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ReviewStore.Create
// The (user_id, item_id) unique constraint enforces one review per user and item.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO reviews (id, user_id, item_id, rating, review_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.ItemID,
		review.Rating,
		review.Text,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		switch {
		case errors.Is(mapped, store.ErrReviewExists):
			log.Warn("user already reviewed item",
				slog.String("user_id", review.UserID.String()),
				slog.String("item_id", review.ItemID.String()))
			return store.ErrReviewExists
		case errors.Is(mapped, store.ErrItemNotFound):
			return store.ErrItemNotFound
		case errors.Is(mapped, store.ErrUserNotFound):
			return store.ErrUserNotFound
		}
		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return store.NewStoreError("review", "create", "insert failed", mapped)
	}

	log.Info("review created",
		slog.String("review_id", review.ID.String()),
		slog.String("item_id", review.ItemID.String()),
		slog.Int("rating", review.Rating))
	return nil
}

// GetByID implements store.ReviewStore.GetByID
func (s *PostgresReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review domain.Review
	if err := scanReview(s.db.QueryRowContext(ctx, query, id), &review); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review not found", slog.String("review_id", id.String()))
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, store.NewStoreError("review", "get", "query failed", err)
	}

	return &review, nil
}

// ListByItem implements store.ReviewStore.ListByItem
func (s *PostgresReviewStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.id, r.user_id, r.item_id, r.rating, COALESCE(r.review_text, ''),
		       r.created_at, r.updated_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.item_id = $1
		ORDER BY r.created_at, r.id
	`
	rows, err := s.db.QueryContext(ctx, query, itemID)
	if err != nil {
		log.Error("failed to list reviews by item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, store.NewStoreError("review", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.ItemID, &r.Rating, &r.Text,
			&r.CreatedAt, &r.UpdatedAt, &r.Username,
		); err != nil {
			return nil, store.NewStoreError("review", "list", "scan failed", err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("review", "list", "iteration failed", err)
	}

	log.Debug("reviews listed by item",
		slog.String("item_id", itemID.String()),
		slog.Int("count", len(reviews)))
	return reviews, nil
}

// ListByUser implements store.ReviewStore.ListByUser
func (s *PostgresReviewStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list reviews by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("review", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var r domain.Review
		if err := scanReview(rows, &r); err != nil {
			return nil, store.NewStoreError("review", "list", "scan failed", err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("review", "list", "iteration failed", err)
	}

	return reviews, nil
}

// Update implements store.ReviewStore.Update
// Only the author's review matches; anything else is reported as not found.
func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if review.Rating < domain.MinRating || review.Rating > domain.MaxRating {
		return domain.ErrInvalidRating
	}

	query := `
		UPDATE reviews
		SET rating = $1, review_text = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING item_id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		review.Rating,
		review.Text,
		time.Now().UTC(),
		review.ID,
		review.UserID,
	).Scan(&review.ItemID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no owned review to update",
				slog.String("review_id", review.ID.String()),
				slog.String("user_id", review.UserID.String()))
			return store.ErrReviewNotFound
		}
		log.Error("failed to update review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return store.NewStoreError("review", "update", "update failed", MapError(err))
	}

	log.Info("review updated", slog.String("review_id", review.ID.String()))
	return nil
}

// Delete implements store.ReviewStore.Delete
// Comments on the review are removed by the comments_review_id_fkey cascade.
func (s *PostgresReviewStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return store.NewStoreError("review", "delete", "delete failed", err)
	}

	if err := CheckRowsAffected(result, store.ErrReviewNotFound); err != nil {
		log.Debug("no owned review to delete",
			slog.String("review_id", id.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("review deleted", slog.String("review_id", id.String()))
	return nil
}

func scanReview(row scanner, r *domain.Review) error {
	return row.Scan(&r.ID, &r.UserID, &r.ItemID, &r.Rating, &r.Text, &r.CreatedAt, &r.UpdatedAt)
}
