package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/store"
)

const commentColumns = `id, user_id, item_id, review_id, comment_text, created_at, updated_at`

// PostgresCommentStore implements the store.CommentStore interface.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a new PostgreSQL implementation of the CommentStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

// WithTx implements store.CommentStore.WithTx
func (s *PostgresCommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return &PostgresCommentStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CommentStore.Create
// The row is inserted only when the parent review belongs to comment.ItemID,
// which makes the check and the insert a single statement.
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO comments (id, user_id, item_id, review_id, comment_text, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, r.item_id, r.id, $5::text, $6::timestamptz, $7::timestamptz
		FROM reviews r
		WHERE r.id = $4 AND r.item_id = $3
	`
	result, err := s.db.ExecContext(ctx, query,
		comment.ID,
		comment.UserID,
		comment.ItemID,
		comment.ReviewID,
		comment.Text,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return mapped
		}
		log.Error("failed to create comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", comment.ID.String()))
		return store.NewStoreError("comment", "create", "insert failed", mapped)
	}

	if err := CheckRowsAffected(result, store.ErrReviewNotFound); err != nil {
		log.Debug("review not found for item",
			slog.String("review_id", comment.ReviewID.String()),
			slog.String("item_id", comment.ItemID.String()))
		return err
	}

	log.Info("comment created",
		slog.String("comment_id", comment.ID.String()),
		slog.String("review_id", comment.ReviewID.String()))
	return nil
}

// GetByID implements store.CommentStore.GetByID
func (s *PostgresCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var comment domain.Comment
	if err := scanComment(s.db.QueryRowContext(ctx, query, id), &comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("comment not found", slog.String("comment_id", id.String()))
			return nil, store.ErrCommentNotFound
		}
		log.Error("failed to get comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", id.String()))
		return nil, store.NewStoreError("comment", "get", "query failed", err)
	}

	return &comment, nil
}

// ListByReview implements store.CommentStore.ListByReview
func (s *PostgresCommentStore) ListByReview(ctx context.Context, itemID, reviewID uuid.UUID) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE review_id = $1 AND item_id = $2 ORDER BY created_at, id`
	return s.list(ctx, query, slog.String("review_id", reviewID.String()), reviewID, itemID)
}

// ListByUser implements store.CommentStore.ListByUser
func (s *PostgresCommentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE user_id = $1 ORDER BY created_at, id`
	return s.list(ctx, query, slog.String("user_id", userID.String()), userID)
}

func (s *PostgresCommentStore) list(
	ctx context.Context,
	query string,
	attr slog.Attr,
	args ...any,
) ([]*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list comments", slog.String("error", err.Error()), attr)
		return nil, store.NewStoreError("comment", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, store.NewStoreError("comment", "list", "scan failed", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("comment", "list", "iteration failed", err)
	}

	log.Debug("comments listed", attr, slog.Int("count", len(comments)))
	return comments, nil
}

// Update implements store.CommentStore.Update
func (s *PostgresCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(comment.Text) == "" {
		return domain.ErrEmptyCommentText
	}

	query := `
		UPDATE comments
		SET comment_text = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING item_id, review_id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		comment.Text,
		time.Now().UTC(),
		comment.ID,
		comment.UserID,
	).Scan(&comment.ItemID, &comment.ReviewID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no owned comment to update",
				slog.String("comment_id", comment.ID.String()),
				slog.String("user_id", comment.UserID.String()))
			return store.ErrCommentNotFound
		}
		log.Error("failed to update comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", comment.ID.String()))
		return store.NewStoreError("comment", "update", "update failed", err)
	}

	log.Info("comment updated", slog.String("comment_id", comment.ID.String()))
	return nil
}

// Delete implements store.CommentStore.Delete
func (s *PostgresCommentStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete comment",
			slog.String("error", err.Error()),
			slog.String("comment_id", id.String()))
		return store.NewStoreError("comment", "delete", "delete failed", err)
	}

	if err := CheckRowsAffected(result, store.ErrCommentNotFound); err != nil {
		log.Debug("no owned comment to delete",
			slog.String("comment_id", id.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("comment deleted", slog.String("comment_id", id.String()))
	return nil
}

func scanComment(row scanner, c *domain.Comment) error {
	return row.Scan(&c.ID, &c.UserID, &c.ItemID, &c.ReviewID, &c.Text, &c.CreatedAt, &c.UpdatedAt)
}
