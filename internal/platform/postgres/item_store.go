package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/store"
)

const itemColumns = `id, name, COALESCE(description, ''), COALESCE(category, ''), created_at`

// PostgresItemStore implements the store.ItemStore interface.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

var _ store.ItemStore = (*PostgresItemStore)(nil)

// WithTx implements store.ItemStore.WithTx
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ItemStore.Create
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO items (id, name, description, category, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
	`
	_, err := s.db.ExecContext(ctx, query, item.ID, item.Name, item.Description, item.Category, item.CreatedAt)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrItemNameExists) {
			log.Warn("item name already exists", slog.String("name", item.Name))
			return store.ErrItemNameExists
		}
		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return store.NewStoreError("item", "create", "insert failed", mapped)
	}

	log.Info("item created", slog.String("item_id", item.ID.String()))
	return nil
}

// GetByID implements store.ItemStore.GetByID
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return s.getOne(ctx, query, id, slog.String("item_id", id.String()))
}

// GetByName implements store.ItemStore.GetByName
func (s *PostgresItemStore) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`
	return s.getOne(ctx, query, name, slog.String("name", name))
}

// List implements store.ItemStore.List
func (s *PostgresItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list items", slog.String("error", err.Error()))
		return nil, store.NewStoreError("item", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := scanItem(rows, &item); err != nil {
			log.Error("failed to scan item", slog.String("error", err.Error()))
			return nil, store.NewStoreError("item", "list", "scan failed", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		log.Error("item rows iteration failed", slog.String("error", err.Error()))
		return nil, store.NewStoreError("item", "list", "iteration failed", err)
	}

	log.Debug("items listed", slog.Int("count", len(items)))
	return items, nil
}

func (s *PostgresItemStore) getOne(ctx context.Context, query string, arg any, attr slog.Attr) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var item domain.Item
	if err := scanItem(s.db.QueryRowContext(ctx, query, arg), &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found", attr)
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get item", slog.String("error", err.Error()), attr)
		return nil, store.NewStoreError("item", "get", "query failed", err)
	}

	return &item, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner, item *domain.Item) error {
	return row.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &item.CreatedAt)
}
