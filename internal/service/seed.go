package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/service/auth"
	"github.com/phrazzld/review-api/internal/store"
)

// SeedUser is a demo account created by the seed command.
type SeedUser struct {
	Username string
	Password string
}

// SeedItem is a demo catalog entry created by the seed command.
type SeedItem struct {
	Name        string
	Description string
	Category    string
}

// DemoUsers are the accounts a fresh development database starts with.
var DemoUsers = []SeedUser{
	{Username: "PeterParker", Password: "spiderman74"},
	{Username: "TonyStark", Password: "32ironm8n"},
	{Username: "SteveRogers", Password: "c8pt8in8meric*"},
	{Username: "BruceBanner", Password: "hu1k"},
	{Username: "ClintBarton", Password: "h8wk3y3"},
	{Username: "Thor", Password: "hammer_time143"},
	{Username: "JesusChrist", Password: "theMessiah_AND_SonOfGod"},
}

// DemoItems is the catalog a fresh development database starts with.
var DemoItems = []SeedItem{
	{Name: "LEGOs", Description: "Bricks for building sets.", Category: "Toys"},
	{Name: "Bionicles", Description: "Connecting Joints.", Category: "Toys"},
	{Name: "Transformers", Description: "Robots in Disguise.", Category: "Toys"},
	{Name: "GIJoe", Description: "Toy Soliders vs Gobra.", Category: "Toys"},
	{Name: "BlokBots", Description: "Robots in War.", Category: "Toys"},
	{Name: "MarvelLegends", Description: "Actions figures based on characters from Marvel Comics.", Category: "Toys"},
}

// SeedResult counts what a seed run created and skipped.
type SeedResult struct {
	UsersCreated int
	UsersSkipped int
	ItemsCreated int
	ItemsSkipped int
}

// Seeder inserts demo users and items.
type Seeder struct {
	db     *sql.DB
	users  store.UserStore
	items  store.ItemStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewSeeder creates a Seeder. All dependencies are required.
func NewSeeder(
	db *sql.DB,
	users store.UserStore,
	items store.ItemStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (*Seeder, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if items == nil {
		return nil, domain.NewValidationError("items", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil", domain.ErrValidation)
	}

	return &Seeder{
		db:     db,
		users:  users,
		items:  items,
		hasher: hasher,
		logger: logger.With(slog.String("component", "seeder")),
	}, nil
}

// Seed creates the given users and items in a single transaction. Users and
// items that already exist, by username or item name, are left untouched,
// so running it twice is harmless.
func (s *Seeder) Seed(ctx context.Context, users []SeedUser, items []SeedItem) (*SeedResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := &SeedResult{}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)
		txItems := s.items.WithTx(tx)

		for _, u := range users {
			created, err := s.seedUser(ctx, txUsers, u)
			if err != nil {
				return err
			}
			if created {
				result.UsersCreated++
			} else {
				result.UsersSkipped++
			}
		}

		for _, it := range items {
			created, err := s.seedItem(ctx, txItems, it)
			if err != nil {
				return err
			}
			if created {
				result.ItemsCreated++
			} else {
				result.ItemsSkipped++
			}
		}

		return nil
	})
	if err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("seeding completed",
		slog.Int("users_created", result.UsersCreated),
		slog.Int("users_skipped", result.UsersSkipped),
		slog.Int("items_created", result.ItemsCreated),
		slog.Int("items_skipped", result.ItemsSkipped))
	return result, nil
}

func (s *Seeder) seedUser(ctx context.Context, users store.UserStore, u SeedUser) (bool, error) {
	_, err := users.GetByUsername(ctx, u.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up user %q: %w", u.Username, err)
	}

	user, err := domain.NewUser(u.Username, u.Password)
	if err != nil {
		return false, fmt.Errorf("invalid seed user %q: %w", u.Username, err)
	}
	if user.HashedPassword, err = s.hasher.Hash(u.Password); err != nil {
		return false, err
	}
	user.Password = ""

	if err := users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create user %q: %w", u.Username, err)
	}
	return true, nil
}

func (s *Seeder) seedItem(ctx context.Context, items store.ItemStore, it SeedItem) (bool, error) {
	_, err := items.GetByName(ctx, it.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrItemNotFound) {
		return false, fmt.Errorf("failed to look up item %q: %w", it.Name, err)
	}

	item, err := domain.NewItem(it.Name, it.Description, it.Category)
	if err != nil {
		return false, fmt.Errorf("invalid seed item %q: %w", it.Name, err)
	}

	if err := items.Create(ctx, item); err != nil {
		return false, fmt.Errorf("failed to create item %q: %w", it.Name, err)
	}
	return true, nil
}
