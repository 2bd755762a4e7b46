package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/review-api/internal/config"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/platform/postgres"
	"github.com/phrazzld/review-api/internal/service"
	"github.com/phrazzld/review-api/internal/service/auth"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the root command with no
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "review-api",
		Short: "Item review API server",
		Long: `review-api serves a JSON API where registered users review catalog
items and comment on each other's reviews.

Configuration comes from an optional .env file, an optional config.yaml
and REVIEWS_-prefixed environment variables.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newHashPasswordCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withDatabase(ctx, func(cfg *config.Config, log *slog.Logger, db *sql.DB) error {
		app, err := newApplication(cfg, log, db)
		if err != nil {
			return err
		}
		return app.Run(ctx)
	})
}

func newMigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Run the embedded goose migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back the latest migration
  status   - Show applied and pending migrations
  reset    - Roll back every migration
  version  - Print the current schema version`,
	}

	for _, command := range []string{
		postgres.MigrateUp,
		postgres.MigrateDown,
		postgres.MigrateStatus,
		postgres.MigrateReset,
		postgres.MigrateVersion,
	} {
		migrate.AddCommand(&cobra.Command{
			Use:   command,
			Short: fmt.Sprintf("Run goose %s", command),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDatabase(cmd.Context(), func(_ *config.Config, log *slog.Logger, db *sql.DB) error {
					return postgres.Migrate(cmd.Context(), db, command, log)
				})
			},
		})
	}
	return migrate
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and items",
		Long: `Insert the demo users and catalog items. Rows that already exist are
skipped, so the command can be run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withDatabase(ctx, func(cfg *config.Config, log *slog.Logger, db *sql.DB) error {
				stores := newStores(db, log)
				seeder, err := service.NewSeeder(db, stores.users, stores.items,
					auth.NewBcryptHasher(cfg.Auth.BcryptCost), log)
				if err != nil {
					return err
				}

				result, err := seeder.Seed(ctx, service.DemoUsers, service.DemoItems)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "users: %d created, %d skipped\nitems: %d created, %d skipped\n",
					result.UsersCreated, result.UsersSkipped, result.ItemsCreated, result.ItemsSkipped)
				return nil
			})
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password PASSWORD...",
		Short: "Print bcrypt hashes for the given passwords",
		Long: `Print a bcrypt hash for each argument, for seeding accounts by hand.
Does not need a database or any configuration.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher := auth.NewBcryptHasher(cost)
			for _, password := range args {
				hash, err := hasher.Hash(password)
				if err != nil {
					return fmt.Errorf("failed to hash password: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", auth.DefaultBcryptCost, "bcrypt work factor")
	return cmd
}

// withDatabase loads configuration, sets up logging and opens the database
// for the duration of fn.
func withDatabase(ctx context.Context, fn func(*config.Config, *slog.Logger, *sql.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("cors_allowed_origins", strings.Join(cfg.Server.CORSAllowedOrigins, ",")))

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	return fn(cfg, log, db)
}
