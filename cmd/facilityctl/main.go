package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"facility-registry/internal/app"
	"facility-registry/internal/config"
	"facility-registry/internal/database"
	"facility-registry/internal/database/migration"
	"facility-registry/internal/database/seeder"
	"facility-registry/internal/infrastructure/cache"
	"facility-registry/internal/logging"
	"facility-registry/internal/repository"
	"facility-registry/internal/search"
	"facility-registry/internal/usecase"
	ucauth "facility-registry/internal/usecase/auth"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	timeout time.Duration

	seedFile string

	acCategory string
	acQuery    string
	acLimit    int
	acStrict   bool
)

var rootCmd = &cobra.Command{
	Use:           "facilityctl",
	Short:         "Operate the facility registry database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations",
	Long: `Applies migrations/V<n>__<name>.sql against postgres, or the embedded
schema when DB_DRIVER=sqlite.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg config.Config, db database.DB, logger *zap.Logger) error {
			return migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger}.Run(ctx, db)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import master records from a JSON file",
	Long: `Upserts every entry of a file shaped like
  [{"unique_name": "North Ranch", "data": {...}}]
into facilities_master and invalidates the cached autocomplete lists.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := seeder.LoadMasterRecords(seedFile)
		if err != nil {
			return err
		}
		return withDB(cmd.Context(), func(ctx context.Context, cfg config.Config, db database.DB, logger *zap.Logger) error {
			if err := (seeder.Runner{Seeders: []seeder.Seeder{s}}).Run(ctx, db); err != nil {
				return err
			}
			logger.Info("seed complete", zap.Int("records", len(s.Records)))

			rc := cache.NewRedis(cfg.Redis, logger)
			defer func() { _ = rc.Close() }()
			if err := usecase.InvalidateAutocomplete(ctx, rc); err != nil {
				logger.Warn("autocomplete cache invalidation failed", zap.Error(err))
			}
			return nil
		})
	},
}

var autocompleteCmd = &cobra.Command{
	Use:   "autocomplete",
	Short: "Run an autocomplete query against the database and print JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg config.Config, db database.DB, logger *zap.Logger) error {
			collector := search.Collector{Strict: cfg.Autocomplete.Strict || acStrict}
			uc := usecase.NewAutocompleteUsecase(repository.NewSQLPayloadRepository(db), collector, nil, nil, logger)

			res, err := uc.Search(ctx, usecase.AutocompleteParams{Category: acCategory, Query: acQuery, Limit: acLimit})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"category": res.Category, "values": res.Values, "count": res.Count})
		})
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	Long: `Prints a bcrypt hash. In a .env file wrap it in single quotes,
  ADMIN_PASSWORD_HASH='$2a$10$...'
so the '$' characters are kept literally.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := ucauth.HashPassword(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall command timeout")

	seedCmd.Flags().StringVar(&seedFile, "file", "", "path to the JSON seed file")
	_ = seedCmd.MarkFlagRequired("file")

	autocompleteCmd.Flags().StringVar(&acCategory, "category", "", "category tag or alias")
	autocompleteCmd.Flags().StringVar(&acQuery, "q", "", "case-insensitive substring filter")
	autocompleteCmd.Flags().IntVar(&acLimit, "limit", search.DefaultLimit, "maximum number of values")
	autocompleteCmd.Flags().BoolVar(&acStrict, "strict", false, "disable the scalar fallback for objects")
	_ = autocompleteCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(migrateCmd, seedCmd, autocompleteCmd, hashPasswordCmd)
}

// withDB loads config, opens the configured database and runs fn under the command timeout.
func withDB(parent context.Context, fn func(ctx context.Context, cfg config.Config, db database.DB, logger *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.App)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	db, err := app.OpenDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, cfg, db, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
