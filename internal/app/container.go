package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facility-registry/internal/config"
	"facility-registry/internal/database"
	"facility-registry/internal/database/migration"
	dbpostgres "facility-registry/internal/database/postgres"
	dbsqlite "facility-registry/internal/database/sqlite"
	"facility-registry/internal/infrastructure/cache"
	"facility-registry/internal/pkg/jwt"
	"facility-registry/internal/pkg/metrics"
	"facility-registry/internal/repository"
	"facility-registry/internal/search"
	"facility-registry/internal/usecase"
	ucauth "facility-registry/internal/usecase/auth"
	"facility-registry/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics
	JWT     jwt.Service
	Hub     *ws.Hub

	Autocomplete *usecase.Autocomplete
	Suggestions  *usecase.Suggestions
	Master       *usecase.Master
	Auth         *usecase.Auth
}

// OpenDB connects to the configured backend.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return dbsqlite.Open(ctx, cfg)
	case config.DriverPostgres, "":
		return dbpostgres.Connect(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := OpenDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runner := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger}
	if err := runner.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger),
		Metrics: metrics.New(true),
		JWT:     jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.App.AppName),
		Hub:     ws.NewHub(logger),
	}

	collector := search.Collector{Strict: cfg.Autocomplete.Strict}
	c.Autocomplete = usecase.NewAutocompleteUsecase(repository.NewSQLPayloadRepository(db), collector, c.Cache, c.Metrics, logger)
	c.Suggestions = usecase.NewSuggestionUsecase(repository.NewSQLSuggestionRepository(db), c.Cache, ws.NewNotifier(c.Hub), c.Metrics, logger)
	c.Master = usecase.NewMasterUsecase(repository.NewSQLMasterRepository(db), c.Cache, logger)

	authSvc := ucauth.NewService(cfg.Admin.Username, cfg.Admin.PasswordHash)
	c.Auth = usecase.NewAuthUsecase(authSvc, c.JWT, logger)
	if !authSvc.Configured() {
		logger.Warn("admin credentials not configured; moderation endpoints will reject every login")
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
