package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Autocomplete AutocompleteConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	LogLevel      string
	MigrationsDir string
}

// IsProduction reports whether technical error details must be withheld from clients.
func (a AppConfig) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(a.Environment))
	return env == "production" || env == "prod"
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	DBPath     string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type AdminConfig struct {
	Username     string
	PasswordHash string
}

type AutocompleteConfig struct {
	// Strict disables the "every scalar child" fallback for entries without a name-like key.
	Strict bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	if err := LoadEnvFile(envFilePath()); err != nil {
		return Config{}, err
	}

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(keys ...string) string {
		for _, key := range keys {
			if v := strings.TrimSpace(os.Getenv(key)); v != "" {
				return v
			}
		}
		return ""
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		LogLevel:      opt("LOG_LEVEL"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
	}
	if cfg.App.MigrationsDir == "" {
		cfg.App.MigrationsDir = "migrations"
	}

	driver := strings.ToLower(opt("DB_DRIVER"))
	if driver == "" {
		driver = DriverPostgres
	}
	cfg.Database = DatabaseConfig{
		Driver:     driver,
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER", "DB_USERNAME"),
		DBPassword: opt("DB_PASSWORD", "DB_PASS"),
		DBSSLMode:  opt("DB_SSL_MODE"),
		DBPath:     opt("DB_PATH"),

		ConnectTimeout:      seconds(opt("DB_CONNECT_TIMEOUT")),
		PoolMaxConns:        int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:        int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime: seconds(opt("DB_POOL_MAX_CONN_LIFETIME")),
		PoolMaxConnIdleTime: seconds(opt("DB_POOL_MAX_CONN_IDLE_TIME")),

		PoolHealthCheckPeriod: seconds(opt("DB_POOL_HEALTH_CHECK_PERIOD")),
	}
	if cfg.Database.DBHost == "" {
		cfg.Database.DBHost = "localhost"
	}
	if cfg.Database.DBPort == "" {
		cfg.Database.DBPort = "5432"
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}
	if cfg.Database.DBPath == "" {
		cfg.Database.DBPath = "facility-registry.db"
	}
	switch driver {
	case DriverPostgres:
		if cfg.Database.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
		if cfg.Database.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
	case DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      seconds(opt("REDIS_TTL")),
	}

	cfg.JWT = JWTConfig{
		Secret:    opt("JWT_SECRET"),
		ExpiresIn: seconds(opt("JWT_EXPIRES_IN")),
	}
	if cfg.JWT.ExpiresIn <= 0 {
		cfg.JWT.ExpiresIn = 12 * time.Hour
	}

	cfg.Admin = AdminConfig{
		Username:     opt("ADMIN_USERNAME"),
		PasswordHash: opt("ADMIN_PASSWORD_HASH"),
	}
	if cfg.Admin.PasswordHash != "" && cfg.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	cfg.Autocomplete = AutocompleteConfig{
		Strict: boolOr(opt("AUTOCOMPLETE_STRICT"), false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envFilePath() string {
	if p := strings.TrimSpace(os.Getenv("ENV_FILE")); p != "" {
		return p
	}
	return ".env"
}

func seconds(raw string) time.Duration {
	v := intOr(raw, 0)
	if v <= 0 {
		return 0
	}
	return time.Duration(v) * time.Second
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func boolOr(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
