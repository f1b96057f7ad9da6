// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"feed_backend/internal/platform/db"
	"feed_backend/internal/platform/redis"
)

const (
	MediaBackendLocal = "local"
	MediaBackendHTTP  = "http"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv             string        `envconfig:"APP_ENV" default:"development"`
	AppAddr            string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout     time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout    time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s"`
	AppShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`
	BcryptCost int    `envconfig:"BCRYPT_COST" default:"10"`

	DBDriver      string `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN         string `envconfig:"DB_DSN"`
	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBUser        string `envconfig:"DB_USER" default:"feed"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	DBName        string `envconfig:"DB_NAME" default:"feed"`
	DBSSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	AuthorCacheTTL time.Duration `envconfig:"AUTHOR_CACHE_TTL" default:"5m"`

	MediaBackend          string        `envconfig:"MEDIA_BACKEND" default:"local"`
	UploadDir             string        `envconfig:"UPLOAD_DIR" default:"./uploads"`
	PublicBaseURL         string        `envconfig:"PUBLIC_BASE_URL"`
	MediaRemoteURL        string        `envconfig:"MEDIA_REMOTE_URL"`
	MediaRemoteToken      string        `envconfig:"MEDIA_REMOTE_TOKEN"`
	MediaTimeout          time.Duration `envconfig:"MEDIA_TIMEOUT" default:"30s"`
	MaxUploadBytes        int64         `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`
	MediaUploadsPerMinute int           `envconfig:"MEDIA_UPLOADS_PER_MINUTE" default:"0"`

	AuthRateLimit  int           `envconfig:"AUTH_RATE_LIMIT" default:"20"`
	AuthRateWindow time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"1m"`
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv reads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	switch c.DBDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.DBDriver)
	}
	switch c.MediaBackend {
	case MediaBackendLocal:
	case MediaBackendHTTP:
		if c.MediaRemoteURL == "" {
			return errors.New("MEDIA_REMOTE_URL must be provided when MEDIA_BACKEND=http")
		}
	default:
		return fmt.Errorf("MEDIA_BACKEND must be %q or %q, got %q", MediaBackendLocal, MediaBackendHTTP, c.MediaBackend)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// DB returns the database settings.
func (c *Config) DB() db.Config {
	return db.Config{
		Driver:        c.DBDriver,
		DSN:           c.DBDSN,
		Host:          c.DBHost,
		Port:          c.DBPort,
		User:          c.DBUser,
		Password:      c.DBPassword,
		Name:          c.DBName,
		SSLMode:       c.DBSSLMode,
		RunMigrations: c.RunMigrations,
	}
}

// Redis returns the Redis settings.
func (c *Config) Redis() redis.Config {
	return redis.Config{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
