package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration for the application.
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	Port      int    `envconfig:"PORT" default:"8080"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// StoreDriver selects the persistence backend: "sqlite" or "file".
	StoreDriver  string `envconfig:"STORE_DRIVER" default:"sqlite"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"./trackfolio.db"`
	DataDir      string `envconfig:"DATA_DIR" default:"./data"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	// SnapshotSchedule is a standard cron expression; empty disables snapshots.
	// Only meaningful with the file driver.
	SnapshotSchedule string `envconfig:"SNAPSHOT_SCHEDULE" default:""`
	SnapshotDir      string `envconfig:"SNAPSHOT_DIR" default:"./snapshots"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.StoreDriver != "sqlite" && cfg.StoreDriver != "file" {
		return nil, errors.New("store driver must be sqlite or file")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
