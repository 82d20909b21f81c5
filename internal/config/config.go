// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. Every field maps to one env var.
type Config struct {
	// Server
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`
	HTTPPort int    `mapstructure:"HTTP_PORT"`

	// Storage
	SpannerDatabase string `mapstructure:"SPANNER_DATABASE"`

	// Redis is optional; empty selects the in-process import lock.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Price import
	ImportLockTTL          time.Duration `mapstructure:"IMPORT_LOCK_TTL"`
	PriceValidationDefault bool          `mapstructure:"PRICE_VALIDATION_DEFAULT"`
	DealResetPolicy        string        `mapstructure:"DEAL_RESET_POLICY"`
	MaxUploadBytes         int64         `mapstructure:"MAX_UPLOAD_BYTES"`
}

var keys = []string{
	"APP_ENV", "LOG_LEVEL", "HTTP_PORT", "SPANNER_DATABASE", "REDIS_URL",
	"IMPORT_LOCK_TTL", "PRICE_VALIDATION_DEFAULT", "DEAL_RESET_POLICY", "MAX_UPLOAD_BYTES",
}

// Load reads configuration from environment variables and an optional .env
// file in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("SPANNER_DATABASE", "projects/test-project/instances/test-instance/databases/pricing")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("IMPORT_LOCK_TTL", "15m")
	v.SetDefault("PRICE_VALIDATION_DEFAULT", false)
	v.SetDefault("DEAL_RESET_POLICY", "none")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)

	// Unmarshal only sees env vars that are bound.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", k, err)
		}
	}

	// Optional .env file for local development
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether logs should be JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
