// Package config loads runtime configuration for the storefront.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront/pkg/db"
)

type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`

	APIBaseURL        string            `envconfig:"API_BASE_URL" default:"http://localhost:3000"`
	APITimeout        time.Duration     `envconfig:"API_TIMEOUT" default:"15s"`
	APIDefaultHeaders map[string]string `envconfig:"API_DEFAULT_HEADERS"`

	DefaultUserID string `envconfig:"DEFAULT_USER_ID" default:"user1"`
	// DiscountRate mirrors the backend's checkout discount and is only used for display.
	DiscountRate decimal.Decimal `envconfig:"DISCOUNT_RATE" default:"0.10"`

	SessionStore  string `envconfig:"SESSION_STORE" default:"memory"`
	SessionCookie string `envconfig:"SESSION_COOKIE" default:"sid"`

	// SessionTTL bounds how long an idle session and its cart view are kept. Zero keeps them forever.
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	// DB is only used when SESSION_STORE=postgres.
	DB db.PostgresConfig `ignored:"true"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("process db env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	switch c.SessionStore {
	case "memory", "postgres":
	default:
		return fmt.Errorf("SESSION_STORE must be memory or postgres, got %q", c.SessionStore)
	}
	if c.DiscountRate.IsNegative() || c.DiscountRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("DISCOUNT_RATE must be between 0 and 1")
	}
	if c.APITimeout < 0 {
		return fmt.Errorf("API_TIMEOUT must not be negative")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	return nil
}
