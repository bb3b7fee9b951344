package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the filament backend. Environment
// variables are parsed from the FILAMENT_ prefix, e.g. FILAMENT_DB_DRIVER.
type Config struct {
	// Storage driver: memory, sqlite or postgres.
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Advisor (Gemini) configuration.
	GeminiAPIKey          string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel           string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	GeminiBaseURL         string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	AdvisorTimeoutSeconds int    `envconfig:"ADVISOR_TIMEOUT_SECONDS" default:"30"`
}

// ResolveDefaults validates the driver choice and derives the sqlite path
// when one is not configured.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			c.SQLitePath = filepath.Join("data", "filament.db")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("FILAMENT_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.AdvisorTimeoutSeconds <= 0 {
		return fmt.Errorf("ADVISOR_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// New creates a Config by parsing FILAMENT_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FILAMENT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("db_driver", cfg.DBDriver).
		Str("sqlite_path", cfg.SQLitePath).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Str("gemini_model", cfg.GeminiModel).
		Bool("gemini_key_present", cfg.GeminiAPIKey != "").
		Int("advisor_timeout_s", cfg.AdvisorTimeoutSeconds).
		Msg("configuration loaded")

	return &cfg, nil
}
