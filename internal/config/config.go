package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, read from the environment with an
// optional .env file. The API base URL includes the /api prefix.
type Config struct {
	APIURL   string `envconfig:"API_URL" default:"https://localhost:5001/api"`
	DocsURL  string `envconfig:"DOCS_URL" default:""`
	DebugLog string `envconfig:"DEBUG_LOG" default:""`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	PageSize int    `envconfig:"PAGE_SIZE" default:"10"`
}

// Load reads CATALOGO_* variables, merging in a .env file when one exists.
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load() //nolint:errcheck

	var cfg Config
	if err := envconfig.Process("catalogo", &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("config.Load: CATALOGO_PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	return &cfg, nil
}
