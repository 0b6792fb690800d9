package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DBPath   string `envconfig:"DROPFORGE_DB_PATH" default:"./data/dropforge.sqlite"`
	Port     int    `envconfig:"DROPFORGE_PORT" default:"8080"`
	LogLevel string `envconfig:"DROPFORGE_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"DROPFORGE_LOG_DIR" default:"./logs"`

	// ChainID selects which batch-drop deployment the engine targets.
	ChainID int64 `envconfig:"DROPFORGE_CHAIN_ID" default:"1"`

	RPCURL string `envconfig:"DROPFORGE_RPC_URL"`
	RPCRps int    `envconfig:"DROPFORGE_RPC_RPS" default:"10"`

	// Optional overrides for the batch contract addresses. When empty the
	// built-in per-chain deployments are used.
	DropContract     string `envconfig:"DROPFORGE_DROP_CONTRACT"`
	Drop1155Contract string `envconfig:"DROPFORGE_DROP_1155_CONTRACT"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars, so real environment
	// variables take precedence over .env values.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.ChainID < 1 {
		return fmt.Errorf("%w: chain id must be positive, got %d", ErrInvalidConfig, c.ChainID)
	}
	if c.RPCRps < 1 {
		return fmt.Errorf("%w: rpc rps must be positive, got %d", ErrInvalidConfig, c.RPCRps)
	}
	return nil
}
