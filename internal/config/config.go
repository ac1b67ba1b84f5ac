// Package config provides environment-based configuration for the server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Store backend names.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config holds runtime configuration. All values come from environment
// variables (a .env file is loaded by the CLI entry point when present).
type Config struct {
	Port            int    // PORT, default 8080
	GeminiAPIKey    string // GEMINI_API_KEY
	GeminiModel     string // GEMINI_MODEL, default per ai package
	CompileEndpoint string // COMPILE_ENDPOINT, external compile service URL
	StoreBackend    string // STORE_BACKEND: memory|file|postgres, default file
	StorePath       string // STORE_PATH, file backend location
	DatabaseURL     string // DATABASE_URL, postgres backend
	AuthEnabled     bool   // AUTH_ENABLED, default false
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            8080,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		CompileEndpoint: os.Getenv("COMPILE_ENDPOINT"),
		StoreBackend:    os.Getenv("STORE_BACKEND"),
		StorePath:       os.Getenv("STORE_PATH"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = port
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = StoreFile
	}
	if authStr := os.Getenv("AUTH_ENABLED"); authStr != "" {
		enabled, err := strconv.ParseBool(authStr)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_ENABLED: %w", err)
		}
		cfg.AuthEnabled = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be 1-65535, got %d", c.Port)
	}
	switch c.StoreBackend {
	case StoreMemory, StoreFile, StorePostgres:
	default:
		return fmt.Errorf("config error: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.StoreBackend == StorePostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required for the postgres store")
	}
	return nil
}
