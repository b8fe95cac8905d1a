// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the application configuration, loadable from a JSON file with
// environment variables as fallback. All fields are optional; missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty selects the in-memory stores

	// AI
	APIKey string `json:"api_key,omitempty"` // Gemini API key; empty selects the deterministic mock extractor
	Model  string `json:"model,omitempty"`   // Gemini model name

	// Sources
	GitHubToken string `json:"github_token,omitempty"` // Optional GitHub API token (raises rate limits)

	// Storage
	BlobSignKey string `json:"blob_sign_key,omitempty"` // HMAC key for signed blob URLs

	// Behavior
	Workers int  `json:"workers,omitempty"` // Job queue worker count
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Environment variable names consulted by FromEnv.
const (
	envAPIKey      = "GEMINI_API_KEY"
	envModel       = "GEMINI_MODEL"
	envDatabaseURL = "DATABASE_URL"
	envGitHubToken = "GITHUB_TOKEN"
	envBlobSignKey = "BLOB_SIGN_KEY"
	envPort        = "PORT"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Callers
// typically merge this under a file- or flag-provided config.
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv(envAPIKey),
		Model:       os.Getenv(envModel),
		DatabaseURL: os.Getenv(envDatabaseURL),
		GitHubToken: os.Getenv(envGitHubToken),
		BlobSignKey: os.Getenv(envBlobSignKey),
	}
	if raw := os.Getenv(envPort); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags, and environment values under those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GitHubToken == "" {
		result.GitHubToken = defaults.GitHubToken
	}
	if result.BlobSignKey == "" {
		result.BlobSignKey = defaults.BlobSignKey
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
