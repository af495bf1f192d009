// Package config provides configuration loading and validation for the CLI
// and the API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or the environment.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP port for the serve command

	// Storage
	StorePath string `json:"store_path,omitempty"` // Path to the local store database file

	// Ingestion
	APIKey               string `json:"api_key,omitempty"`                // Gemini API key
	Model                string `json:"model,omitempty"`                  // Gemini model name
	IngestTimeoutSeconds int    `json:"ingest_timeout_seconds,omitempty"` // Per-request timeout for extraction calls, 0 = none

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.IngestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'ingest_timeout_seconds' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags should always win for bools, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.IngestTimeoutSeconds == 0 {
		result.IngestTimeoutSeconds = defaults.IngestTimeoutSeconds
	}

	return result
}

// APIKeyFromEnv returns the Gemini API key from the environment, preferring
// GEMINI_API_KEY over the legacy API_KEY name.
func APIKeyFromEnv() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}
