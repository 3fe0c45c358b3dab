// Package config reads and writes the intake configuration file kept in the
// data directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/intake/internal/models"
)

// FileName is the configuration file kept under the data directory.
const FileName = "config.json"

// Config represents the flat intake configuration
type Config struct {
	Version string `json:"version"`
	// UnflagTarget is the status a flagged application returns to when
	// unflagged.
	UnflagTarget string `json:"unflag_target,omitempty"`
	// LogLevel controls logger verbosity (zerolog level names).
	LogLevel string `json:"log_level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:      "1",
		UnflagTarget: models.AppStatusSubmitted,
		LogLevel:     "info",
	}
}

// Load reads config.json from the data directory. A missing file resolves
// to the defaults rather than an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes config.json to the data directory.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
