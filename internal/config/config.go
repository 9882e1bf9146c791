// Package config handles reading and writing the liftlog config file.
// The file lives at ~/.liftlog/config.yaml unless overridden.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version int          `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	DataDir string       `yaml:"data_dir,omitempty"` // overrides the default ~/.liftlog
}

// ServerConfig holds the remote API address and request behaviour.
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration. Zero disables the
// client-side timeout.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

const configFile = "config.yaml"

// DefaultDataDir returns ~/.liftlog, falling back to a relative .liftlog
// when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".liftlog"
	}
	return filepath.Join(home, ".liftlog")
}

// DataPath resolves the effective data directory for this config.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir()
}

// ReadConfig reads config.yaml from the given data directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to config.yaml in the given data directory.
// Creates the directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			BaseURL:        "http://localhost:3333",
			TimeoutSeconds: 30,
		},
	}
}
