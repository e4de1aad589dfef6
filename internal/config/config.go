// Package config loads the CLI configuration from ~/.labctl/config.yaml
// with environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all settings for the labctl client.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Resilience ResilienceConfig `yaml:"resilience"`
	Cache      CacheConfig      `yaml:"cache"`
	LogLevel   string           `yaml:"log_level"`
}

// ServerConfig holds backend connection settings.
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-request timeout.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ResilienceConfig controls retry and circuit-breaker behavior on reads.
type ResilienceConfig struct {
	Enabled     bool `yaml:"enabled"`
	MaxAttempts int  `yaml:"max_attempts"`
}

// CacheConfig controls the offline snapshot cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Dir returns the path to ~/.labctl.
func Dir() (string, error) {
	if dir := os.Getenv("LABCTL_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".labctl"), nil
}

// EnsureDir creates ~/.labctl if it doesn't exist.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", dir, err)
	}
	return dir, nil
}

// Default returns sensible defaults for a local backend.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: 30,
		},
		Resilience: ResilienceConfig{
			Enabled:     true,
			MaxAttempts: 3,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		LogLevel: "info",
	}
}

// Load reads ~/.labctl/config.yaml, falling back to defaults when the
// file is absent, then applies environment overrides.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Server.BaseURL == "" {
		return nil, fmt.Errorf("server.base_url must be set")
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		cfg.Server.TimeoutSeconds = Default().Server.TimeoutSeconds
	}
	return cfg, nil
}

// Save writes the configuration to ~/.labctl/config.yaml.
func Save(cfg *Config) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnv overlays environment variables on the loaded config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("LABCTL_API_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("LABCTL_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("LABCTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LABCTL_NO_RETRY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.Resilience.Enabled = false
		}
	}
}

// SlogLevel maps the configured log level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
