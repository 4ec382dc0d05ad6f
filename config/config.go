/*
config.go - Application configuration

PURPOSE:
  Loads and validates YAML configuration for the WFH engine server.
  All settings have sensible defaults so the server runs with no config
  file at all; command-line flags in cmd/server override loaded values.

FILE FORMAT (YAML):
  server:
    listen_addr: ":8080"
    allowed_origins:
      - "http://localhost:3000"
  database:
    path: "wfh.db"
  sweep:
    enabled: true
    interval: "1h"
  log:
    level: "info"

SEE ALSO:
  - cmd/server/main.go: flag overrides and startup
*/
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	ListenAddr     string   `yaml:"listen_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds SQLite settings. Path ":memory:" runs fully in memory.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SweepConfig controls the background expire sweep.
type SweepConfig struct {
	Enabled     *bool         `yaml:"enabled"`
	Interval    time.Duration `yaml:"-"`
	IntervalRaw string        `yaml:"interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			ListenAddr:     ":8080",
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{Path: "wfh.db"},
		Log:      LogConfig{Level: "info"},
	}
	if err := cfg.validateAndNormalize(); err != nil {
		// Defaults are static and always valid.
		panic(err)
	}
	return cfg
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Database.Path == "" {
		c.Database.Path = "wfh.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Sweep.IntervalRaw == "" {
		c.Sweep.Interval = 1 * time.Hour
	} else {
		d, err := time.ParseDuration(c.Sweep.IntervalRaw)
		if err != nil {
			return fmt.Errorf("config: sweep.interval: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config: sweep.interval must be positive, got %s", d)
		}
		c.Sweep.Interval = d
	}

	return nil
}

// SweepEnabled reports whether the background sweep should run.
// Unset means enabled.
func (c *Config) SweepEnabled() bool {
	return c.Sweep.Enabled == nil || *c.Sweep.Enabled
}
