// Package common provides shared utilities for Worth
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Worth
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Demo        DemoConfig    `toml:"demo"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// RateLimit is the sustained requests-per-second budget per client;
	// RateBurst is the burst allowance. A non-positive RateLimit disables
	// throttling.
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

// StorageConfig holds the ledger database location.
type StorageConfig struct {
	Path string `toml:"path"` // BadgerHold data directory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// DemoConfig controls demo mode: when enabled, the server runs against a
// deterministic synthetic ledger instead of the persistent store.
type DemoConfig struct {
	Enabled bool `toml:"enabled"`

	// Profiles maps account type tags (e.g. "pension") to synthetic history
	// generation parameters. Entries here override the built-in defaults;
	// adding a category is a data change, not a code change.
	Profiles map[string]DemoProfile `toml:"profiles"`
}

// DemoProfile holds per-category synthetic history parameters.
type DemoProfile struct {
	MinHistoryDays int     `toml:"min_history_days"`
	MaxHistoryDays int     `toml:"max_history_days"`
	Volatility     float64 `toml:"volatility"` // daily noise as a fraction of balance magnitude
}

// DefaultDemoProfiles returns the built-in category profile table.
// Long-horizon accounts (pension, ISA, investment) get longer, calmer
// histories than transactional accounts.
func DefaultDemoProfiles() map[string]DemoProfile {
	return map[string]DemoProfile{
		"current":     {MinHistoryDays: 120, MaxHistoryDays: 240, Volatility: 0.045},
		"savings":     {MinHistoryDays: 180, MaxHistoryDays: 360, Volatility: 0.015},
		"credit_card": {MinHistoryDays: 90, MaxHistoryDays: 210, Volatility: 0.06},
		"isa":         {MinHistoryDays: 360, MaxHistoryDays: 720, Volatility: 0.01},
		"investment":  {MinHistoryDays: 360, MaxHistoryDays: 720, Volatility: 0.02},
		"pension":     {MinHistoryDays: 720, MaxHistoryDays: 1440, Volatility: 0.006},
		"cash":        {MinHistoryDays: 60, MaxHistoryDays: 180, Volatility: 0.03},
		"loan":        {MinHistoryDays: 360, MaxHistoryDays: 1080, Volatility: 0.008},
	}
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      8090,
			RateLimit: 50,
			RateBurst: 100,
		},
		Storage: StorageConfig{
			Path: "data/ledger",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Demo: DemoConfig{
			Enabled:  false,
			Profiles: DefaultDemoProfiles(),
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	// Partial profile tables from TOML are topped up with defaults so every
	// account type always has an entry.
	for tag, profile := range DefaultDemoProfiles() {
		if _, ok := config.Demo.Profiles[tag]; !ok {
			if config.Demo.Profiles == nil {
				config.Demo.Profiles = make(map[string]DemoProfile)
			}
			config.Demo.Profiles[tag] = profile
		}
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("WORTH_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("WORTH_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("WORTH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("WORTH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("WORTH_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if demo := os.Getenv("WORTH_DEMO"); demo != "" {
		switch strings.ToLower(demo) {
		case "1", "true", "yes", "on":
			config.Demo.Enabled = true
		case "0", "false", "no", "off":
			config.Demo.Enabled = false
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
