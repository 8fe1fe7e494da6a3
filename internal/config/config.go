// Package config provides configuration management.
// Configuration is a JSON file with environment variable overrides; it is
// the durable home of the pricing weights, constraints, and demand schedule
// between process restarts.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
	"broadbandx-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains the engine configuration
	Pricing PricingConfig `json:"pricing"`

	// Models contains model artifact locations
	Models ModelsConfig `json:"models"`

	// History contains pricing history storage settings
	History HistoryConfig `json:"history"`

	// API contains HTTP serving settings
	API APIConfig `json:"api"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains the pricing engine settings
type PricingConfig struct {
	// Weights are the blend multipliers {alpha, beta, gamma}
	Weights types.Weights `json:"weights"`

	// Constraints bound the net adjustment
	Constraints types.Constraints `json:"constraints"`

	// DemandSchedule configures the time-of-day demand factor
	DemandSchedule types.DemandSchedule `json:"demand_factors"`

	// HistoryCapacity bounds the in-memory history ring
	HistoryCapacity int `json:"history_capacity" env:"PRICING_HISTORY_CAPACITY"`
}

// ModelsConfig locates the trained model artifacts
type ModelsConfig struct {
	// ChurnArtifact is the churn model JSON artifact path
	ChurnArtifact string `json:"churn_artifact" env:"CHURN_ARTIFACT"`

	// SegmentationArtifact is the segmentation model JSON artifact path
	SegmentationArtifact string `json:"segmentation_artifact" env:"SEGMENTATION_ARTIFACT"`
}

// HistoryConfig contains durable history settings
type HistoryConfig struct {
	// Enabled turns on SQLite history persistence
	Enabled bool `json:"enabled" env:"HISTORY_ENABLED"`

	// DatabasePath is the SQLite database location
	DatabasePath string `json:"database_path" env:"HISTORY_DB_PATH"`
}

// APIConfig contains HTTP server settings
type APIConfig struct {
	// ListenAddr is the bind address
	ListenAddr string `json:"listen_addr" env:"API_LISTEN_ADDR"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	baseDir := filepath.Join(homeDir, ".broadbandx-pricing")

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Weights:     types.Weights{Alpha: 0.15, Beta: 0.10, Gamma: 0.20},
			Constraints: types.Constraints{MinDiscount: -0.30, MaxPremium: 0.20, ChurnThreshold: 0.70},
			DemandSchedule: types.DemandSchedule{
				PeakStartHour:     18,
				PeakEndHour:       22,
				PeakMultiplier:    0.15,
				OffpeakMultiplier: -0.10,
				WeekendMultiplier: 0.05,
			},
			HistoryCapacity: 1000,
		},
		Models: ModelsConfig{
			ChurnArtifact:        filepath.Join(baseDir, "models", "churn.json"),
			SegmentationArtifact: filepath.Join(baseDir, "models", "segmentation.json"),
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: filepath.Join(baseDir, "history.db"),
		},
		API: APIConfig{
			ListenAddr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file and applies environment
// variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Config("read config file", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Config("parse config file", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Config("apply environment overrides", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configured invariants.
func (c *Config) Validate() error {
	if c.Pricing.Constraints.MinDiscount >= 0 {
		return errors.New(errors.TypeConfig, "pricing.constraints.min_discount must be negative")
	}
	if c.Pricing.Constraints.MaxPremium < 0 {
		return errors.New(errors.TypeConfig, "pricing.constraints.max_premium must not be negative")
	}
	if s := c.Pricing.DemandSchedule; s.PeakStartHour < 0 || s.PeakEndHour > 23 || s.PeakStartHour > s.PeakEndHour {
		return errors.New(errors.TypeConfig, "pricing.demand_factors peak window is invalid")
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("create config directory", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Config("encode config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("write config file", err)
	}
	return nil
}
