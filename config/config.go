package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tracker's file-level settings.
type Config struct {
	Data    DataConfig    `json:"data" yaml:"data"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`
	Report  ReportConfig  `json:"report" yaml:"report"`
}

// DataConfig locates the data directory and sets logging defaults.
type DataConfig struct {
	Dir    string `json:"dir" yaml:"dir"`
	Broker string `json:"broker" yaml:"broker"` // default broker tag on logged fills
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// PricingConfig configures the end-of-day quote provider.
type PricingConfig struct {
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`
}

// ReportConfig configures the equity report.
type ReportConfig struct {
	Benchmarks []string `json:"benchmarks" yaml:"benchmarks"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Store.Type != "csv" && c.Store.Type != "sqlite" {
		return fmt.Errorf("store.type must be 'csv' or 'sqlite'")
	}
	if c.Store.Type == "sqlite" && c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path required for SQLite type")
	}
	for _, b := range c.Report.Benchmarks {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("report.benchmarks must not contain empty tickers")
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:    "./data",
			Broker: "Robinhood",
		},
		Store: StoreConfig{
			Type: "csv",
		},
		Pricing: PricingConfig{
			BaseURL: "https://eodhd.com",
		},
		Report: ReportConfig{
			Benchmarks: []string{"SPY", "IWM", "IWC"},
		},
	}
}
