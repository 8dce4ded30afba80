package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete replay configuration
type Config struct {
	Data    DataConfig    `json:"data" yaml:"data"`
	Session SessionConfig `json:"session" yaml:"session"`
	Account AccountConfig `json:"account" yaml:"account"`
	Display DisplayConfig `json:"display" yaml:"display"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// DataConfig locates the day files on disk.
type DataConfig struct {
	Root    string                  `json:"root" yaml:"root"`
	Markets map[string]MarketConfig `json:"markets" yaml:"markets"`
}

// MarketConfig describes one market directory under the data root.
type MarketConfig struct {
	Label    string   `json:"label" yaml:"label"`
	Dir      string   `json:"dir" yaml:"dir"`
	Prefixes []string `json:"prefixes" yaml:"prefixes"`
}

// SessionConfig sizes the replay window.
type SessionConfig struct {
	SimulationDays int `json:"simulation_days" yaml:"simulation_days"`
	LookbackDays   int `json:"lookback_days" yaml:"lookback_days"`
}

// Required is the number of bars a session needs.
func (s SessionConfig) Required() int {
	return s.SimulationDays + s.LookbackDays
}

// StartCursor is the index of the first tradeable bar.
func (s SessionConfig) StartCursor() int {
	return s.LookbackDays - 1
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// DisplayConfig holds the moving average periods shown with each window.
type DisplayConfig struct {
	MAPeriods []int `json:"ma_periods" yaml:"ma_periods"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoggingConfig controls the logrus logger.
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level"`
	Format     string `json:"format" yaml:"format"` // "text" or "json"
	Output     string `json:"output" yaml:"output"` // "stderr", "file" or "both"
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// Environment variables that override file settings.
const (
	EnvDataRoot       = "DAYREPLAY_DATA_ROOT"
	EnvInitialCapital = "DAYREPLAY_INITIAL_CAPITAL"
	EnvLogLevel       = "DAYREPLAY_LOG_LEVEL"
)

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Unset sections keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON. A failed YAML pass may have set
	// some fields, so JSON starts over from the defaults.
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
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

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from the process environment. lookup is
// normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataRoot); ok && v != "" {
		c.Data.Root = v
	}
	if v, ok := lookup(EnvInitialCapital); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInitialCapital, err)
		}
		c.Account.InitialCapital = f
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Root == "" {
		return fmt.Errorf("data.root is required")
	}
	if len(c.Data.Markets) == 0 {
		return fmt.Errorf("data.markets must list at least one market")
	}
	for key, m := range c.Data.Markets {
		if m.Dir == "" {
			return fmt.Errorf("data.markets.%s.dir is required", key)
		}
		if len(m.Prefixes) == 0 {
			return fmt.Errorf("data.markets.%s.prefixes is required", key)
		}
	}
	if c.Session.SimulationDays <= 0 {
		return fmt.Errorf("session.simulation_days must be positive")
	}
	if c.Session.LookbackDays <= 0 {
		return fmt.Errorf("session.lookback_days must be positive")
	}
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	for _, p := range c.Display.MAPeriods {
		if p <= 0 {
			return fmt.Errorf("display.ma_periods must be positive, got %d", p)
		}
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	switch c.Logging.Output {
	case "", "stderr":
	case "file", "both":
		if c.Logging.File == "" {
			return fmt.Errorf("logging.file required for output %q", c.Logging.Output)
		}
	default:
		return fmt.Errorf("logging.output must be 'stderr', 'file' or 'both'")
	}
	return nil
}

// MarketKeys returns the configured market keys in sorted order.
func (c *Config) MarketKeys() []string {
	keys := make([]string, 0, len(c.Data.Markets))
	for k := range c.Data.Markets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Root: "./tdx",
			Markets: map[string]MarketConfig{
				"sh":  {Label: "Shanghai", Dir: "vipdoc/sh/lday", Prefixes: []string{"sh"}},
				"sz":  {Label: "Shenzhen", Dir: "vipdoc/sz/lday", Prefixes: []string{"sz"}},
				"cyb": {Label: "ChiNext", Dir: "vipdoc/sz/lday", Prefixes: []string{"sz300", "sz301"}},
			},
		},
		Session: SessionConfig{
			SimulationDays: 120,
			LookbackDays:   65,
		},
		Account: AccountConfig{
			InitialCapital: 100000,
		},
		Display: DisplayConfig{
			MAPeriods: []int{5, 10, 20, 60, 120, 250},
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
