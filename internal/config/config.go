// Package config handles the TOML config file and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all txrollup configuration.
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Output   OutputConfig   `toml:"output"`
	Cleaning CleaningConfig `toml:"cleaning"`
}

// PathsConfig holds the input and output file locations.
type PathsConfig struct {
	Customers    string `toml:"customers"`
	Transactions string `toml:"transactions"`
	Output       string `toml:"output"`
}

// OutputConfig holds output sink settings.
type OutputConfig struct {
	Format string `toml:"format"` // "csv" or "sqlite"
}

// CleaningConfig holds cleaning review settings.
type CleaningConfig struct {
	// WarnThreshold is the fraction of rows a single cleaning step may
	// remove before the run flags it for review.
	WarnThreshold float64 `toml:"warn_threshold"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			Customers:    filepath.Join("data", "customers.csv"),
			Transactions: filepath.Join("data", "transactions.csv"),
			Output:       filepath.Join("output", "transformed_transactions_monthly.csv"),
		},
		Output: OutputConfig{
			Format: "csv",
		},
		Cleaning: CleaningConfig{
			WarnThreshold: 0.5,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "txrollup")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "txrollup")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top in either case.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return applyEnv(cfg), nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// applyEnv lets TXROLLUP_* environment variables override file paths,
// the only env-configurable settings.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("TXROLLUP_CUSTOMERS"); v != "" {
		cfg.Paths.Customers = v
	}
	if v := os.Getenv("TXROLLUP_TRANSACTIONS"); v != "" {
		cfg.Paths.Transactions = v
	}
	if v := os.Getenv("TXROLLUP_OUTPUT"); v != "" {
		cfg.Paths.Output = v
	}
	return cfg
}
