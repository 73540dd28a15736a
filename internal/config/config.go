// Package config loads and saves the iexpense TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all iexpense configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Display    DisplayConfig    `toml:"display"`
	Export     ExportConfig     `toml:"export"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds storage and category preferences.
type GeneralConfig struct {
	DBPath      string   `toml:"db_path,omitempty"`
	DefaultType string   `toml:"default_type"`
	Categories  []string `toml:"categories"`
}

// DisplayConfig holds formatting preferences.
type DisplayConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Dir           string `toml:"dir,omitempty"`
	DefaultFormat string `toml:"default_format"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultType: "Personal",
			Categories:  []string{"Personal", "Business"},
		},
		Display: DisplayConfig{
			CurrencySymbol: "$",
		},
		Export: ExportConfig{
			DefaultFormat: "csv",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "iexpense")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "iexpense")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "iexpense")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "iexpense")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.General.Categories) == 0 {
		cfg.General.Categories = DefaultConfig().General.Categories
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetDBPath returns the database path from env var, config, or the default
// data directory, in that order.
func GetDBPath(cfg Config) string {
	if p := os.Getenv("IEXPENSE_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return expandHome(cfg.General.DBPath)
	}
	return filepath.Join(DataDir(), "iexpense.db")
}

// GetCurrencySymbol returns the currency symbol from env var or config.
func GetCurrencySymbol(cfg Config) string {
	if s := os.Getenv("IEXPENSE_CURRENCY"); s != "" {
		return s
	}
	if cfg.Display.CurrencySymbol != "" {
		return cfg.Display.CurrencySymbol
	}
	return "$"
}

// GetLogLevel returns the log level from the LOG_LEVEL env var or config.
func GetLogLevel(cfg Config) string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return cfg.Log.Level
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
