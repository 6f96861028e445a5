package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ItemsPerPage int    `mapstructure:"items_per_page"`
	NotAvailable string `mapstructure:"not_available"`
	Yes          string
	No           string
	DateFormat   string `mapstructure:"date_format"`
}

// LogConfig holds logger settings. The TUI owns stdout, so logs go to a file.
type LogConfig struct {
	Level string
	Path  string
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate rejects settings the dashboard cannot run with.
func (c Config) Validate() error {
	if c.UI.ItemsPerPage <= 0 {
		return fmt.Errorf("ui.items_per_page must be positive, got %d", c.UI.ItemsPerPage)
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is empty")
	}
	return nil
}

// Path returns the config file location: $MLMDASH_CONFIG or ~/.config/mlmdash/config.toml.
func Path() string {
	if p := os.Getenv("MLMDASH_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "mlmdash", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix MLMDASH_.
func Load() (Config, error) {
	return LoadFile(os.Getenv("MLMDASH_CONFIG"))
}

// LoadFile is Load with an explicit config file; an empty path searches the default location.
func LoadFile(cfgPath string) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "mlmdash", "mlmdash.db"))
	v.SetDefault("database.migrations", "internal/database/migrations")
	v.SetDefault("ui.items_per_page", 10)
	v.SetDefault("ui.not_available", "N/A")
	v.SetDefault("ui.yes", "Yes")
	v.SetDefault("ui.no", "No")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "mlmdash", "mlmdash.log"))

	v.SetConfigType("toml")

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "mlmdash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MLMDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file means defaults + env; a malformed one is an error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to Path(), creating the config directory if needed.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes cfg as TOML to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("ui.items_per_page", cfg.UI.ItemsPerPage)
	v.Set("ui.not_available", cfg.UI.NotAvailable)
	v.Set("ui.yes", cfg.UI.Yes)
	v.Set("ui.no", cfg.UI.No)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
