// Package config loads histdb settings from a YAML file and HISTDB_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// DB is the SQLite database file.
	DB string `mapstructure:"db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// BusyTimeoutMS is how long SQLite waits on a locked database before
	// reporting busy.
	BusyTimeoutMS int `mapstructure:"busy_timeout_ms"`

	// BusyRetries is how many times a busy transaction is retried after the
	// busy timeout expires.
	BusyRetries int `mapstructure:"busy_retries"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		DB:            DefaultDBPath(),
		LogLevel:      "warn",
		BusyTimeoutMS: 5000,
		BusyRetries:   5,
	}
}

// Load reads the config file from the user config directory, if one exists,
// and applies HISTDB_ environment overrides.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from path, which must exist, and applies
// HISTDB_ environment overrides.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("HISTDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("db", cfg.DB)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("busy_timeout_ms", cfg.BusyTimeoutMS)
	v.SetDefault("busy_retries", cfg.BusyRetries)

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.DB == "" {
		return errors.New("config: db must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.BusyTimeoutMS < 0 {
		return fmt.Errorf("config: busy_timeout_ms must be >= 0, got %d", c.BusyTimeoutMS)
	}
	if c.BusyRetries < 0 {
		return fmt.Errorf("config: busy_retries must be >= 0, got %d", c.BusyRetries)
	}
	return nil
}

// BusyTimeout returns BusyTimeoutMS as a duration.
func (c *Config) BusyTimeout() time.Duration {
	return time.Duration(c.BusyTimeoutMS) * time.Millisecond
}

// ParseLevel maps a level name to its slog.Level. Case is ignored.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
}

// ConfigDir returns $XDG_CONFIG_HOME/histdb, or ~/.config/histdb.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "histdb")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "histdb")
	}
	return "histdb"
}

// DefaultDBPath returns $XDG_DATA_HOME/histdb/data/histdb.sqlite3, or the
// same layout under ~/.local/share.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(dataHome, "histdb", "data", "histdb.sqlite3")
}
