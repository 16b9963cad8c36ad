package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	API      APIConfig
	Log      LogConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// APIConfig holds settings for the number API client.
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// LogConfig holds logger settings. The terminal belongs to the UI, so logs
// go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// StartRoute is a route kind name pushed at startup; empty means root.
	StartRoute string `mapstructure:"start_route"`
	DateFormat string `mapstructure:"date_format"`
	Currency   string `mapstructure:"currency"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "appshell")
}

// Load reads configuration from file and env. Env var overrides use prefix APPSHELL_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "appshell.db"))
	v.SetDefault("api.base_url", "https://api.example.com")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.requests_per_second", 2.0)
	v.SetDefault("api.burst", 1)
	v.SetDefault("log.path", filepath.Join(dataDir(), "appshell.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.start_route", "")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.currency", "$")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("APPSHELL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "appshell"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("APPSHELL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("APPSHELL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "appshell", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.requests_per_second", cfg.API.RequestsPerSecond)
	v.Set("api.burst", cfg.API.Burst)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.start_route", cfg.UI.StartRoute)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency", cfg.UI.Currency)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
