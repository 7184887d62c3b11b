package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig
	UI      UIConfig
	Session SessionConfig
}

// APIConfig holds backend settings.
type APIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// Timeout converts the configured milliseconds to a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	RecentLimit    int    `mapstructure:"recent_limit"`
	HistoryLimit   int    `mapstructure:"history_limit"`
}

// SessionConfig holds session persistence settings.
type SessionConfig struct {
	Path string // empty means the default location under the user config dir
}

// Load reads configuration from file and env. Env var overrides use prefix NETBANK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout_ms", 10000)
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.recent_limit", 5)
	v.SetDefault("ui.history_limit", 10)
	v.SetDefault("session.path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("NETBANK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "netbank"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NETBANK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. Used for non-sensitive preferences; the session token is
// never written here.
func Save(cfg Config) error {
	path := os.Getenv("NETBANK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "netbank", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout_ms", cfg.API.TimeoutMS)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.recent_limit", cfg.UI.RecentLimit)
	v.Set("ui.history_limit", cfg.UI.HistoryLimit)
	v.Set("session.path", cfg.Session.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
