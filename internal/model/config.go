package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds the backend connection settings.
type ServerConfig struct {
	// BaseURL is the root URL of the backend HTTP API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// WSURL is the websocket endpoint. Empty derives ws(s)://<base>/ws.
	WSURL string `mapstructure:"ws_url" yaml:"ws_url"`

	// TimeoutSec is the per-request HTTP timeout.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// StatusVocabulary selects the status mapping table: "simplified"
	// (default) or "legacy".
	StatusVocabulary string `mapstructure:"status_vocabulary" yaml:"status_vocabulary"`
}

// WizardConfig holds guided-deployment wizard behavior.
type WizardConfig struct {
	// FallbackToStatic controls whether a failed step fetch falls back
	// to the built-in static step list instead of showing an error
	// with retry. Off by default.
	FallbackToStatic bool `mapstructure:"fallback_to_static" yaml:"fallback_to_static"`
}

// LoggingConfig holds file-logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Wizard  WizardConfig  `mapstructure:"wizard" yaml:"wizard"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ConfigDir returns the per-user configuration directory,
// ~/.config/apiforge.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "apiforge")
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			BaseURL:    "http://localhost:8000",
			TimeoutSec: 30,
		},
		Display: DisplayConfig{
			Theme:            "default",
			StatusVocabulary: "simplified",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper, with APIFORGE_* environment overrides. A missing file yields
// the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("apiforge")
	v.AutomaticEnv()

	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.timeout_sec", 30)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.status_vocabulary", "simplified")
	v.SetDefault("wizard.fallback_to_static", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to a YAML file at path, creating
// parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("display", cfg.Display)
	v.Set("wizard", cfg.Wizard)
	v.Set("logging", cfg.Logging)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
