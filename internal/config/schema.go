package config

import (
	"fmt"
	"time"
)

// Config is the top-level inspirehub configuration.
type Config struct {
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
	Unlock   UnlockConfig   `mapstructure:"unlock" yaml:"unlock"`
	Download DownloadConfig `mapstructure:"download" yaml:"download"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// AIConfig holds generative AI connection settings.
type AIConfig struct {
	APIKeyEnv         string        `mapstructure:"api_key_env" yaml:"api_key_env"`
	APIBase           string        `mapstructure:"api_base" yaml:"api_base"`
	TextModel         string        `mapstructure:"text_model" yaml:"text_model"`
	ImageModel        string        `mapstructure:"image_model" yaml:"image_model"`
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	APIKey            string        `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// StorageConfig selects where user state is kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // "file", "sqlite" or "memory"
	Dir     string `mapstructure:"dir" yaml:"dir"`
}

// CatalogConfig points at an alternative catalog file. Empty means the
// bundled catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// UnlockConfig controls the rewarded-ad unlock mechanic.
type UnlockConfig struct {
	Persist    bool          `mapstructure:"persist" yaml:"persist"`
	AdDuration time.Duration `mapstructure:"ad_duration" yaml:"ad_duration"`
}

// DownloadConfig sets where saved wallpapers go when no directory is given.
type DownloadConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// HasAPIKey reports whether an AI credential was resolved.
func (c *Config) HasAPIKey() bool {
	return c.AI.APIKey != ""
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want file, sqlite or memory)", c.Storage.Backend)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %s", c.AI.Timeout)
	}
	if c.AI.RequestsPerMinute < 0 {
		return fmt.Errorf("ai.requests_per_minute must not be negative, got %d", c.AI.RequestsPerMinute)
	}
	if c.Unlock.AdDuration <= 0 {
		return fmt.Errorf("unlock.ad_duration must be positive, got %s", c.Unlock.AdDuration)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}
