package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Fallback variables checked when ai.api_key_env is unset in the environment.
var apiKeyFallbacks = []string{"API_KEY", "INSPIREHUB_API_KEY"}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "inspirehub", "config.yml")
}

// ResolvePath picks the config file: explicit path, then INSPIREHUB_CONFIG,
// then DefaultPath.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if p := os.Getenv("INSPIREHUB_CONFIG"); p != "" {
		return p
	}
	return DefaultPath()
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AI: AIConfig{
			APIKeyEnv:         "GEMINI_API_KEY",
			APIBase:           "https://generativelanguage.googleapis.com",
			TextModel:         "gemini-2.5-flash",
			ImageModel:        "imagen-4.0-generate-001",
			Timeout:           60 * time.Second,
			RequestsPerMinute: 30,
		},
		Storage:  StorageConfig{Backend: "file", Dir: defaultDataDir()},
		Unlock:   UnlockConfig{AdDuration: 3 * time.Second},
		Download: DownloadConfig{Dir: defaultDownloadDir()},
		Log:      LogConfig{Level: "info", File: defaultLogFile()},
	}
}

// Load reads the config from disk (or env). A missing file yields the
// defaults; the init command creates it.
func Load(path string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	d := Default()

	v.SetDefault("ai.api_key_env", d.AI.APIKeyEnv)
	v.SetDefault("ai.api_base", d.AI.APIBase)
	v.SetDefault("ai.text_model", d.AI.TextModel)
	v.SetDefault("ai.image_model", d.AI.ImageModel)
	v.SetDefault("ai.timeout", d.AI.Timeout)
	v.SetDefault("ai.requests_per_minute", d.AI.RequestsPerMinute)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("catalog.path", "")
	v.SetDefault("unlock.persist", false)
	v.SetDefault("unlock.ad_duration", d.Unlock.AdDuration)
	v.SetDefault("download.dir", d.Download.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetEnvPrefix("INSPIREHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ResolvePath(path))
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve the credential from env (never stored in file).
	keyEnv := cfg.AI.APIKeyEnv
	if keyEnv == "" {
		keyEnv = d.AI.APIKeyEnv
	}
	cfg.AI.APIKey = os.Getenv(keyEnv)
	for _, name := range apiKeyFallbacks {
		if cfg.AI.APIKey != "" {
			break
		}
		cfg.AI.APIKey = os.Getenv(name)
	}

	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	cfg.Catalog.Path = ExpandHome(cfg.Catalog.Path)
	cfg.Download.Dir = ExpandHome(cfg.Download.Dir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "inspirehub")
}

func defaultDownloadDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Downloads")
}

func defaultLogFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "inspirehub", "inspirehub.log")
}
