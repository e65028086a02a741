package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/inspirehub/internal/config"
)

// isolate clears every variable Load consults and points it at dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		"GEMINI_API_KEY", "API_KEY", "INSPIREHUB_API_KEY", "INSPIREHUB_CONFIG",
		"INSPIREHUB_AI_TIMEOUT", "INSPIREHUB_STORAGE_BACKEND", "INSPIREHUB_UNLOCK_PERSIST",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(dir)
	return dir
}

func TestDefaultPath(t *testing.T) {
	p := config.DefaultPath()
	if p == "" {
		t.Fatal("DefaultPath returned empty string")
	}
	if !strings.HasSuffix(p, filepath.Join("inspirehub", "config.yml")) {
		t.Errorf("DefaultPath = %q, should end with inspirehub/config.yml", p)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := config.Load(filepath.Join(dir, "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.TextModel != "gemini-2.5-flash" {
		t.Errorf("TextModel = %q", cfg.AI.TextModel)
	}
	if cfg.AI.ImageModel != "imagen-4.0-generate-001" {
		t.Errorf("ImageModel = %q", cfg.AI.ImageModel)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("Timeout = %s, want 60s", cfg.AI.Timeout)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Unlock.Persist {
		t.Error("Unlock.Persist should default to false")
	}
	if cfg.Unlock.AdDuration != 3*time.Second {
		t.Errorf("AdDuration = %s, want 3s", cfg.Unlock.AdDuration)
	}
	if filepath.Base(cfg.Download.Dir) != "Downloads" {
		t.Errorf("Download.Dir = %q, want ~/Downloads", cfg.Download.Dir)
	}
	if cfg.HasAPIKey() {
		t.Error("HasAPIKey should be false with a clean environment")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	body := "ai:\n  timeout: 5s\n  api_key_env: MY_KEY\nstorage:\n  backend: sqlite\n"
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MY_KEY", "secret")
	t.Setenv("INSPIREHUB_UNLOCK_PERSIST", "true")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.AI.Timeout)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.AI.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.AI.APIKey)
	}
	if !cfg.Unlock.Persist {
		t.Error("INSPIREHUB_UNLOCK_PERSIST not applied")
	}
}

func TestLoad_APIKeyFallback(t *testing.T) {
	dir := isolate(t)
	t.Setenv("API_KEY", "fallback")
	cfg, err := config.Load(filepath.Join(dir, "none.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AI.APIKey != "fallback" {
		t.Errorf("APIKey = %q, want fallback", cfg.AI.APIKey)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	// godotenv.Load does not override variables that are already set.
	os.Unsetenv("GEMINI_API_KEY")
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })

	cfg, err := config.Load(filepath.Join(dir, "none.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AI.APIKey != "from-dotenv" {
		t.Errorf("APIKey = %q, want from-dotenv", cfg.AI.APIKey)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	dir := isolate(t)
	t.Setenv("INSPIREHUB_STORAGE_BACKEND", "redis")
	if _, err := config.Load(filepath.Join(dir, "none.yml")); err == nil {
		t.Error("Load should reject unknown storage backend")
	}
}

func TestSave_NeverWritesKey(t *testing.T) {
	dir := isolate(t)
	cfg := config.Default()
	cfg.AI.APIKey = "do-not-write"
	path := filepath.Join(dir, "sub", "config.yml")
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "do-not-write") {
		t.Error("saved config contains the API key")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load saved: %v", err)
	}
	if loaded.AI.Timeout != cfg.AI.Timeout {
		t.Errorf("Timeout after round trip = %s, want %s", loaded.AI.Timeout, cfg.AI.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero timeout", func(c *config.Config) { c.AI.Timeout = 0 }},
		{"negative rpm", func(c *config.Config) { c.AI.RequestsPerMinute = -1 }},
		{"zero ad duration", func(c *config.Config) { c.Unlock.AdDuration = 0 }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }},
	}
	if err := config.Default().Validate(); err != nil {
		t.Fatalf("Default().Validate: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := config.ExpandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandHome(~/x) = %q", got)
	}
	if got := config.ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}
