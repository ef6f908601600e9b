package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := AppConfig{App: AppMeta{Name: "demo"}}
	cfg.ApplyDefaults()

	if cfg.App.Environment != "development" {
		t.Errorf("expected default environment 'development', got %q", cfg.App.Environment)
	}
	if !cfg.App.Debug {
		t.Error("expected debug enabled in development")
	}
	if cfg.Backend.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", cfg.Backend.RequestTimeout)
	}
	if cfg.Storage.Namespace != "demo" {
		t.Errorf("expected namespace to default to app name, got %q", cfg.Storage.Namespace)
	}
}

func TestValidate(t *testing.T) {
	cfg := AppConfig{App: AppMeta{Name: "demo"}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	noName := AppConfig{}
	noName.ApplyDefaults()
	if err := noName.Validate(); err == nil {
		t.Error("expected error for missing app name")
	}

	badEnv := AppConfig{App: AppMeta{Name: "demo", Environment: "qa"}}
	badEnv.Logging.ApplyDefaults()
	if err := badEnv.Validate(); err == nil {
		t.Error("expected error for invalid environment")
	}

	shortKey := AppConfig{App: AppMeta{Name: "demo"}, Keys: Keys{Purchases: "abc"}}
	shortKey.ApplyDefaults()
	if err := shortKey.Validate(); err == nil {
		t.Error("expected error for malformed purchases key")
	}
}

func TestHasPurchases(t *testing.T) {
	cfg := AppConfig{}
	if cfg.HasPurchases() {
		t.Error("expected no purchases without a key")
	}
	cfg.Keys.Purchases = "pk_live_0123456789"
	if !cfg.HasPurchases() {
		t.Error("expected purchases with a key")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "appkit.yml")
	content := []byte(`
app:
  name: demo
  environment: staging
backend:
  api_url: https://api.example.com
features:
  analytics: true
keys:
  purchases: pk_live_0123456789
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "demo" {
		t.Errorf("expected app name 'demo', got %q", cfg.App.Name)
	}
	if cfg.App.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.App.Environment)
	}
	if !cfg.Features.Analytics {
		t.Error("expected analytics toggle on")
	}
	if !cfg.HasPurchases() {
		t.Error("expected purchases configured")
	}
}

func TestLoadMissingFileIsError(t *testing.T) {
	if _, err := Load(WithConfigFile("/nonexistent/appkit.yml")); err == nil {
		t.Error("expected error for explicit missing config file")
	}
}

func TestLoadWithoutAnyFileValidates(t *testing.T) {
	// No config file found: Load still validates, and an empty app name fails.
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(dir)

	if _, err := Load(); err == nil {
		t.Error("expected validation error with no config present")
	}
}
