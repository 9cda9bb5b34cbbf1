package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Environment tests mutate the process environment and cannot run in parallel.

func TestLoadEnv_APIKey(t *testing.T) {
	t.Run("primary variable", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "primary-key")
		t.Setenv(EnvAPIKeyLegacy, "legacy-key")

		cfg := NewConfig()
		if err := LoadEnv(cfg, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "primary-key" {
			t.Errorf("expected primary key to win, got %q", cfg.APIKey)
		}
	})

	t.Run("legacy variable", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		t.Setenv(EnvAPIKeyLegacy, "legacy-key")

		cfg := NewConfig()
		if err := LoadEnv(cfg, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "legacy-key" {
			t.Errorf("expected legacy key, got %q", cfg.APIKey)
		}
	})

	t.Run("environment overrides file value", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")

		cfg := NewConfig()
		cfg.ApplyFile(&File{PageSpeed: PageSpeedSection{APIKey: "file-key"}})
		if err := LoadEnv(cfg, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "env-key" {
			t.Errorf("expected env key, got %q", cfg.APIKey)
		}
	})
}

func TestLoadEnv_Port(t *testing.T) {
	t.Run("numeric port", func(t *testing.T) {
		t.Setenv(EnvPort, "9090")

		cfg := NewConfig()
		if err := LoadEnv(cfg, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != 9090 {
			t.Errorf("expected 9090, got %d", cfg.Port)
		}
	})

	t.Run("non numeric port", func(t *testing.T) {
		t.Setenv(EnvPort, "http")

		err := LoadEnv(NewConfig(), "")
		if !errors.Is(err, ErrInvalidPort) {
			t.Errorf("expected ErrInvalidPort, got %v", err)
		}
	})
}

func TestLoadEnv_DotEnvFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyLegacy, "")
	t.Setenv(EnvServerURL, "")

	path := filepath.Join(t.TempDir(), ".env")
	content := "Google_API=dotenv-key\nPAGESCORE_SERVER_URL=http://remote:8000\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := NewConfig()
	if err := LoadEnv(cfg, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "dotenv-key" {
		t.Errorf("expected key from dotenv file, got %q", cfg.APIKey)
	}
	if cfg.ServerURL != "http://remote:8000" {
		t.Errorf("expected server URL from dotenv file, got %q", cfg.ServerURL)
	}
}

func TestLoadEnv_MissingDotEnvFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyLegacy, "")

	cfg := NewConfig()
	if err := LoadEnv(cfg, filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HasAPIKey() {
		t.Errorf("expected no API key, got %q", cfg.APIKey)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvPort, "")

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("file then environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 8123\npagespeed:\n  api_key: file-key\n"), 0600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != 8123 {
			t.Errorf("expected port from file, got %d", cfg.Port)
		}
		if cfg.APIKey != "env-key" {
			t.Errorf("expected env key to override file, got %q", cfg.APIKey)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected ConfigFilePath %s, got %s", path, cfg.ConfigFilePath)
		}
	})
}
