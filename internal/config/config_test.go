package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, DefaultBackendURL)
	}
	if cfg.TypingIntervalMs != 20 {
		t.Errorf("TypingIntervalMs = %d, want 20", cfg.TypingIntervalMs)
	}
	if !cfg.Markdown.EnableEmoji {
		t.Error("Markdown.EnableEmoji should default to true")
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("BackendURL = %q, want default", cfg.BackendURL)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.BackendURL = "https://interviews.example.com"
	cfg.TypingIntervalMs = 5
	cfg.Verbose = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.BackendURL != "https://interviews.example.com" {
		t.Errorf("BackendURL = %q", loaded.BackendURL)
	}
	if loaded.TypingIntervalMs != 5 {
		t.Errorf("TypingIntervalMs = %d, want 5", loaded.TypingIntervalMs)
	}
	if !loaded.Verbose {
		t.Error("Verbose should be true")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}

	data := []byte(`{"backend_url": "", "typing_interval_ms": -3}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("empty backend_url should fall back to default, got %q", cfg.BackendURL)
	}
	if cfg.TypingIntervalMs != 20 {
		t.Errorf("non-positive interval should fall back to 20, got %d", cfg.TypingIntervalMs)
	}
}

func TestEnsureConfigDirPermissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("config dir mode = %o, want 700", perm)
	}
}
