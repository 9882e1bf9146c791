package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://api.example.com"
	cfg.Server.TimeoutSeconds = 10

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Server.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL: got %q, want %q", loaded.Server.BaseURL, "https://api.example.com")
	}
	if loaded.Server.Timeout() != 10*time.Second {
		t.Errorf("Timeout: got %v, want 10s", loaded.Server.Timeout())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.BaseURL == "" {
		t.Error("default BaseURL is empty")
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("default TimeoutSeconds: got %d, want 30", cfg.Server.TimeoutSeconds)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestBackwardCompatibility(t *testing.T) {
	// Simulate an old config file without newer fields.
	tmpDir := t.TempDir()
	oldConfig := `version: 1
server:
  base_url: http://192.168.0.10:3333
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(oldConfig), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if loaded.Server.BaseURL != "http://192.168.0.10:3333" {
		t.Errorf("BaseURL: got %q", loaded.Server.BaseURL)
	}
	if loaded.Server.TimeoutSeconds != 0 {
		t.Errorf("TimeoutSeconds: got %d, want 0", loaded.Server.TimeoutSeconds)
	}
	if loaded.DataPath() == "" {
		t.Error("DataPath resolved empty")
	}
}
