package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.store/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := config.LoadConfig(home, "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CacheSize != 10 {
		t.Fatalf("got CacheSize %d, want 10", cfg.CacheSize)
	}
	if cfg.RequirePassphrase {
		t.Fatalf("expected RequirePassphrase to default false")
	}
	if _, err := os.Stat(cfg.LogDir); err != nil {
		t.Fatalf("log dir not created: %v", err)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	home := t.TempDir()
	cfgPath := filepath.Join(home, "config.yaml")
	yaml := "cache_size: 42\nrequire_passphrase: true\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(home, cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CacheSize != 42 {
		t.Fatalf("got CacheSize %d, want 42", cfg.CacheSize)
	}
	if !cfg.RequirePassphrase {
		t.Fatalf("expected RequirePassphrase true from config file")
	}
}
