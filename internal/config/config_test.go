package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallsBackToDefaultsWhenFileMissing(t *testing.T) {
	cfg := Load(t.TempDir())
	want := Defaults()
	if cfg != want {
		t.Fatalf("expected defaults %+v, got %+v", want, cfg)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "cache-capacity: 42\nlog-level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "featurectl.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg := Load(dir)
	if cfg.CacheCapacity != 42 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "cache-capacity: 42\n"
	if err := os.WriteFile(filepath.Join(dir, "featurectl.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FEATURECTL_CACHE_CAPACITY", "7")
	cfg := Load(dir)
	if cfg.CacheCapacity != 7 {
		t.Fatalf("expected env override to win, got %d", cfg.CacheCapacity)
	}
}
