package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations: got %d, want %d", cfg.MaxIterations, DefaultMaxIterations)
	}
	if cfg.FailureThreshold != DefaultFailureThreshold {
		t.Errorf("FailureThreshold: got %d, want %d", cfg.FailureThreshold, DefaultFailureThreshold)
	}
	if cfg.TestTimeout() != DefaultTestTimeout {
		t.Errorf("TestTimeout: got %v, want %v", cfg.TestTimeout(), DefaultTestTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "max_iterations: 10\nfailure_threshold: 5\ntest_timeout_seconds: 60\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxIterations != 10 {
		t.Errorf("MaxIterations: got %d, want 10", cfg.MaxIterations)
	}
	if cfg.FailureThreshold != 5 {
		t.Errorf("FailureThreshold: got %d, want 5", cfg.FailureThreshold)
	}
	if cfg.TestTimeout() != 60*time.Second {
		t.Errorf("TestTimeout: got %v, want 60s", cfg.TestTimeout())
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("max_iterations: 25\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxIterations != 25 {
		t.Errorf("MaxIterations: got %d, want 25", cfg.MaxIterations)
	}
	if cfg.FailureThreshold != DefaultFailureThreshold {
		t.Errorf("FailureThreshold: got %d, want default %d", cfg.FailureThreshold, DefaultFailureThreshold)
	}
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("max_iterations: [not a number\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}

	// Hook paths degrade to defaults instead of failing
	cfg := LoadOrDefault(path)
	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("LoadOrDefault MaxIterations: got %d, want default", cfg.MaxIterations)
	}
}
