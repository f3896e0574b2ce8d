package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultWidth = 120
	cfg.DefaultOrder = "best"
	cfg.DefaultEngine = "grid"
	cfg.LabelsWithQR = false
	cfg.RecentJobs = []string{"/tmp/a.json", "/tmp/b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultWidth != 120 {
		t.Errorf("expected DefaultWidth=120, got %d", loaded.DefaultWidth)
	}
	if loaded.DefaultOrder != "best" || loaded.DefaultEngine != "grid" {
		t.Errorf("unexpected order/engine %q/%q", loaded.DefaultOrder, loaded.DefaultEngine)
	}
	if loaded.LabelsWithQR {
		t.Error("expected LabelsWithQR=false")
	}
	if len(loaded.RecentJobs) != 2 {
		t.Errorf("expected 2 recent jobs, got %d", len(loaded.RecentJobs))
	}
}

func TestSaveAppConfigWritesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "default_width = 96") {
		t.Errorf("expected TOML key default_width, got:\n%s", data)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.toml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.DefaultWidth != model.DefaultAppConfig().DefaultWidth {
		t.Errorf("expected default width, got %d", cfg.DefaultWidth)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_width = 48\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultWidth != 48 {
		t.Errorf("expected DefaultWidth=48, got %d", cfg.DefaultWidth)
	}
	if cfg.DefaultOrder != "descending" {
		t.Errorf("expected default order to survive, got %q", cfg.DefaultOrder)
	}
	if !cfg.LabelsWithQR {
		t.Error("expected LabelsWithQR default to survive")
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestLoadAppConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_width = [oops"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("expected config.toml, got %s", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".boxpack" {
		t.Errorf("expected .boxpack directory, got %s", filepath.Dir(path))
	}
}
