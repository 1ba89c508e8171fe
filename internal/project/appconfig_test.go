package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultUnits = dimension.Millimeter
	cfg.DefaultBitDiameter = "3 mm"
	cfg.CircleSegments = 64
	cfg.RecentJobs = []string{"/tmp/a.json", "/tmp/b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultUnits != dimension.Millimeter {
		t.Errorf("expected DefaultUnits=mm, got %s", loaded.DefaultUnits)
	}
	if loaded.DefaultBitDiameter != "3 mm" {
		t.Errorf("expected DefaultBitDiameter=3 mm, got %s", loaded.DefaultBitDiameter)
	}
	if loaded.CircleSegments != 64 {
		t.Errorf("expected CircleSegments=64, got %d", loaded.CircleSegments)
	}
	if len(loaded.RecentJobs) != 2 {
		t.Errorf("expected 2 recent jobs, got %d", len(loaded.RecentJobs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.ClipScale != defaults.ClipScale {
		t.Errorf("expected default clip scale %f, got %f", defaults.ClipScale, cfg.ClipScale)
	}
	if cfg.DefaultUnits != dimension.Inch {
		t.Errorf("expected units=in, got %s", cfg.DefaultUnits)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_units": "mm"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultUnits != dimension.Millimeter {
		t.Errorf("expected units=mm, got %s", cfg.DefaultUnits)
	}
	if cfg.SampleStep != 1 {
		t.Errorf("expected default sample step 1, got %f", cfg.SampleStep)
	}
	if cfg.RecentJobs == nil {
		t.Error("expected RecentJobs to be non-nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".shapercut" {
		t.Errorf("expected parent dir .shapercut, got %s", filepath.Dir(path))
	}
}
