package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pricing.Weights.Alpha != 0.15 {
		t.Errorf("alpha = %v, want default 0.15", cfg.Pricing.Weights.Alpha)
	}
	if cfg.Pricing.Constraints.MinDiscount != -0.30 {
		t.Errorf("min discount = %v, want -0.30", cfg.Pricing.Constraints.MinDiscount)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Pricing.Weights.Gamma = 0.35
	cfg.Pricing.DemandSchedule.PeakMultiplier = 0.25
	cfg.History.Enabled = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Pricing.Weights.Gamma != 0.35 {
		t.Errorf("gamma = %v, want 0.35", loaded.Pricing.Weights.Gamma)
	}
	if loaded.Pricing.DemandSchedule.PeakMultiplier != 0.25 {
		t.Errorf("peak multiplier = %v, want 0.25", loaded.Pricing.DemandSchedule.PeakMultiplier)
	}
	if !loaded.History.Enabled {
		t.Error("history.enabled lost on round trip")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("API_LISTEN_ADDR", ":9999")
	t.Setenv("HISTORY_DB_PATH", "/tmp/override.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.ListenAddr != ":9999" {
		t.Errorf("listen addr = %q, want :9999", cfg.API.ListenAddr)
	}
	if cfg.History.DatabasePath != "/tmp/override.db" {
		t.Errorf("db path = %q, want /tmp/override.db", cfg.History.DatabasePath)
	}
}

func TestValidateRejectsBadConstraints(t *testing.T) {
	cfg := Default()
	cfg.Pricing.Constraints.MinDiscount = 0.1
	if err := cfg.Validate(); err == nil {
		t.Error("positive min_discount accepted")
	}

	cfg = Default()
	cfg.Pricing.DemandSchedule.PeakStartHour = 23
	cfg.Pricing.DemandSchedule.PeakEndHour = 6
	if err := cfg.Validate(); err == nil {
		t.Error("inverted peak window accepted")
	}
}
