package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NSims != 200000 {
		t.Errorf("expected 200000 sims, got %d", cfg.NSims)
	}
	if cfg.ResultsFile != "results.csv" {
		t.Errorf("expected results.csv, got %s", cfg.ResultsFile)
	}
	if len(cfg.AimPoints) != 8 {
		t.Errorf("expected 8 aim points, got %d", len(cfg.AimPoints))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDispersions(t *testing.T) {
	cfg := DefaultConfig()
	d := cfg.Dispersions()

	if len(d) != 20 {
		t.Fatalf("expected 20 dispersions, got %d", len(d))
	}
	if d[0] != 2.5 || d[len(d)-1] != 50 {
		t.Errorf("expected 2.5..50, got %v..%v", d[0], d[len(d)-1])
	}

	cfg = &Config{MinDispersion: 0.1, MaxDispersion: 0.3, DispersionStep: 0.1}
	if got := len(cfg.Dispersions()); got != 3 {
		t.Errorf("expected 3 dispersions despite float error, got %d", got)
	}

	cfg = &Config{MinDispersion: 5, MaxDispersion: 5, DispersionStep: 1}
	if got := cfg.Dispersions(); len(got) != 1 || got[0] != 5 {
		t.Errorf("expected [5], got %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero sims", func(c *Config) { c.NSims = 0 }},
		{"negative min", func(c *Config) { c.MinDispersion = -1 }},
		{"max below min", func(c *Config) { c.MaxDispersion = 1 }},
		{"zero step", func(c *Config) { c.DispersionStep = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"no aims", func(c *Config) { c.AimPoints = nil }},
		{"unknown aim", func(c *Config) { c.AimPoints = []string{"treble_99"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")

	cfg := DefaultConfig()
	cfg.NSims = 1234
	cfg.Seed = 42
	cfg.AimPoints = []string{"bullseye", "double_16"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.NSims != 1234 || loaded.Seed != 42 {
		t.Errorf("unexpected config: %+v", loaded)
	}
	if len(loaded.AimPoints) != 2 || loaded.AimPoints[1] != "double_16" {
		t.Errorf("unexpected aim points: %v", loaded.AimPoints)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	if err := os.WriteFile(path, []byte("n_sims: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.NSims != 500 {
		t.Errorf("expected 500 sims, got %d", cfg.NSims)
	}
	if cfg.MaxDispersion != DefaultMaxDispersion {
		t.Errorf("expected default max dispersion, got %g", cfg.MaxDispersion)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("n_sims: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.NSims != 20000 {
		t.Errorf("expected 20000 sims, got %d", cfg.NSims)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	cfg.AimPoints[0] = "changed"
	if Presets["quick"].AimPoints[0] != "bullseye" {
		t.Error("preset mutated through returned copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
