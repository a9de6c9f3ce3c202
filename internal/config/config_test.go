package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Bodies != 30 {
		t.Errorf("expected 30 bodies, got %d", cfg.Bodies)
	}
	if cfg.Dt != 3600 {
		t.Errorf("expected dt 3600, got %v", cfg.Dt)
	}
	if cfg.TotalTime != 36000 {
		t.Errorf("expected total time 36000, got %v", cfg.TotalTime)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.EngineMode() != physics.ModeDirected {
		t.Errorf("expected directed mode by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"negative bodies", func(c *Config) { c.Bodies = -1 }, "bodies"},
		{"zero dt", func(c *Config) { c.Dt = 0 }, "dt"},
		{"negative dt", func(c *Config) { c.Dt = -3600 }, "dt"},
		{"NaN dt", func(c *Config) { c.Dt = math.NaN() }, "dt"},
		{"zero total", func(c *Config) { c.TotalTime = 0 }, "total_time"},
		{"infinite total", func(c *Config) { c.TotalTime = math.Inf(1) }, "total_time"},
		{"unknown mode", func(c *Config) { c.Mode = "barnes-hut" }, "mode"},
		{"negative escape radius", func(c *Config) { c.EscapeRadius = -1 }, "escape_radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)

			err := cfg.Validate()
			var ce *dynamo.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ce.Field)
			}
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig")
			}
		})
	}
}

func TestZeroBodiesIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero bodies should fall back to the catalog, got %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Bodies = 120
	cfg.Seed = 99
	cfg.Mode = "symmetric"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("dt: 60\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dt != 60 {
		t.Errorf("expected dt 60, got %v", cfg.Dt)
	}
	if cfg.Bodies != DefaultBodies || cfg.TotalTime != DefaultTotalTime {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("year")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.TotalTime != 8766*3600 {
		t.Errorf("expected one year of hours, got %v", cfg.TotalTime)
	}

	cfg.Bodies = 1
	if Presets["year"].Bodies == 1 {
		t.Error("GetPreset returned shared preset")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	sort.Strings(names)
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	for _, name := range names {
		cfg := DefaultConfig()
		cfg.Apply(GetPreset(name))
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
		if cfg.Output != DefaultOutput {
			t.Errorf("preset %s overwrote output", name)
		}
	}
}

func TestLoadFromKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("dt: 60\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("swarm")
	cfg, err := LoadFrom(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dt != 60 {
		t.Errorf("expected dt from file, got %v", cfg.Dt)
	}
	if cfg.Bodies != 200 || cfg.Mode != "symmetric" {
		t.Errorf("expected preset values to survive, got %+v", cfg)
	}
	if base.Dt != 3600 {
		t.Error("LoadFrom must not modify base")
	}
}
