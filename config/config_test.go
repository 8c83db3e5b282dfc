package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Physics.CorrectionPercent != 0.4 || cfg.Physics.CorrectionSlop != 0.01 {
		t.Errorf("correction = %v / %v, want 0.4 / 0.01", cfg.Physics.CorrectionPercent, cfg.Physics.CorrectionSlop)
	}
	if cfg.Derived.Gravity.X != 0 || cfg.Derived.Gravity.Y != -9.81 {
		t.Errorf("Derived.Gravity = %v", cfg.Derived.Gravity)
	}
	if cfg.Derived.TicksPerWindow != 60 {
		t.Errorf("TicksPerWindow = %d, want 60", cfg.Derived.TicksPerWindow)
	}
	if math.Abs(cfg.Physics.DT-1.0/60) > 1e-12 {
		t.Errorf("DT = %v", cfg.Physics.DT)
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("physics:\n  gravity_y: -1.62\n  workers: 3\ntelemetry:\n  stats_window: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.Gravity.Y != -1.62 || cfg.Physics.Workers != 3 {
		t.Errorf("override not applied: %+v", cfg.Physics)
	}
	// untouched keys keep their defaults
	if cfg.Physics.CorrectionPercent != 0.4 || cfg.Screen.Width != 1280 {
		t.Errorf("defaults lost: %+v %+v", cfg.Physics, cfg.Screen)
	}
	if cfg.Derived.TicksPerWindow != 30 {
		t.Errorf("TicksPerWindow = %d, want 30", cfg.Derived.TicksPerWindow)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "physics: [unclosed"},
		{"zero dt", "physics:\n  dt: 0\n"},
		{"percent above one", "physics:\n  correction_percent: 1.5\n"},
		{"negative slop", "physics:\n  correction_slop: -0.1\n"},
		{"zero zoom", "view:\n  zoom: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Physics.CorrectionPercent = 0.65
	cfg.Physics.CorrectionSlop = 0.003

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Physics != cfg.Physics || got.Screen != cfg.Screen {
		t.Errorf("round trip changed config: %+v vs %+v", got.Physics, cfg.Physics)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	defer func() { global = saved }()
	global = nil

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}

func TestInitAndSet(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Physics.DT <= 0 {
		t.Error("Cfg not populated")
	}

	cfg := *Cfg()
	cfg.Physics.GravityY = -3
	Set(&cfg)
	if Cfg().Derived.Gravity.Y != -3 {
		t.Errorf("Set did not recompute derived values: %v", Cfg().Derived.Gravity)
	}
}
