package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/rigid/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{2, -1})
	if got[0] != 1.0 || got[1] != 0 {
		t.Errorf("Clamp = %v, want [1 0]", got)
	}
}

func TestApplyAndExtract(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}

	def := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if def[i] != spec.Default {
			t.Errorf("%s default = %v, config has %v", spec.Name, spec.Default, def[i])
		}
	}

	pv.ApplyToConfig(cfg, []float64{0.7, 0.5})
	got := pv.ExtractFromConfig(cfg)
	if got[0] != 0.7 || got[1] != 0.05 {
		t.Errorf("after apply = %v, want [0.7 0.05]", got)
	}
}
