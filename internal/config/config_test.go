package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/quickreturn/internal/linkage"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Units != "si" {
		t.Errorf("expected si units, got %s", cfg.Units)
	}
	if cfg.Samples <= 0 {
		t.Error("samples should be positive")
	}
	if math.Abs(cfg.DriveAngle()-math.Pi/6) > 1e-15 {
		t.Errorf("expected drive angle pi/6, got %f", cfg.DriveAngle())
	}
}

func TestLinkage(t *testing.T) {
	lc, err := DefaultConfig().Linkage()
	if err != nil {
		t.Fatalf("linkage failed: %v", err)
	}
	if lc.R4 != DefaultR4 {
		t.Errorf("expected r4 %f, got %f", DefaultR4, lc.R4)
	}
	if math.Abs(lc.Theta1-math.Pi/2) > 1e-15 {
		t.Errorf("expected theta1 pi/2, got %f", lc.Theta1)
	}
	if lc.Omega2 != DefaultOmega2 {
		t.Errorf("expected omega2 %f, got %f", DefaultOmega2, lc.Omega2)
	}
}

func TestLinkageInvalid(t *testing.T) {
	tests := []struct {
		name string
		mut  func(c *Config)
		want error
	}{
		{"zero length", func(c *Config) { c.Links.R5 = 0 }, linkage.ErrInvalidGeometry},
		{"zero samples", func(c *Config) { c.Samples = 0 }, linkage.ErrInvalidArgument},
		{"bad units", func(c *Config) { c.Units = "furlongs" }, linkage.ErrInvalidArgument},
		{"bad assembly", func(c *Config) { c.Assembly = "inside-out" }, linkage.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)
			if _, err := cfg.Linkage(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mech.yaml")

	cfg := DefaultConfig()
	cfg.Name = "bench"
	cfg.Assembly = "crossed"
	cfg.Links.R5 = 0.033

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "bench" || loaded.Assembly != "crossed" {
		t.Errorf("unexpected round trip: %+v", loaded)
	}
	if loaded.Links.R5 != 0.033 {
		t.Errorf("expected r5 0.033, got %f", loaded.Links.R5)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("usc")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Units != "usc" {
		t.Errorf("expected usc units, got %s", cfg.Units)
	}

	cfg.Links.R1 = 99
	if Presets["usc"].Links.R1 == 99 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsSolve(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		m, err := cfg.Mechanism()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for i := 0; i < cfg.Samples; i++ {
			theta2 := 2 * math.Pi * float64(i) / float64(cfg.Samples)
			if _, err := m.SliderVelocity(theta2); err != nil {
				t.Fatalf("%s: sample %d: %v", name, i, err)
			}
		}
	}
}

func TestConvert(t *testing.T) {
	cfg := DefaultConfig()
	usc, err := cfg.Convert(linkage.USC)
	if err != nil {
		t.Fatal(err)
	}
	if usc.Units != "usc" {
		t.Errorf("units = %s, want usc", usc.Units)
	}
	if math.Abs(usc.Links.R4-DefaultR4*linkage.FeetPerMeter) > 1e-12 {
		t.Errorf("r4 = %v", usc.Links.R4)
	}
	if usc.Theta1 != cfg.Theta1 || usc.Omega2 != cfg.Omega2 {
		t.Error("angles and angular velocity must not change")
	}
	if cfg.Units != "si" {
		t.Error("Convert must not modify the receiver")
	}

	back, err := usc.Convert(linkage.SI)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(back.Links.R7-DefaultR7) > 1e-12 {
		t.Errorf("round trip r7 = %v", back.Links.R7)
	}
}
