package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taviplan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultReferenceValues(t *testing.T) {
	cfg := Default()

	if cfg.Crosshair.CenterHitRadiusPx != 10 {
		t.Errorf("center hit radius: expected 10, got %v", cfg.Crosshair.CenterHitRadiusPx)
	}
	if cfg.Crosshair.RotationHitRadiusPx != 15 {
		t.Errorf("rotation hit radius: expected 15, got %v", cfg.Crosshair.RotationHitRadiusPx)
	}
	if cfg.Visibility.RadiusFactor != 3.0 || cfg.Visibility.SpacingFactor != 5.0 {
		t.Errorf("point thresholds: expected k1=3 k2=5, got %v/%v",
			cfg.Visibility.RadiusFactor, cfg.Visibility.SpacingFactor)
	}
	if cfg.Visibility.CurveSpacingFactor != 1.5 {
		t.Errorf("curve spacing factor: expected 1.5, got %v", cfg.Visibility.CurveSpacingFactor)
	}
	if cfg.Curve.SamplesPerSegment != 25 {
		t.Errorf("samples per segment: expected 25, got %d", cfg.Curve.SamplesPerSegment)
	}
}

func TestLoadOverride(t *testing.T) {
	path := writeConfig(t, `
[crosshair]
rotation_smoothing = 0.8

[visibility]
spacing_factor = 7.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Crosshair.RotationSmoothing != 0.8 {
		t.Errorf("override not applied: got %v", cfg.Crosshair.RotationSmoothing)
	}
	if cfg.Visibility.SpacingFactor != 7.5 {
		t.Errorf("override not applied: got %v", cfg.Visibility.SpacingFactor)
	}
	// Untouched keys keep their defaults
	if cfg.Crosshair.CenterHitRadiusPx != 10 {
		t.Errorf("default lost: got %v", cfg.Crosshair.CenterHitRadiusPx)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[crosshair]
centre_hit_radius = 12
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[crosshair]
rotation_smoothing = 0.0
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for out-of-range smoothing")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
