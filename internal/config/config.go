// Package config holds the tunable interaction constants. The values
// were tuned empirically; they ship as compiled-in defaults and can be
// overridden from a TOML file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Crosshair holds crosshair interaction tunables
type Crosshair struct {
	// CenterHitRadiusPx is the circular hit radius around the center
	// handle, in canvas pixels.
	CenterHitRadiusPx float64 `toml:"center_hit_radius_px"`
	// RotationHitRadiusPx is the hit radius of the four rotation markers
	// at the crosshair arm ends, in canvas pixels.
	RotationHitRadiusPx float64 `toml:"rotation_hit_radius_px"`
	// RotationSmoothing blends each raw pointer-angle delta before it is
	// accumulated, damping jitter. 1 means no smoothing.
	RotationSmoothing float64 `toml:"rotation_smoothing"`
	// InvertRotation flips the drag direction applied to the long-axis
	// views.
	InvertRotation bool `toml:"invert_rotation"`
	// ArmLengthPx is the on-screen half-length of each crosshair arm.
	ArmLengthPx float64 `toml:"arm_length_px"`
}

// Visibility holds slice-culling threshold tunables
type Visibility struct {
	// LandmarkRadiusMM is the rendered sphere radius of point landmarks.
	LandmarkRadiusMM float64 `toml:"landmark_radius_mm"`
	// RadiusFactor scales the landmark radius term of the threshold (k1).
	RadiusFactor float64 `toml:"radius_factor"`
	// SpacingFactor scales the slice-spacing term for point landmarks (k2).
	SpacingFactor float64 `toml:"spacing_factor"`
	// CurveSpacingFactor is the much tighter spacing term for the
	// connection curve, so the curve only shows where it crosses the
	// current slice.
	CurveSpacingFactor float64 `toml:"curve_spacing_factor"`
}

// Windowing holds window/level gesture tunables
type Windowing struct {
	// WidthPerPx maps horizontal pointer movement to window width.
	WidthPerPx float64 `toml:"width_per_px"`
	// CenterPerPx maps (inverted) vertical pointer movement to window
	// center.
	CenterPerPx float64 `toml:"center_per_px"`
}

// Curve holds connection-curve tunables
type Curve struct {
	// SamplesPerSegment is the Catmull-Rom sampling density.
	SamplesPerSegment int `toml:"samples_per_segment"`
}

// Config is the root of all tunables
type Config struct {
	Crosshair  Crosshair  `toml:"crosshair"`
	Visibility Visibility `toml:"visibility"`
	Windowing  Windowing  `toml:"windowing"`
	Curve      Curve      `toml:"curve"`
}

// Default returns the reference tuning
func Default() Config {
	return Config{
		Crosshair: Crosshair{
			CenterHitRadiusPx:   10,
			RotationHitRadiusPx: 15,
			RotationSmoothing:   0.5,
			InvertRotation:      true,
			ArmLengthPx:         90,
		},
		Visibility: Visibility{
			LandmarkRadiusMM:   2.0,
			RadiusFactor:       3.0,
			SpacingFactor:      5.0,
			CurveSpacingFactor: 1.5,
		},
		Windowing: Windowing{
			WidthPerPx:  4.0,
			CenterPerPx: 4.0,
		},
		Curve: Curve{
			SamplesPerSegment: 25,
		},
	}
}

// Load reads a TOML override file on top of the defaults. Unknown keys
// are rejected so typos in a tuning file do not silently fall back to
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Crosshair.RotationSmoothing <= 0 || c.Crosshair.RotationSmoothing > 1 {
		return fmt.Errorf("rotation_smoothing must be in (0, 1], got %v", c.Crosshair.RotationSmoothing)
	}
	if c.Visibility.LandmarkRadiusMM <= 0 {
		return fmt.Errorf("landmark_radius_mm must be positive, got %v", c.Visibility.LandmarkRadiusMM)
	}
	if c.Curve.SamplesPerSegment < 1 {
		return fmt.Errorf("samples_per_segment must be at least 1, got %d", c.Curve.SamplesPerSegment)
	}
	return nil
}
