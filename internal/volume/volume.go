// Package volume provides the CT volume the viewports sample slices
// from: a uniform int16 grid with per-axis millimeter spacing. DICOM
// retrieval and decoding are out of scope; volumes arrive either from
// the small .vol container or from the synthetic phantom generator.
package volume

import (
	"fmt"
	"math"

	"github.com/openmpr/taviplan/pkg/geometry"
)

// Volume is a uniform-grid scalar volume in patient space
type Volume struct {
	Dims    [3]int           // Voxel counts per axis
	Spacing [3]float64       // Millimeters per voxel, per axis
	Origin  geometry.Vector3 // World position of voxel (0,0,0)
	Data    []int16          // X-fastest voxel order, len = Dims[0]*Dims[1]*Dims[2]
}

// New allocates a zero-filled volume
func New(dims [3]int, spacing [3]float64, origin geometry.Vector3) (*Volume, error) {
	for i := 0; i < 3; i++ {
		if dims[i] <= 0 {
			return nil, fmt.Errorf("volume: dims[%d] must be positive, got %d", i, dims[i])
		}
		if spacing[i] <= 0 {
			return nil, fmt.Errorf("volume: spacing[%d] must be positive, got %v", i, spacing[i])
		}
	}
	return &Volume{
		Dims:    dims,
		Spacing: spacing,
		Origin:  origin,
		Data:    make([]int16, dims[0]*dims[1]*dims[2]),
	}, nil
}

// SliceSpacing returns the millimeter spacing per axis. This is the
// value the slice-visibility threshold adapts to.
func (v *Volume) SliceSpacing() [3]float64 {
	return v.Spacing
}

// Center returns the world-space center of the volume
func (v *Volume) Center() geometry.Vector3 {
	return v.Origin.Add(geometry.NewVector3(
		float64(v.Dims[0]-1)*v.Spacing[0]/2,
		float64(v.Dims[1]-1)*v.Spacing[1]/2,
		float64(v.Dims[2]-1)*v.Spacing[2]/2,
	))
}

// Extent returns the world-space size of the volume per axis in mm
func (v *Volume) Extent() geometry.Vector3 {
	return geometry.NewVector3(
		float64(v.Dims[0]-1)*v.Spacing[0],
		float64(v.Dims[1]-1)*v.Spacing[1],
		float64(v.Dims[2]-1)*v.Spacing[2],
	)
}

// At returns the voxel value at integer indices, clamped to the grid
func (v *Volume) At(x, y, z int) int16 {
	x = clampInt(x, 0, v.Dims[0]-1)
	y = clampInt(y, 0, v.Dims[1]-1)
	z = clampInt(z, 0, v.Dims[2]-1)
	return v.Data[(z*v.Dims[1]+y)*v.Dims[0]+x]
}

// Set writes a voxel value; out-of-range indices are ignored
func (v *Volume) Set(x, y, z int, value int16) {
	if x < 0 || x >= v.Dims[0] || y < 0 || y >= v.Dims[1] || z < 0 || z >= v.Dims[2] {
		return
	}
	v.Data[(z*v.Dims[1]+y)*v.Dims[0]+x] = value
}

// SampleWorld trilinearly interpolates the volume at a world-space
// position. Positions outside the volume return the air floor value.
func (v *Volume) SampleWorld(p geometry.Vector3) float64 {
	fx := (p.X - v.Origin.X) / v.Spacing[0]
	fy := (p.Y - v.Origin.Y) / v.Spacing[1]
	fz := (p.Z - v.Origin.Z) / v.Spacing[2]

	if fx < 0 || fy < 0 || fz < 0 ||
		fx > float64(v.Dims[0]-1) || fy > float64(v.Dims[1]-1) || fz > float64(v.Dims[2]-1) {
		return AirValue
	}

	x0, y0, z0 := int(math.Floor(fx)), int(math.Floor(fy)), int(math.Floor(fz))
	tx, ty, tz := fx-float64(x0), fy-float64(y0), fz-float64(z0)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }

	c00 := lerp(float64(v.At(x0, y0, z0)), float64(v.At(x0+1, y0, z0)), tx)
	c10 := lerp(float64(v.At(x0, y0+1, z0)), float64(v.At(x0+1, y0+1, z0)), tx)
	c01 := lerp(float64(v.At(x0, y0, z0+1)), float64(v.At(x0+1, y0, z0+1)), tx)
	c11 := lerp(float64(v.At(x0, y0+1, z0+1)), float64(v.At(x0+1, y0+1, z0+1)), tx)

	return lerp(lerp(c00, c10, ty), lerp(c01, c11, ty), tz)
}

// ValueRange returns the minimum and maximum voxel values
func (v *Volume) ValueRange() (int16, int16) {
	if len(v.Data) == 0 {
		return 0, 0
	}
	min, max := v.Data[0], v.Data[0]
	for _, s := range v.Data {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
