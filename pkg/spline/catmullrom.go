// Package spline provides Catmull-Rom interpolation through ordered
// 3D control points, used for centerline curve visualization.
package spline

import "github.com/openmpr/taviplan/pkg/geometry"

// DefaultSamplesPerSegment is the reference sampling density for
// interpolated curves.
const DefaultSamplesPerSegment = 25

// catmullRom evaluates the uniform Catmull-Rom basis at t in [0,1] for the
// segment between p1 and p2, with p0 and p3 as the neighboring controls:
//
//	q(t) = 0.5 · ((2·p1) + (-p0+p2)·t + (2p0-5p1+4p2-p3)·t² + (-p0+3p1-3p2+p3)·t³)
func catmullRom(p0, p1, p2, p3 geometry.Vector3, t float64) geometry.Vector3 {
	t2 := t * t
	t3 := t2 * t

	return p1.Mul(2).
		Add(p2.Sub(p0).Mul(t)).
		Add(p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)).
		Add(p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3)).
		Mul(0.5)
}

// Sample interpolates a Catmull-Rom curve through the given control points
// and returns the dense sampled polyline. Each consecutive pair of controls
// becomes one segment evaluated at samplesPerSegment sub-steps; the first
// and last controls are repeated to clamp the curve at its endpoints, so
// the result passes through every control, starting at the first and
// ending at the last.
//
// Fewer than two controls yield nil. samplesPerSegment values below 1 fall
// back to DefaultSamplesPerSegment.
func Sample(controls []geometry.Vector3, samplesPerSegment int) []geometry.Vector3 {
	if len(controls) < 2 {
		return nil
	}
	if samplesPerSegment < 1 {
		samplesPerSegment = DefaultSamplesPerSegment
	}

	clampAt := func(i int) geometry.Vector3 {
		if i < 0 {
			return controls[0]
		}
		if i >= len(controls) {
			return controls[len(controls)-1]
		}
		return controls[i]
	}

	points := make([]geometry.Vector3, 0, (len(controls)-1)*samplesPerSegment+1)
	points = append(points, controls[0])

	for seg := 0; seg < len(controls)-1; seg++ {
		p0 := clampAt(seg - 1)
		p1 := controls[seg]
		p2 := controls[seg+1]
		p3 := clampAt(seg + 2)

		for step := 1; step <= samplesPerSegment; step++ {
			t := float64(step) / float64(samplesPerSegment)
			points = append(points, catmullRom(p0, p1, p2, p3, t))
		}
	}

	return points
}

// Length returns the total polyline length of a sampled curve
func Length(points []geometry.Vector3) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i].Distance(points[i-1])
	}
	return total
}
