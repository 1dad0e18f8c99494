package geometry

import (
	"errors"
	"math"
)

// ErrDegenerateAxis is returned when a rotation or projection axis has
// (near) zero length and no direction can be derived from it.
var ErrDegenerateAxis = errors.New("geometry: degenerate zero-length axis")

// degenerateEps is the squared-length floor below which an axis is
// considered directionless.
const degenerateEps = 1e-12

// RotateAroundAxis rotates v around the given axis by angle radians using
// Rodrigues' rotation formula:
//
//	v' = v·cosθ + (k×v)·sinθ + k·(k·v)·(1-cosθ)
//
// where k is the unit axis. The axis is normalized internally, so callers
// may pass non-unit axes. A zero-length axis yields ErrDegenerateAxis and
// the input vector unchanged.
func RotateAroundAxis(v, axis Vector3, angle float64) (Vector3, error) {
	lenSq := axis.Dot(axis)
	if lenSq < degenerateEps {
		return v, ErrDegenerateAxis
	}
	k := axis.Mul(1.0 / math.Sqrt(lenSq))

	cos := math.Cos(angle)
	sin := math.Sin(angle)

	rotated := v.Mul(cos).
		Add(k.Cross(v).Mul(sin)).
		Add(k.Mul(k.Dot(v) * (1 - cos)))
	return rotated, nil
}
