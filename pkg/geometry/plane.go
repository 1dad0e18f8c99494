package geometry

import "math"

// ProjectOntoAxis returns the scalar projection of v onto the given axis.
// The axis is assumed to be unit length; non-unit axes scale the result.
func ProjectOntoAxis(v, axis Vector3) float64 {
	return v.Dot(axis)
}

// SignedDistanceToPlane returns the signed distance from point to the plane
// through origin with the given unit normal. Positive values lie on the
// side the normal points toward.
func SignedDistanceToPlane(point, origin, normal Vector3) float64 {
	return point.Sub(origin).Dot(normal)
}

// DominantAxis returns the index (0=X, 1=Y, 2=Z) of the component of n
// with the largest absolute value. Used to pick the volume spacing
// component best aligned with a slice-plane normal.
func DominantAxis(n Vector3) int {
	ax := math.Abs(n.X)
	ay := math.Abs(n.Y)
	az := math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= az:
		return 1
	default:
		return 2
	}
}

// PlaneFromPoints computes the unit normal of the plane through three
// points, oriented by the right-hand rule over (b-a, c-a). Collinear or
// coincident points yield ErrDegenerateAxis.
func PlaneFromPoints(a, b, c Vector3) (Vector3, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(n) < degenerateEps {
		return Vector3{}, ErrDegenerateAxis
	}
	return n.Normalize(), nil
}
