package geometry

import "math"

// CircleFit represents a circle in 3D space
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Unit normal of the plane containing the circle
}

// CircumscribedCircle computes the circle through three points in 3D.
//
// The circumcenter is found directly from the triangle geometry:
//
//	n = (b-a) × (c-a)
//	center = a + (|c-a|²·(n × (b-a)) + |b-a|²·((c-a) × n)) / (2|n|²)
//
// Collinear or coincident points yield ErrDegenerateAxis.
func CircumscribedCircle(a, b, c Vector3) (*CircleFit, error) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	n := ab.Cross(ac)

	nLenSq := n.Dot(n)
	if nLenSq < degenerateEps {
		return nil, ErrDegenerateAxis
	}

	offset := n.Cross(ab).Mul(ac.Dot(ac)).
		Add(ac.Cross(n).Mul(ab.Dot(ab))).
		Mul(1.0 / (2.0 * nLenSq))
	center := a.Add(offset)

	return &CircleFit{
		Center: center,
		Radius: center.Distance(a),
		Normal: n.Mul(1.0 / math.Sqrt(nLenSq)),
	}, nil
}
