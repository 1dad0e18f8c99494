// Package analysis derives the annular plane from placed anatomical
// landmarks. It stops at the geometric primitives the placement tools
// need; clinical sizing arithmetic is left to the consuming host.
package analysis

import (
	"fmt"

	"github.com/openmpr/taviplan/pkg/geometry"
)

// Annulus describes the annular plane defined by the three cusp nadirs
type Annulus struct {
	Center   geometry.Vector3 // Center of the circle through the nadirs
	Normal   geometry.Vector3 // Unit normal of the annular plane
	Radius   float64          // Radius of the circle through the nadirs
	Diameter float64          // Convenience: 2 * Radius
}

// AnnulusFromCusps computes the annular plane through the three cusp
// nadir points. The normal is oriented by the insertion order of the
// cusps (right-hand rule); callers that need a specific up direction
// should flip it against their centerline. Collinear nadirs return the
// underlying geometry error.
func AnnulusFromCusps(left, right, nonCoronary geometry.Vector3) (*Annulus, error) {
	fit, err := geometry.CircumscribedCircle(left, right, nonCoronary)
	if err != nil {
		return nil, fmt.Errorf("annulus plane from cusps: %w", err)
	}

	return &Annulus{
		Center:   fit.Center,
		Normal:   fit.Normal,
		Radius:   fit.Radius,
		Diameter: 2 * fit.Radius,
	}, nil
}

// OrientToward flips the annulus normal, if needed, so it points into the
// same half-space as the given reference direction (typically the
// centerline direction toward the aorta).
func (a *Annulus) OrientToward(dir geometry.Vector3) {
	if a.Normal.Dot(dir) < 0 {
		a.Normal = a.Normal.Neg()
	}
}

// FormatSignedDistance renders a signed millimeter distance for on-screen
// display: one decimal place with an explicit sign, e.g. "+4.2 mm".
func FormatSignedDistance(mm float64) string {
	return fmt.Sprintf("%+.1f mm", mm)
}

// FormatVector formats a 3D point for log and info output
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
