package volume

import (
	"math"

	"github.com/openmpr/taviplan/pkg/geometry"
)

// Approximate Hounsfield values used by the synthetic phantom
const (
	AirValue    = -1000
	TissueValue = 40
	WallValue   = 150
	BloodValue  = 350 // Contrast-enhanced lumen
)

// Phantom builds a synthetic contrast-enhanced aortic root: a gently
// curved tube along Z with a sinus bulge near mid-height, embedded in
// soft tissue. It is good enough to scroll, window and place landmarks
// on without any DICOM input.
func Phantom(dims [3]int, spacing [3]float64) *Volume {
	v, err := New(dims, spacing, geometry.Vector3{})
	if err != nil {
		// Static dims from callers; only reachable with a programming error
		panic(err)
	}

	extent := v.Extent()
	cx, cy := extent.X/2, extent.Y/2

	for z := 0; z < dims[2]; z++ {
		wz := float64(z) * spacing[2]
		h := wz / extent.Z // 0 at bottom, 1 at top

		// Centerline bows gently in X
		centerX := cx + 8*math.Sin(h*math.Pi)
		centerY := cy

		// Lumen radius: 10 mm shaft with a sinus bulge around h≈0.45
		lumenR := 10.0 + 5.0*math.Exp(-math.Pow((h-0.45)/0.08, 2))

		for y := 0; y < dims[1]; y++ {
			wy := float64(y) * spacing[1]
			for x := 0; x < dims[0]; x++ {
				wx := float64(x) * spacing[0]

				dx := wx - centerX
				dy := wy - centerY
				r := math.Sqrt(dx*dx + dy*dy)

				var value int16
				switch {
				case r <= lumenR:
					value = BloodValue
				case r <= lumenR+2.5:
					value = WallValue
				default:
					value = TissueValue
				}
				v.Set(x, y, z, value)
			}
		}
	}

	return v
}

// DefaultPhantom returns the phantom at the dimensions the demo hosts use
func DefaultPhantom() *Volume {
	return Phantom([3]int{128, 128, 96}, [3]float64{0.7, 0.7, 1.0})
}
