package viewer

import (
	"image"
	"image/color"

	"github.com/openmpr/taviplan/pkg/geometry"
)

// Sampler supplies scalar intensities at world positions. Positions
// outside the scanned region return the sampler's background value.
type Sampler interface {
	SampleWorld(p geometry.Vector3) float64
}

// WindowLevel maps an intensity into an 8-bit display value using the
// radiology window convention: values at or below center-width/2 map
// to 0, at or above center+width/2 to 255.
func WindowLevel(sample, center, width float64) uint8 {
	if width < 1 {
		width = 1
	}
	lo := center - width/2
	t := (sample - lo) / width
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 255
	}
	return uint8(t * 255)
}

// RenderSlice resamples the volume over the camera's slice plane into a
// grayscale RGBA image of the given pixel size.
func RenderSlice(s Sampler, cam *SliceCamera, width, height int, windowCenter, windowWidth float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	mm := cam.MMPerPixel(float64(height))
	right := cam.Right()
	origin := cam.FocalPoint.
		Add(right.Mul(-float64(width) / 2 * mm)).
		Add(cam.ViewUp.Mul(float64(height) / 2 * mm))

	// Step one pixel at a time along the plane axes
	stepX := right.Mul(mm)
	stepY := cam.ViewUp.Mul(-mm)

	for y := 0; y < height; y++ {
		row := origin.Add(stepY.Mul(float64(y)))
		for x := 0; x < width; x++ {
			p := row.Add(stepX.Mul(float64(x)))
			g := WindowLevel(s.SampleWorld(p), windowCenter, windowWidth)
			img.SetRGBA(x, y, color.RGBA{g, g, g, 255})
		}
	}
	return img
}
