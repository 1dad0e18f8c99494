package viewer

import (
	"math"

	"github.com/openmpr/taviplan/pkg/geometry"
)

// SliceCamera is the orthographic camera of one MPR view. The slice
// plane passes through FocalPoint with normal ViewPlaneNormal;
// ParallelScale is half the canvas height in millimeters.
type SliceCamera struct {
	Position        geometry.Vector3
	FocalPoint      geometry.Vector3
	ViewPlaneNormal geometry.Vector3
	ViewUp          geometry.Vector3
	ParallelScale   float64
}

const cameraStandoff = 400.0 // mm from focal point, cosmetic for orthographic views

// NewAxialCamera creates a camera looking down the Z axis at the given
// center, sized so the larger of the two in-plane extents fits.
func NewAxialCamera(center geometry.Vector3, extentX, extentY float64) *SliceCamera {
	return newCamera(center,
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 1, 0),
		math.Max(extentX, extentY))
}

// NewSagittalCamera creates a camera looking down the X axis
func NewSagittalCamera(center geometry.Vector3, extentY, extentZ float64) *SliceCamera {
	return newCamera(center,
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 0, 1),
		math.Max(extentY, extentZ))
}

// NewCoronalCamera creates a camera looking down the Y axis
func NewCoronalCamera(center geometry.Vector3, extentX, extentZ float64) *SliceCamera {
	return newCamera(center,
		geometry.NewVector3(0, -1, 0),
		geometry.NewVector3(0, 0, 1),
		math.Max(extentX, extentZ))
}

func newCamera(center, normal, up geometry.Vector3, extent float64) *SliceCamera {
	return &SliceCamera{
		Position:        center.Add(normal.Mul(cameraStandoff)),
		FocalPoint:      center,
		ViewPlaneNormal: normal,
		ViewUp:          up,
		ParallelScale:   extent * 0.6,
	}
}

// Right returns the in-plane screen-right direction
func (c *SliceCamera) Right() geometry.Vector3 {
	return c.ViewUp.Cross(c.ViewPlaneNormal)
}

// MMPerPixel returns the world size of one canvas pixel for the given
// canvas height.
func (c *SliceCamera) MMPerPixel(canvasHeight float64) float64 {
	if canvasHeight <= 0 {
		return 0
	}
	return 2 * c.ParallelScale / canvasHeight
}

// CanvasToWorld maps a canvas pixel position onto the current slice
// plane. Canvas y grows downward.
func (c *SliceCamera) CanvasToWorld(x, y, width, height float64) geometry.Vector3 {
	mm := c.MMPerPixel(height)
	dx := (x - width/2) * mm
	dy := (y - height/2) * mm
	return c.FocalPoint.
		Add(c.Right().Mul(dx)).
		Add(c.ViewUp.Mul(-dy))
}

// WorldToCanvas projects a world position to canvas pixels, dropping
// the out-of-plane component.
func (c *SliceCamera) WorldToCanvas(p geometry.Vector3, width, height float64) (float64, float64) {
	mm := c.MMPerPixel(height)
	if mm == 0 {
		return width / 2, height / 2
	}
	d := p.Sub(c.FocalPoint)
	return width/2 + d.Dot(c.Right())/mm, height/2 - d.Dot(c.ViewUp)/mm
}

// Scroll moves the slice plane along its normal by the given distance
// in millimeters, keeping the camera standoff.
func (c *SliceCamera) Scroll(deltaMM float64) {
	offset := c.ViewPlaneNormal.Mul(deltaMM)
	c.FocalPoint = c.FocalPoint.Add(offset)
	c.Position = c.Position.Add(offset)
}

// Zoom scales the visible extent; factor > 1 zooms out
func (c *SliceCamera) Zoom(factor float64) {
	s := c.ParallelScale * factor
	if s < 1 {
		s = 1
	}
	if s > 2000 {
		s = 2000
	}
	c.ParallelScale = s
}
