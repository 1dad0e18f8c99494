package viewer

import (
	"math"
	"testing"

	"github.com/openmpr/taviplan/pkg/geometry"
)

func TestCanvasWorldRoundTrip(t *testing.T) {
	cam := NewAxialCamera(geometry.NewVector3(10, 20, 30), 100, 100)

	world := cam.CanvasToWorld(130, 75, 400, 300)
	x, y := cam.WorldToCanvas(world, 400, 300)
	if math.Abs(x-130) > 1e-9 || math.Abs(y-75) > 1e-9 {
		t.Errorf("round trip drifted: got (%v, %v)", x, y)
	}
}

func TestCanvasCenterMapsToFocalPoint(t *testing.T) {
	center := geometry.NewVector3(5, -3, 12)
	cam := NewSagittalCamera(center, 80, 80)

	world := cam.CanvasToWorld(200, 150, 400, 300)
	if world.Distance(center) > 1e-9 {
		t.Errorf("canvas center should map to the focal point, got %v", world)
	}
}

func TestCanvasToWorldStaysOnPlane(t *testing.T) {
	cam := NewCoronalCamera(geometry.NewVector3(0, 0, 0), 100, 100)

	for _, pt := range [][2]float64{{0, 0}, {100, 250}, {399, 299}} {
		world := cam.CanvasToWorld(pt[0], pt[1], 400, 300)
		d := geometry.SignedDistanceToPlane(world, cam.FocalPoint, cam.ViewPlaneNormal)
		if math.Abs(d) > 1e-9 {
			t.Errorf("canvas (%v, %v) left the slice plane by %v mm", pt[0], pt[1], d)
		}
	}
}

func TestCanvasAxesOrientation(t *testing.T) {
	cam := NewAxialCamera(geometry.NewVector3(0, 0, 0), 100, 100)

	// Screen-right is +X, screen-down is -Y for the axial view
	right := cam.CanvasToWorld(250, 150, 400, 300)
	if right.X <= 0 || math.Abs(right.Y) > 1e-9 {
		t.Errorf("screen-right should be +X, got %v", right)
	}
	down := cam.CanvasToWorld(200, 250, 400, 300)
	if down.Y >= 0 || math.Abs(down.X) > 1e-9 {
		t.Errorf("screen-down should be -Y, got %v", down)
	}
}

func TestScrollMovesAlongNormal(t *testing.T) {
	cam := NewAxialCamera(geometry.NewVector3(0, 0, 0), 100, 100)
	before := cam.FocalPoint

	cam.Scroll(2.5)
	moved := cam.FocalPoint.Sub(before)
	if !moved.ApproxEqual(geometry.NewVector3(0, 0, 2.5), 1e-9) {
		t.Errorf("scroll should move along the plane normal, got %v", moved)
	}
	// Camera standoff preserved
	if math.Abs(cam.Position.Distance(cam.FocalPoint)-cameraStandoff) > 1e-9 {
		t.Error("scroll must keep the camera standoff")
	}
}

func TestZoomClamps(t *testing.T) {
	cam := NewAxialCamera(geometry.NewVector3(0, 0, 0), 100, 100)

	cam.Zoom(1e-9)
	if cam.ParallelScale < 1 {
		t.Errorf("zoom-in must clamp, got %v", cam.ParallelScale)
	}
	cam.Zoom(1e9)
	if cam.ParallelScale > 2000 {
		t.Errorf("zoom-out must clamp, got %v", cam.ParallelScale)
	}
}

func TestWindowLevel(t *testing.T) {
	cases := []struct {
		sample, center, width float64
		want                  uint8
	}{
		{0, 0, 400, 127},
		{-300, 0, 400, 0},
		{300, 0, 400, 255},
		{100, 0, 400, 191},
		{5, 5, 0.5, 127}, // width clamped to 1
	}

	for _, c := range cases {
		if got := WindowLevel(c.sample, c.center, c.width); got != c.want {
			t.Errorf("WindowLevel(%v, %v, %v) = %d, want %d",
				c.sample, c.center, c.width, got, c.want)
		}
	}
}

// gradientSampler reads the world X coordinate as intensity
type gradientSampler struct{}

func (gradientSampler) SampleWorld(p geometry.Vector3) float64 { return p.X }

func TestRenderSliceGradient(t *testing.T) {
	cam := NewAxialCamera(geometry.NewVector3(0, 0, 0), 100, 100)
	img := RenderSlice(gradientSampler{}, cam, 100, 100, 0, 200)

	left := img.RGBAAt(5, 50)
	right := img.RGBAAt(95, 50)
	if left.R >= right.R {
		t.Errorf("intensity should grow with X: left %d, right %d", left.R, right.R)
	}
	if left.R != left.G || left.G != left.B || left.A != 255 {
		t.Errorf("slice pixels must be opaque gray, got %+v", left)
	}
}

func TestRenderSliceEmpty(t *testing.T) {
	cam := NewAxialCamera(geometry.NewVector3(0, 0, 0), 100, 100)
	img := RenderSlice(gradientSampler{}, cam, 0, 0, 0, 200)
	if img == nil {
		t.Fatal("degenerate size must still return an image")
	}
}
