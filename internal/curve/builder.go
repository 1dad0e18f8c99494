// Package curve derives the smooth connection curve through an ordered
// landmark sequence (the aortic centerline). The curve is a pure
// function of the landmark positions and is rebuilt in full whenever
// any of them changes.
package curve

import (
	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/internal/overlay"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/internal/visibility"
	"github.com/openmpr/taviplan/pkg/geometry"
	"github.com/openmpr/taviplan/pkg/spline"
)

// Builder holds the last rebuilt curve. Owned by the UI goroutine like
// the rest of the interaction state.
type Builder struct {
	cfg    config.Curve
	color  string
	points []geometry.Vector3
}

// NewBuilder creates a builder; color is the rendering color for the
// projected polylines ("#rrggbb").
func NewBuilder(cfg config.Curve, color string) *Builder {
	return &Builder{cfg: cfg, color: color}
}

// SetConfig swaps the sampling tuning; callers rebuild afterwards to
// apply it.
func (b *Builder) SetConfig(cfg config.Curve) {
	b.cfg = cfg
}

// Rebuild regenerates the curve through the landmarks in their stored
// order. Fewer than two landmarks clears the curve.
func (b *Builder) Rebuild(landmarks []landmark.Landmark) {
	controls := make([]geometry.Vector3, len(landmarks))
	for i, lm := range landmarks {
		controls[i] = lm.Position
	}
	b.RebuildControls(controls)
}

// RebuildControls regenerates the curve through raw control positions
func (b *Builder) RebuildControls(controls []geometry.Vector3) {
	b.points = spline.Sample(controls, b.cfg.SamplesPerSegment)
}

// Clear drops the curve
func (b *Builder) Clear() {
	b.points = nil
}

// Points returns the sampled curve, nil while no curve exists. The
// slice is owned by the builder; callers must not mutate it.
func (b *Builder) Points() []geometry.Vector3 {
	return b.points
}

// Length returns the polyline length of the sampled curve in mm
func (b *Builder) Length() float64 {
	return spline.Length(b.points)
}

// Segments returns the line topology as index pairs into Points
func (b *Builder) Segments() [][2]int {
	if len(b.points) < 2 {
		return nil
	}
	segs := make([][2]int, len(b.points)-1)
	for i := range segs {
		segs[i] = [2]int{i, i + 1}
	}
	return segs
}

// Project maps the curve onto one viewport's canvas, split into the
// visible stretches of the current slice. Curve samples use the tight
// curve threshold so the result reads as a slice intersection.
func (b *Builder) Project(vp viewport.Viewport, eng *visibility.Engine) []overlay.Polyline {
	if len(b.points) < 2 {
		return nil
	}
	mask := eng.CurveMask(b.points, vp)
	canvas := make([]overlay.Point, len(b.points))
	for i, p := range b.points {
		x, y := vp.WorldToCanvas(p)
		canvas[i] = overlay.Point{X: x, Y: y}
	}
	return overlay.SplitPolyline(canvas, mask, b.color)
}
