// Package overlay computes the screen-space primitives of the crosshair
// overlay: arm lines, rotation markers, landmark dots, curve polylines
// and text labels. Computation is separated from drawing so hosts can
// render the same primitives with any backend (raylib immediate mode,
// fyne canvas objects, or the raster Backend in this package).
package overlay

import "math"

// Point is a canvas-pixel position
type Point struct {
	X, Y float64
}

// Line is a straight overlay segment
type Line struct {
	From, To Point
}

// Circle is a filled or stroked overlay circle
type Circle struct {
	Center Point
	Radius float64
}

// Dot is a landmark marker with its display color token
type Dot struct {
	Circle
	Color  string
	Filled bool
}

// Polyline is a connected run of overlay points (one visible stretch of
// the connection curve)
type Polyline struct {
	Points []Point
	Color  string
}

// Label is a text annotation anchored at a canvas position
type Label struct {
	Pos  Point
	Text string
}

// Crosshair is the computed fixed-position crosshair for one viewport:
// four arms from the center, rotation markers at the arm ends, and the
// center drag handle.
type Crosshair struct {
	Center       Point
	CenterRadius float64
	Arms         [4]Line
	Markers      [4]Circle
}

// ComputeCrosshair lays out the crosshair at the given canvas center,
// rotated by angle radians. armLength is the arm half-extent in pixels;
// markerRadius and centerRadius size the handles.
func ComputeCrosshair(center Point, angle, armLength, markerRadius, centerRadius float64) Crosshair {
	ch := Crosshair{
		Center:       center,
		CenterRadius: centerRadius,
	}
	for i := 0; i < 4; i++ {
		a := angle + float64(i)*math.Pi/2
		end := Point{
			X: center.X + armLength*math.Cos(a),
			Y: center.Y + armLength*math.Sin(a),
		}
		ch.Arms[i] = Line{From: center, To: end}
		ch.Markers[i] = Circle{Center: end, Radius: markerRadius}
	}
	return ch
}

// HitsCenter reports whether a canvas position falls on the center handle
func (c Crosshair) HitsCenter(p Point) bool {
	return dist(p, c.Center) <= c.CenterRadius
}

// HitMarker returns the index of the rotation marker under a canvas
// position, or -1 when none is hit.
func (c Crosshair) HitMarker(p Point) int {
	for i, m := range c.Markers {
		if dist(p, m.Center) <= m.Radius {
			return i
		}
	}
	return -1
}

// Frame is everything one viewport's overlay shows this redraw
type Frame struct {
	Crosshair *Crosshair
	// ShowMarkers is set only on the short-axis viewport; the other
	// views draw arms without rotation handles.
	ShowMarkers bool
	Dots        []Dot
	Polylines   []Polyline
	Labels      []Label
}

// Backend renders a computed overlay frame
type Backend interface {
	Draw(frame Frame) error
}

// SplitPolyline breaks a projected curve into visible stretches using
// the per-point visibility mask, dropping runs shorter than two points.
func SplitPolyline(points []Point, visible []bool, color string) []Polyline {
	var out []Polyline
	var run []Point
	flush := func() {
		if len(run) >= 2 {
			out = append(out, Polyline{Points: run, Color: color})
		}
		run = nil
	}
	for i, p := range points {
		if i < len(visible) && visible[i] {
			run = append(run, p)
		} else {
			flush()
		}
	}
	flush()
	return out
}

func dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
