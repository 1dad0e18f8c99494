package overlay

import (
	"math"
	"testing"
)

func TestComputeCrosshairUnrotated(t *testing.T) {
	ch := ComputeCrosshair(Point{X: 100, Y: 100}, 0, 50, 15, 10)

	// First arm points along +X at angle 0
	end := ch.Arms[0].To
	if math.Abs(end.X-150) > 1e-9 || math.Abs(end.Y-100) > 1e-9 {
		t.Errorf("arm 0 end: expected (150,100), got (%v,%v)", end.X, end.Y)
	}

	// Arms are perpendicular in sequence
	for i := 0; i < 4; i++ {
		e := ch.Arms[i].To
		d := math.Hypot(e.X-100, e.Y-100)
		if math.Abs(d-50) > 1e-9 {
			t.Errorf("arm %d end should be 50px from center, got %v", i, d)
		}
		if ch.Markers[i].Center != e {
			t.Errorf("marker %d should sit at arm end", i)
		}
	}
}

func TestComputeCrosshairRotated(t *testing.T) {
	ch := ComputeCrosshair(Point{}, math.Pi/2, 50, 15, 10)

	// At 90° the first arm points along +Y
	end := ch.Arms[0].To
	if math.Abs(end.X) > 1e-9 || math.Abs(end.Y-50) > 1e-9 {
		t.Errorf("rotated arm 0 end: expected (0,50), got (%v,%v)", end.X, end.Y)
	}
}

func TestHitsCenter(t *testing.T) {
	ch := ComputeCrosshair(Point{X: 100, Y: 100}, 0, 50, 15, 10)

	if !ch.HitsCenter(Point{X: 105, Y: 100}) {
		t.Error("5px off center must hit the 10px handle")
	}
	if !ch.HitsCenter(Point{X: 100, Y: 110}) {
		t.Error("exactly on the radius must hit (inclusive boundary)")
	}
	if ch.HitsCenter(Point{X: 100, Y: 111}) {
		t.Error("outside the radius must miss")
	}
}

func TestHitMarker(t *testing.T) {
	ch := ComputeCrosshair(Point{X: 100, Y: 100}, 0, 50, 15, 10)

	if got := ch.HitMarker(Point{X: 150, Y: 100}); got != 0 {
		t.Errorf("expected marker 0, got %d", got)
	}
	if got := ch.HitMarker(Point{X: 100, Y: 150}); got != 1 {
		t.Errorf("expected marker 1, got %d", got)
	}
	if got := ch.HitMarker(Point{X: 100, Y: 100}); got != -1 {
		t.Errorf("center must not hit a marker, got %d", got)
	}
}

func TestSplitPolyline(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}}
	visible := []bool{true, true, false, true, true, true}

	runs := SplitPolyline(points, visible, "#00d0ff")
	if len(runs) != 2 {
		t.Fatalf("expected 2 visible runs, got %d", len(runs))
	}
	if len(runs[0].Points) != 2 || len(runs[1].Points) != 3 {
		t.Errorf("run lengths: got %d and %d", len(runs[0].Points), len(runs[1].Points))
	}
}

func TestSplitPolylineDropsSingletons(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {2, 0}}
	visible := []bool{false, true, false}

	if runs := SplitPolyline(points, visible, "#ffffff"); len(runs) != 0 {
		t.Errorf("a single visible point cannot form a line, got %d runs", len(runs))
	}
}

func TestRasterBackendDraw(t *testing.T) {
	b := NewRasterBackend(64, 64)
	ch := ComputeCrosshair(Point{X: 32, Y: 32}, 0.3, 20, 5, 3)

	frame := Frame{
		Crosshair:   &ch,
		ShowMarkers: true,
		Dots:        []Dot{{Circle: Circle{Center: Point{X: 10, Y: 10}, Radius: 4}, Color: "#ff4040", Filled: true}},
		Polylines:   []Polyline{{Points: []Point{{5, 50}, {20, 55}, {40, 52}}, Color: "#00d0ff"}},
		Labels:      []Label{{Pos: Point{X: 4, Y: 60}, Text: "+4.2 mm"}},
	}

	if err := b.Draw(frame); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if b.Image().Bounds().Dx() != 64 {
		t.Errorf("unexpected image size %v", b.Image().Bounds())
	}
}

func TestRasterBackendRejectsBadColor(t *testing.T) {
	b := NewRasterBackend(8, 8)
	frame := Frame{
		Dots: []Dot{{Circle: Circle{Center: Point{X: 1, Y: 1}, Radius: 1}, Color: "chartreuse"}},
	}

	if err := b.Draw(frame); err == nil {
		t.Fatal("expected error for unparseable color token")
	}
}
