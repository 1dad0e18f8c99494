package curve

import (
	"math"
	"testing"

	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/internal/visibility"
	"github.com/openmpr/taviplan/pkg/geometry"
)

func centerlineLandmarks() []landmark.Landmark {
	return []landmark.Landmark{
		{ID: "a", Position: geometry.NewVector3(0, 0, 0)},
		{ID: "b", Position: geometry.NewVector3(10, 0, 0)},
		{ID: "c", Position: geometry.NewVector3(20, 0, 0)},
	}
}

func TestRebuildThroughLandmarks(t *testing.T) {
	b := NewBuilder(config.Default().Curve, "#00a5ff")
	b.Rebuild(centerlineLandmarks())

	pts := b.Points()
	if len(pts) != 51 { // 2 segments * 25 samples + 1
		t.Fatalf("expected 51 samples, got %d", len(pts))
	}
	if !pts[0].ApproxEqual(geometry.NewVector3(0, 0, 0), 1e-9) {
		t.Errorf("curve must start at the first landmark, got %v", pts[0])
	}
	if !pts[len(pts)-1].ApproxEqual(geometry.NewVector3(20, 0, 0), 1e-9) {
		t.Errorf("curve must end at the last landmark, got %v", pts[len(pts)-1])
	}
	if b.Length() <= 0 {
		t.Error("curve length must be non-zero")
	}
	// Collinear controls: every sample stays on the segment
	for i, p := range pts {
		if math.Abs(p.Y) > 1e-9 || math.Abs(p.Z) > 1e-9 {
			t.Fatalf("sample %d left the control line: %v", i, p)
		}
		if p.X < -1e-9 || p.X > 20+1e-9 {
			t.Fatalf("sample %d overshoots the controls: %v", i, p)
		}
	}
}

func TestRebuildTooFewControls(t *testing.T) {
	b := NewBuilder(config.Default().Curve, "#00a5ff")

	b.Rebuild(centerlineLandmarks()[:1])
	if b.Points() != nil {
		t.Error("a single landmark must not produce a curve")
	}
	if b.Length() != 0 {
		t.Error("no curve, no length")
	}
	if b.Segments() != nil {
		t.Error("no curve, no topology")
	}
}

func TestRebuildReplacesCurve(t *testing.T) {
	b := NewBuilder(config.Default().Curve, "#00a5ff")
	b.Rebuild(centerlineLandmarks())

	moved := centerlineLandmarks()
	moved[2].Position = geometry.NewVector3(20, 30, 0)
	b.Rebuild(moved)

	pts := b.Points()
	if !pts[len(pts)-1].ApproxEqual(geometry.NewVector3(20, 30, 0), 1e-9) {
		t.Errorf("rebuild must follow the moved landmark, got %v", pts[len(pts)-1])
	}

	b.Clear()
	if b.Points() != nil {
		t.Error("clear must drop the curve")
	}
}

func TestSegmentsTopology(t *testing.T) {
	b := NewBuilder(config.Default().Curve, "#00a5ff")
	b.Rebuild(centerlineLandmarks())

	segs := b.Segments()
	if len(segs) != len(b.Points())-1 {
		t.Fatalf("expected %d segments, got %d", len(b.Points())-1, len(segs))
	}
	for i, s := range segs {
		if s[0] != i || s[1] != i+1 {
			t.Fatalf("segment %d: expected [%d %d], got %v", i, i, i+1, s)
		}
	}
}

// projView is an axial viewport with a one-to-one canvas mapping
type projView struct {
	cam viewport.Camera
}

func (p *projView) ID() string                                  { return "axial" }
func (p *projView) Camera() viewport.Camera                     { return p.cam }
func (p *projView) SetCamera(c viewport.Camera)                 { p.cam = c }
func (p *projView) CanvasToWorld(x, y float64) geometry.Vector3 { return geometry.NewVector3(x, y, 0) }
func (p *projView) WorldToCanvas(w geometry.Vector3) (float64, float64) {
	return w.X, w.Y
}
func (p *projView) CanvasSize() (float64, float64) { return 400, 400 }
func (p *projView) Render()                        {}

type flatSpacing struct{}

func (flatSpacing) SliceSpacing() [3]float64 { return [3]float64{1, 1, 1} }

func TestProjectSplitsByVisibility(t *testing.T) {
	b := NewBuilder(config.Default().Curve, "#00a5ff")
	eng := visibility.NewEngine(config.Default().Visibility, flatSpacing{})
	vp := &projView{cam: viewport.Camera{
		ViewPlaneNormal: geometry.NewVector3(0, 0, 1),
	}}

	// A curve leaving the slice plane in its middle third. The curve
	// threshold at unit spacing is 1.5 mm, so only the samples next to
	// the on-plane endpoints stay visible.
	b.RebuildControls([]geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 25),
		geometry.NewVector3(20, 0, 0),
	})

	lines := b.Project(vp, eng)
	if len(lines) != 2 {
		t.Fatalf("expected two visible stretches, got %d", len(lines))
	}
	for _, ln := range lines {
		if ln.Color != "#00a5ff" {
			t.Errorf("polyline color: got %q", ln.Color)
		}
		if len(ln.Points) < 2 {
			t.Errorf("visible stretch too short: %d points", len(ln.Points))
		}
	}

	b.Clear()
	if got := b.Project(vp, eng); got != nil {
		t.Errorf("no curve must project to nothing, got %d polylines", len(got))
	}
}
