package analysis

import (
	"math"
	"testing"

	"github.com/openmpr/taviplan/pkg/geometry"
)

func TestAnnulusFromCusps(t *testing.T) {
	// Three nadirs on a circle of radius 12 in the z=40 plane
	r := 12.0
	angles := []float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3}
	var p [3]geometry.Vector3
	for i, a := range angles {
		p[i] = geometry.NewVector3(r*math.Cos(a), r*math.Sin(a), 40)
	}

	annulus, err := AnnulusFromCusps(p[0], p[1], p[2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !annulus.Center.ApproxEqual(geometry.NewVector3(0, 0, 40), 1e-9) {
		t.Errorf("center: expected (0,0,40), got %v", annulus.Center)
	}
	if math.Abs(annulus.Radius-r) > 1e-9 {
		t.Errorf("radius: expected %v, got %v", r, annulus.Radius)
	}
	if math.Abs(annulus.Diameter-2*r) > 1e-9 {
		t.Errorf("diameter: expected %v, got %v", 2*r, annulus.Diameter)
	}
	if math.Abs(math.Abs(annulus.Normal.Z)-1) > 1e-9 {
		t.Errorf("normal should be ±Z, got %v", annulus.Normal)
	}
}

func TestAnnulusFromCuspsCollinear(t *testing.T) {
	_, err := AnnulusFromCusps(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(5, 0, 0),
		geometry.NewVector3(10, 0, 0),
	)
	if err == nil {
		t.Fatal("expected error for collinear cusps")
	}
}

func TestOrientToward(t *testing.T) {
	a := &Annulus{Normal: geometry.NewVector3(0, 0, -1)}
	a.OrientToward(geometry.NewVector3(0, 0.2, 1))

	if a.Normal.Z <= 0 {
		t.Errorf("normal should have been flipped toward +Z, got %v", a.Normal)
	}

	// Already aligned: no flip
	a.OrientToward(geometry.NewVector3(0, 0, 1))
	if a.Normal.Z <= 0 {
		t.Errorf("aligned normal must not be flipped, got %v", a.Normal)
	}
}

func TestFormatSignedDistance(t *testing.T) {
	cases := []struct {
		mm   float64
		want string
	}{
		{4.25, "+4.2 mm"},
		{-3.14, "-3.1 mm"},
		{0, "+0.0 mm"},
	}

	for _, c := range cases {
		if got := FormatSignedDistance(c.mm); got != c.want {
			t.Errorf("FormatSignedDistance(%v) = %q, want %q", c.mm, got, c.want)
		}
	}
}
