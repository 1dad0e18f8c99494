package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestSignedDistanceToPlaneOnPlane(t *testing.T) {
	p := NewVector3(4, -2, 9)
	normals := []Vector3{
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(0, 0, 1),
		NewVector3(1, 1, 1).Normalize(),
	}

	for _, n := range normals {
		if d := SignedDistanceToPlane(p, p, n); d != 0 {
			t.Errorf("point on its own plane should have distance 0, got %v for normal %v", d, n)
		}
	}
}

func TestSignedDistanceToPlaneSign(t *testing.T) {
	origin := NewVector3(0, 0, 0)
	normal := NewVector3(0, 0, 1)

	above := SignedDistanceToPlane(NewVector3(3, 4, 5), origin, normal)
	if math.Abs(above-5.0) > 1e-10 {
		t.Errorf("expected +5, got %v", above)
	}

	below := SignedDistanceToPlane(NewVector3(3, 4, -2), origin, normal)
	if math.Abs(below-(-2.0)) > 1e-10 {
		t.Errorf("expected -2, got %v", below)
	}
}

func TestProjectOntoAxis(t *testing.T) {
	v := NewVector3(3, 4, 5)

	if got := ProjectOntoAxis(v, NewVector3(0, 0, 1)); math.Abs(got-5.0) > 1e-10 {
		t.Errorf("projection onto Z failed: expected 5, got %v", got)
	}
	if got := ProjectOntoAxis(v, NewVector3(1, 0, 0)); math.Abs(got-3.0) > 1e-10 {
		t.Errorf("projection onto X failed: expected 3, got %v", got)
	}
}

func TestDominantAxis(t *testing.T) {
	cases := []struct {
		n    Vector3
		want int
	}{
		{NewVector3(1, 0, 0), 0},
		{NewVector3(-0.9, 0.1, 0.2), 0},
		{NewVector3(0.1, -0.8, 0.3), 1},
		{NewVector3(0.2, 0.3, 0.9), 2},
	}

	for _, c := range cases {
		if got := DominantAxis(c.n); got != c.want {
			t.Errorf("DominantAxis(%v) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestPlaneFromPoints(t *testing.T) {
	n, err := PlaneFromPoints(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := NewVector3(0, 0, 1)
	if !n.ApproxEqual(expected, 1e-10) {
		t.Errorf("expected normal %v, got %v", expected, n)
	}
}

func TestPlaneFromPointsCollinear(t *testing.T) {
	_, err := PlaneFromPoints(NewVector3(0, 0, 0), NewVector3(1, 1, 1), NewVector3(2, 2, 2))
	if !errors.Is(err, ErrDegenerateAxis) {
		t.Fatalf("expected ErrDegenerateAxis for collinear points, got %v", err)
	}
}
