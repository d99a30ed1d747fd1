package geometry

import (
	"math"
	"testing"

	"github.com/jbeda/geom"
)

func TestLineEndpoints(t *testing.T) {
	l := Line{A: geom.Coord{X: 1, Y: 2}, B: geom.Coord{X: 4, Y: 6}}

	if got := l.Start(); got != l.A {
		t.Errorf("Start() = %v, want %v", got, l.A)
	}
	if got := l.End(); got != l.B {
		t.Errorf("End() = %v, want %v", got, l.B)
	}
	if got := l.Length(); got != 5 {
		t.Errorf("Length() = %f, want 5", got)
	}
}

func TestLineReversed(t *testing.T) {
	l := Line{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: 3, Y: 0}, Attributes: Attributes{Layer: "CUT"}}
	r := l.Reversed()

	if r.Start() != l.B || r.End() != l.A {
		t.Errorf("Reversed() endpoints = %v -> %v, want %v -> %v", r.Start(), r.End(), l.B, l.A)
	}
	if r.Attrs().Layer != "CUT" {
		t.Errorf("Reversed() dropped attributes: %+v", r.Attrs())
	}
	// Original must be untouched.
	if l.Start() != (geom.Coord{X: 0, Y: 0}) {
		t.Errorf("Reversed() mutated the original line: %v", l)
	}
}

func TestLineBounds(t *testing.T) {
	l := Line{A: geom.Coord{X: 5, Y: 1}, B: geom.Coord{X: 2, Y: 7}}
	b := l.Bounds()

	want := geom.Rect{Min: geom.Coord{X: 2, Y: 1}, Max: geom.Coord{X: 5, Y: 7}}
	if b != want {
		t.Errorf("Bounds() = %v, want %v", b, want)
	}
}

func TestCircleSyntheticPoint(t *testing.T) {
	c := Circle{Center: geom.Coord{X: 3, Y: -2}, Radius: 1.5}

	if c.Start() != c.Center || c.End() != c.Center {
		t.Errorf("circle endpoints = %v/%v, want center %v", c.Start(), c.End(), c.Center)
	}
}

func TestCircleClosestPoint(t *testing.T) {
	c := Circle{Center: geom.Coord{X: 0, Y: 0}, Radius: 2}

	got := c.ClosestPoint(geom.Coord{X: 10, Y: 0})
	want := geom.Coord{X: 2, Y: 0}
	if !PointsCoincide(got, want, 1e-9) {
		t.Errorf("ClosestPoint(10,0) = %v, want %v", got, want)
	}

	// Query point inside the circle still projects to the boundary.
	got = c.ClosestPoint(geom.Coord{X: 0, Y: 0.5})
	want = geom.Coord{X: 0, Y: 2}
	if !PointsCoincide(got, want, 1e-9) {
		t.Errorf("ClosestPoint(0,0.5) = %v, want %v", got, want)
	}

	// Degenerate query at the exact center falls back to angle 0.
	got = c.ClosestPoint(c.Center)
	want = geom.Coord{X: 2, Y: 0}
	if !PointsCoincide(got, want, 1e-9) {
		t.Errorf("ClosestPoint(center) = %v, want %v", got, want)
	}
}

func TestPointsCoincide(t *testing.T) {
	a := geom.Coord{X: 1, Y: 1}

	cases := []struct {
		b    geom.Coord
		tol  float64
		want bool
	}{
		{geom.Coord{X: 1, Y: 1}, 1e-5, true},
		{geom.Coord{X: 1 + 0.5e-5, Y: 1}, 1e-5, true},
		{geom.Coord{X: 1 + 3e-5, Y: 1}, 1e-5, false},
		{geom.Coord{X: 1, Y: 1 - 3e-5}, 1e-5, false},
		{geom.Coord{X: 1.5, Y: 1}, 1, true},
	}
	for _, c := range cases {
		if got := PointsCoincide(a, c.b, c.tol); got != c.want {
			t.Errorf("PointsCoincide(%v, %v, %g) = %v, want %v", a, c.b, c.tol, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tol := 1e-5

	if err := Validate(Line{A: geom.Coord{}, B: geom.Coord{X: 1}}, tol); err != nil {
		t.Errorf("valid line rejected: %v", err)
	}
	if err := Validate(Line{A: geom.Coord{X: 2, Y: 2}, B: geom.Coord{X: 2, Y: 2}}, tol); err == nil {
		t.Error("zero-length line accepted")
	}
	if err := Validate(Circle{Center: geom.Coord{}, Radius: 0}, tol); err == nil {
		t.Error("zero-radius circle accepted")
	}
	if err := Validate(Arc{Center: geom.Coord{}, Radius: -1}, tol); err == nil {
		t.Error("negative-radius arc accepted")
	}
	if err := Validate(Arc{Center: geom.Coord{}, Radius: 1, StartAngle: 90, EndAngle: 90}, tol); err == nil {
		t.Error("full-sweep arc accepted; must be a CIRCLE entity")
	}
	if err := Validate(Arc{Center: geom.Coord{}, Radius: 1, StartAngle: 0, EndAngle: 90}, tol); err != nil {
		t.Errorf("valid arc rejected: %v", err)
	}

	err := Validate(Line{A: geom.Coord{X: 1, Y: 1}, B: geom.Coord{X: 1, Y: 1}, Attributes: Attributes{Handle: "2F"}}, tol)
	var de DegenerateEntityError
	if !errorAs(err, &de) {
		t.Fatalf("error type = %T, want DegenerateEntityError", err)
	}
	if de.Handle != "2F" {
		t.Errorf("error handle = %q, want 2F", de.Handle)
	}
}

// errorAs avoids importing errors in every assertion above.
func errorAs(err error, target *DegenerateEntityError) bool {
	de, ok := err.(DegenerateEntityError)
	if ok {
		*target = de
	}
	return ok
}

func TestCircleSamplePoints(t *testing.T) {
	c := Circle{Center: geom.Coord{X: 1, Y: 1}, Radius: 3}
	pts := c.SamplePoints(10)

	if len(pts) < 36 {
		t.Fatalf("sample count = %d, want >= 36 at 10 degree step", len(pts))
	}
	for i, p := range pts {
		d := p.DistanceFrom(c.Center)
		if math.Abs(d-c.Radius) > 1e-9 {
			t.Fatalf("sample %d at distance %f from center, want %f", i, d, c.Radius)
		}
	}
	// Open ring: last point must not duplicate the first.
	if PointsCoincide(pts[0], pts[len(pts)-1], 1e-9) {
		t.Error("sample ring repeats its first point")
	}
}
