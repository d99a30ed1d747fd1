package contour

import (
	"errors"
	"testing"

	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/geometry"
)

// squareLines returns the four sides of an axis-aligned square with
// min corner at (x, y), in drawing order.
func squareLines(x, y, size float64) []geometry.Entity {
	a := geom.Coord{X: x, Y: y}
	b := geom.Coord{X: x + size, Y: y}
	c := geom.Coord{X: x + size, Y: y + size}
	d := geom.Coord{X: x, Y: y + size}
	return []geometry.Entity{
		geometry.Line{A: a, B: b},
		geometry.Line{A: b, B: c},
		geometry.Line{A: c, B: d},
		geometry.Line{A: d, B: a},
	}
}

func TestBuildSquare(t *testing.T) {
	contours, err := Build(squareLines(0, 0, 10), DefaultTolerance)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contour count = %d, want 1", len(contours))
	}
	if got := len(contours[0].Entities()); got != 4 {
		t.Errorf("entity count = %d, want 4", got)
	}
}

func TestBuildScrambledAndFlipped(t *testing.T) {
	// Same square with sides out of order and two of them reversed.
	// Chaining must reassemble one closed contour regardless.
	sides := squareLines(0, 0, 10)
	scrambled := []geometry.Entity{
		sides[2].Reversed(),
		sides[0],
		sides[3],
		sides[1].Reversed(),
	}

	contours, err := Build(scrambled, DefaultTolerance)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contour count = %d, want 1", len(contours))
	}

	// The chain must be end-to-start connected and closed.
	ents := contours[0].Entities()
	for i := 0; i < len(ents); i++ {
		next := ents[(i+1)%len(ents)]
		if !geometry.PointsCoincide(ents[i].End(), next.Start(), DefaultTolerance) {
			t.Errorf("chain broken between entity %d and %d: %v vs %v",
				i, i+1, ents[i].End(), next.Start())
		}
	}
}

func TestBuildCircleSingleton(t *testing.T) {
	circ := geometry.Circle{Center: geom.Coord{X: 5, Y: 5}, Radius: 2}
	input := append(squareLines(0, 0, 10), circ)

	contours, err := Build(input, DefaultTolerance)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(contours) != 2 {
		t.Fatalf("contour count = %d, want 2", len(contours))
	}

	var circles int
	for _, c := range contours {
		if _, ok := c.Circle(); ok {
			circles++
			if got := len(c.Entities()); got != 1 {
				t.Errorf("circle contour entity count = %d, want 1", got)
			}
		}
	}
	if circles != 1 {
		t.Errorf("circle contour count = %d, want 1", circles)
	}
}

func TestBuildLineArcContour(t *testing.T) {
	// A stadium shape: two horizontal lines capped by half arcs.
	top := geometry.Line{A: geom.Coord{X: 0, Y: 1}, B: geom.Coord{X: 4, Y: 1}}
	right := geometry.Arc{Center: geom.Coord{X: 4, Y: 0}, Radius: 1, StartAngle: 270, EndAngle: 90}
	bottom := geometry.Line{A: geom.Coord{X: 4, Y: -1}, B: geom.Coord{X: 0, Y: -1}}
	left := geometry.Arc{Center: geom.Coord{X: 0, Y: 0}, Radius: 1, StartAngle: 90, EndAngle: 270}

	contours, err := Build([]geometry.Entity{top, right, bottom, left}, DefaultTolerance)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contour count = %d, want 1", len(contours))
	}
	if got := len(contours[0].Entities()); got != 4 {
		t.Errorf("entity count = %d, want 4", got)
	}
}

func TestBuildOpenChain(t *testing.T) {
	// Three sides of a square: the chain cannot close.
	sides := squareLines(0, 0, 10)[:3]

	_, err := Build(sides, DefaultTolerance)
	var open OpenContourError
	if !errors.As(err, &open) {
		t.Fatalf("error = %v, want OpenContourError", err)
	}
	if len(open.Entities) != 3 {
		t.Errorf("offending chain length = %d, want 3", len(open.Entities))
	}
}

func TestBuildBranchingChain(t *testing.T) {
	// A square plus a diagonal ending at one of its corners: three
	// entity ends meet at (0,0).
	input := append(squareLines(0, 0, 10),
		geometry.Line{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: -5, Y: -5}})

	_, err := Build(input, DefaultTolerance)
	var ambiguous AmbiguousChainError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("error = %v, want AmbiguousChainError", err)
	}
	if !geometry.PointsCoincide(ambiguous.At, geom.Coord{X: 0, Y: 0}, DefaultTolerance) {
		t.Errorf("branch point = %v, want (0,0)", ambiguous.At)
	}
	if len(ambiguous.Entities) < 3 {
		t.Errorf("offending entity count = %d, want >= 3", len(ambiguous.Entities))
	}
}

func TestBuildToleranceBoundary(t *testing.T) {
	tol := 1e-3

	// Gap of half a tolerance still chains.
	near := []geometry.Entity{
		geometry.Line{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: 10, Y: 0}},
		geometry.Line{A: geom.Coord{X: 10 + tol/2, Y: 0}, B: geom.Coord{X: 5, Y: 8}},
		geometry.Line{A: geom.Coord{X: 5, Y: 8}, B: geom.Coord{X: 0, Y: tol / 2}},
	}
	if _, err := Build(near, tol); err != nil {
		t.Errorf("gap of tol/2 failed to chain: %v", err)
	}

	// Gap of three tolerances must not chain.
	far := []geometry.Entity{
		geometry.Line{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: 10, Y: 0}},
		geometry.Line{A: geom.Coord{X: 10 + 3*tol, Y: 0}, B: geom.Coord{X: 5, Y: 8}},
		geometry.Line{A: geom.Coord{X: 5, Y: 8}, B: geom.Coord{X: 0, Y: 0}},
	}
	var open OpenContourError
	if _, err := Build(far, tol); !errors.As(err, &open) {
		t.Errorf("gap of 3*tol chained anyway: %v", err)
	}
}

func TestBuildDegenerate(t *testing.T) {
	input := []geometry.Entity{
		geometry.Line{A: geom.Coord{X: 1, Y: 1}, B: geom.Coord{X: 1, Y: 1}},
	}
	_, err := Build(input, DefaultTolerance)
	var de geometry.DegenerateEntityError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want DegenerateEntityError", err)
	}
}

func TestBuildPartition(t *testing.T) {
	// Two disjoint squares plus a circle: every entity lands in exactly
	// one contour.
	input := append(squareLines(0, 0, 10), squareLines(20, 0, 5)...)
	input = append(input, geometry.Circle{Center: geom.Coord{X: 40, Y: 0}, Radius: 1})

	contours, err := Build(input, DefaultTolerance)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(contours) != 3 {
		t.Fatalf("contour count = %d, want 3", len(contours))
	}
	total := 0
	for _, c := range contours {
		total += len(c.Entities())
	}
	if total != len(input) {
		t.Errorf("entities across contours = %d, want %d", total, len(input))
	}
}

func TestBuildOrderIndependentIdentity(t *testing.T) {
	input := append(squareLines(0, 0, 10), squareLines(20, 0, 5)...)

	first, err := Build(input, DefaultTolerance)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	reversed := make([]geometry.Entity, len(input))
	for i, ent := range input {
		reversed[len(input)-1-i] = ent
	}
	second, err := Build(reversed, DefaultTolerance)
	if err != nil {
		t.Fatalf("Build reversed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("contour counts differ: %d vs %d", len(first), len(second))
	}
	// Compare as sets keyed by bounding box: identity must not depend
	// on input enumeration order.
	for _, a := range first {
		found := false
		for _, b := range second {
			if a.Bounds() == b.Bounds() && len(a.Entities()) == len(b.Entities()) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("contour with bounds %v missing from reversed build", a.Bounds())
		}
	}
}
