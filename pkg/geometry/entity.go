// Package geometry defines the 2D drawing entities the rest of the
// system operates on: line segments, circular arcs, and full circles.
// Entities are immutable once parsed; traversal direction is expressed
// by Reversed copies, never by mutating geometry in place.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Attributes carries the non-geometric DXF properties of an entity.
// They are opaque to the core and preserved verbatim on output.
type Attributes struct {
	Layer    string
	Color    int // ACI color index; 0 means unset
	LineType string
	Handle   string
}

// Entity is a single drawing primitive.
//
// Start and End are the traversal endpoints used for chaining. A circle
// is already closed, so both return its center as a synthetic single
// point; adjacency logic treats circles as one-entity contours.
type Entity interface {
	Start() geom.Coord
	End() geom.Coord
	Bounds() geom.Rect
	Length() float64

	// Reversed returns a copy of the entity traversed in the opposite
	// direction. The underlying point set is unchanged.
	Reversed() Entity

	Attrs() Attributes
}

// PointsCoincide reports whether two points are the same point under
// the given tolerance. All endpoint matching in the pipeline goes
// through this so every stage shares one notion of equality.
func PointsCoincide(a, b geom.Coord, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// Line is a straight segment from A to B.
type Line struct {
	A, B       geom.Coord
	Attributes Attributes
}

func (l Line) Start() geom.Coord { return l.A }
func (l Line) End() geom.Coord   { return l.B }

func (l Line) Bounds() geom.Rect {
	r := geom.Rect{Min: l.A, Max: l.A}
	r.ExpandToContainCoord(l.B)
	return r
}

func (l Line) Length() float64 {
	return l.A.DistanceFrom(l.B)
}

func (l Line) Reversed() Entity {
	return Line{A: l.B, B: l.A, Attributes: l.Attributes}
}

func (l Line) Attrs() Attributes { return l.Attributes }

// Circle is a full circle. It forms a complete contour on its own.
type Circle struct {
	Center     geom.Coord
	Radius     float64
	Attributes Attributes
}

// Start returns the circle's center. A closed circle has no natural
// start point, so the center stands in for adjacency and distance
// bookkeeping; the actual traversal entry point on the boundary is
// chosen later by the planner.
func (c Circle) Start() geom.Coord { return c.Center }
func (c Circle) End() geom.Coord   { return c.Center }

func (c Circle) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
		Max: geom.Coord{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
	}
}

func (c Circle) Length() float64 {
	return 2 * math.Pi * c.Radius
}

func (c Circle) Reversed() Entity { return c }

func (c Circle) Attrs() Attributes { return c.Attributes }

// ClosestPoint returns the point on the circle's boundary nearest to p.
// For p at the exact center the point at angle 0 is returned.
func (c Circle) ClosestPoint(p geom.Coord) geom.Coord {
	v := p.Minus(c.Center)
	if v.Magnitude() == 0 {
		return geom.Coord{X: c.Center.X + c.Radius, Y: c.Center.Y}
	}
	return c.Center.Plus(v.Unit().Times(c.Radius))
}

// SamplePoints returns boundary points at most stepDeg degrees apart,
// counterclockwise from angle 0. The ring is open: the first point is
// not repeated at the end.
func (c Circle) SamplePoints(stepDeg float64) []geom.Coord {
	n := int(math.Ceil(360 / stepDeg))
	if n < 8 {
		n = 8
	}
	pts := make([]geom.Coord, n)
	for i := 0; i < n; i++ {
		a := float64(i) * 2 * math.Pi / float64(n)
		pts[i] = geom.Coord{
			X: c.Center.X + c.Radius*math.Cos(a),
			Y: c.Center.Y + c.Radius*math.Sin(a),
		}
	}
	return pts
}
