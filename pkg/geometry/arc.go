package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Arc is a circular arc in DXF convention: the boundary runs
// counterclockwise from StartAngle to EndAngle, both in degrees.
// Clockwise marks a reversed traversal of the same point set; it
// swaps which endpoint counts as Start without touching the angles.
type Arc struct {
	Center     geom.Coord
	Radius     float64
	StartAngle float64 // degrees
	EndAngle   float64 // degrees
	Clockwise  bool
	Attributes Attributes
}

// SweepDeg returns the counterclockwise angular extent in (0, 360].
func (a Arc) SweepDeg() float64 {
	d := math.Mod(a.EndAngle-a.StartAngle, 360)
	if d <= 0 {
		d += 360
	}
	return d
}

// PointAt returns the boundary point at the given angle in degrees.
func (a Arc) PointAt(angleDeg float64) geom.Coord {
	rad := angleDeg * math.Pi / 180
	return geom.Coord{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}

// ContainsAngle reports whether the given angle lies on the arc's
// counterclockwise sweep, endpoints included.
func (a Arc) ContainsAngle(angleDeg float64) bool {
	d := math.Mod(angleDeg-a.StartAngle, 360)
	if d < 0 {
		d += 360
	}
	return d <= a.SweepDeg()
}

func (a Arc) Start() geom.Coord {
	if a.Clockwise {
		return a.PointAt(a.EndAngle)
	}
	return a.PointAt(a.StartAngle)
}

func (a Arc) End() geom.Coord {
	if a.Clockwise {
		return a.PointAt(a.StartAngle)
	}
	return a.PointAt(a.EndAngle)
}

// Bounds covers both endpoints plus any axis extreme (0, 90, 180, 270
// degrees) the sweep passes through.
func (a Arc) Bounds() geom.Rect {
	p := a.PointAt(a.StartAngle)
	r := geom.Rect{Min: p, Max: p}
	r.ExpandToContainCoord(a.PointAt(a.EndAngle))
	for _, axis := range []float64{0, 90, 180, 270} {
		if a.ContainsAngle(axis) {
			r.ExpandToContainCoord(a.PointAt(axis))
		}
	}
	return r
}

func (a Arc) Length() float64 {
	return a.SweepDeg() * math.Pi / 180 * a.Radius
}

func (a Arc) Reversed() Entity {
	a.Clockwise = !a.Clockwise
	return a
}

func (a Arc) Attrs() Attributes { return a.Attributes }

// SamplePoints returns boundary points at most stepDeg degrees apart in
// traversal order, including both endpoints.
func (a Arc) SamplePoints(stepDeg float64) []geom.Coord {
	sweep := a.SweepDeg()
	n := int(math.Ceil(sweep / stepDeg))
	if n < 4 {
		n = 4
	}
	pts := make([]geom.Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)
		if a.Clockwise {
			frac = 1 - frac
		}
		pts = append(pts, a.PointAt(a.StartAngle+sweep*frac))
	}
	return pts
}
