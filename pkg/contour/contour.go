// Package contour assembles drawing entities into closed contours by
// chaining tolerance-matched endpoints, and derives the per-contour
// geometry (bounds, area, interior point) the later stages consume.
package contour

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/geometry"
)

// arcStepDeg is the angular step used when sampling arcs and circles
// into the polygonal boundary approximation. All downstream geometric
// tests (area, interior point, containment, crossing) share this one
// sampling, so they agree with each other by construction.
const arcStepDeg = 5.0

// Contour is a closed loop of chained entities, or a single circle.
// It is immutable after construction; traversal start and direction are
// assigned later as a side table and never touch the geometry here.
type Contour struct {
	entities []geometry.Entity
	bounds   geom.Rect
	polygon  []geom.Coord // sampled boundary ring, first point not repeated
	area     float64      // signed; positive means counterclockwise
	interior geom.Coord
}

// newContour derives the cached geometry for a chained entity sequence.
func newContour(entities []geometry.Entity) (*Contour, error) {
	c := &Contour{entities: entities}

	c.bounds = entities[0].Bounds()
	for _, ent := range entities[1:] {
		c.bounds.ExpandToContainRect(ent.Bounds())
	}

	c.polygon = samplePolygon(entities)
	c.area = shoelace(c.polygon)

	interior, err := interiorPoint(c)
	if err != nil {
		return nil, err
	}
	c.interior = interior
	return c, nil
}

// Entities returns the chained entity sequence. Callers must not
// modify the returned slice.
func (c *Contour) Entities() []geometry.Entity { return c.entities }

// Bounds returns the contour's axis-aligned bounding box.
func (c *Contour) Bounds() geom.Rect { return c.bounds }

// SignedArea returns the enclosed area with counterclockwise positive.
func (c *Contour) SignedArea() float64 { return c.area }

// Area returns the absolute enclosed area.
func (c *Contour) Area() float64 { return math.Abs(c.area) }

// InteriorPoint returns a representative point strictly inside the
// contour, used for containment testing.
func (c *Contour) InteriorPoint() geom.Coord { return c.interior }

// Circle returns the underlying circle when the contour is a single
// CIRCLE entity.
func (c *Contour) Circle() (geometry.Circle, bool) {
	if len(c.entities) == 1 {
		circ, ok := c.entities[0].(geometry.Circle)
		return circ, ok
	}
	return geometry.Circle{}, false
}

// Vertices returns the chain boundary points: the start point of each
// entity in sequence. These are the only legal traversal entry points
// for a non-circle contour. For a circle the center is returned.
func (c *Contour) Vertices() []geom.Coord {
	pts := make([]geom.Coord, len(c.entities))
	for i, ent := range c.entities {
		pts[i] = ent.Start()
	}
	return pts
}

// Polygon returns the sampled boundary ring. Callers must not modify
// the returned slice.
func (c *Contour) Polygon() []geom.Coord { return c.polygon }

// ContainsPoint reports whether p lies inside the contour, by even-odd
// crossing count against the sampled boundary.
func (c *Contour) ContainsPoint(p geom.Coord) bool {
	inside := false
	poly := c.polygon
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// samplePolygon flattens the entity chain into a boundary ring. Line
// endpoints are used directly; arcs and circles contribute sampled
// points. Each entity's end point is dropped because the next entity's
// start repeats it.
func samplePolygon(entities []geometry.Entity) []geom.Coord {
	if len(entities) == 1 {
		if circ, ok := entities[0].(geometry.Circle); ok {
			return circ.SamplePoints(arcStepDeg)
		}
	}

	var ring []geom.Coord
	for _, ent := range entities {
		switch v := ent.(type) {
		case geometry.Arc:
			pts := v.SamplePoints(arcStepDeg)
			ring = append(ring, pts[:len(pts)-1]...)
		default:
			ring = append(ring, ent.Start())
		}
	}
	return ring
}

// shoelace returns the signed area of the ring.
func shoelace(ring []geom.Coord) float64 {
	area := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].X * ring[j].Y
		area -= ring[j].X * ring[i].Y
	}
	return area / 2
}

// interiorTries bounds the scanline search for an interior point. A
// closed contour has finitely many vertices, so only finitely many
// heights can collide with one.
const interiorTries = 64

// interiorPoint finds a point strictly inside the contour. A circle's
// center always qualifies. Otherwise a horizontal scanline through the
// bounding box is intersected with the boundary and the midpoint of the
// first crossing pair is taken, verified with ContainsPoint. The
// scanline height starts at the bounding-box middle and walks a
// golden-ratio sequence, so a vertex lying exactly on one candidate
// height cannot wedge the computation.
func interiorPoint(c *Contour) (geom.Coord, error) {
	if circ, ok := c.Circle(); ok {
		return circ.Center, nil
	}

	height := c.bounds.Height()
	frac := 0.5
	for try := 0; try < interiorTries; try++ {
		y := c.bounds.Min.Y + height*frac
		if xs := scanlineCrossings(c.polygon, y); len(xs) >= 2 {
			mid := geom.Coord{X: (xs[0] + xs[1]) / 2, Y: y}
			if c.ContainsPoint(mid) {
				return mid, nil
			}
		}
		frac = 0.05 + math.Mod(frac+0.381966011, 0.9)
	}
	return geom.Coord{}, fmt.Errorf(
		"no interior point found for contour of %d entities in bounds (%.4f, %.4f)-(%.4f, %.4f)",
		len(c.entities), c.bounds.Min.X, c.bounds.Min.Y, c.bounds.Max.X, c.bounds.Max.Y)
}

// scanlineCrossings returns the sorted x coordinates where the ring
// crosses the horizontal line at y. Vertices lying exactly on the line
// make the result unreliable, so callers retry at a different height.
func scanlineCrossings(ring []geom.Coord, y float64) []float64 {
	var xs []float64
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if a.Y == y || b.Y == y {
			return nil // vertex on the scanline; ask for a retry
		}
		if (a.Y > y) != (b.Y > y) {
			xs = append(xs, a.X+(y-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
	}
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
	return xs
}
