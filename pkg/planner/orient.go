package planner

import (
	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/contour"
	"github.com/chazu/kerf/pkg/geometry"
)

// NearestVertex returns the index and position of the contour vertex
// closest to p. For a circle the analytically closest boundary point is
// returned with index 0, since a circle has no chain vertices.
//
// Entry points always snap to an existing chain boundary; splitting a
// primitive mid-span to enter there is out of scope.
func NearestVertex(c *contour.Contour, p geom.Coord) (int, geom.Coord) {
	if circ, ok := c.Circle(); ok {
		return 0, circ.ClosestPoint(p)
	}

	verts := c.Vertices()
	bestIdx := 0
	bestDist := p.DistanceFrom(verts[0])
	for i := 1; i < len(verts); i++ {
		if d := p.DistanceFrom(verts[i]); d < bestDist {
			bestIdx = i
			bestDist = d
		}
	}
	return bestIdx, verts[bestIdx]
}

// Traverse returns the contour's entity sequence rotated so traversal
// begins at the step's entry vertex, reversed when the step's direction
// flag is set. The contour itself is never modified; reversed entities
// are copies.
func Traverse(s Step) []geometry.Entity {
	ents := s.Contour.Entities()
	n := len(ents)

	rotated := make([]geometry.Entity, 0, n)
	rotated = append(rotated, ents[s.EntryIndex:]...)
	rotated = append(rotated, ents[:s.EntryIndex]...)

	if !s.Reverse {
		return rotated
	}
	out := make([]geometry.Entity, n)
	for i, ent := range rotated {
		out[n-1-i] = ent.Reversed()
	}
	return out
}
