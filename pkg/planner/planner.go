// Package planner orders contours for cutting. The order must respect
// nesting precedence (a contour is cut strictly before every ancestor
// that encloses it) and, within that constraint, greedily minimizes
// rapid travel between contours. Nearest-neighbor is the deliberate
// heuristic here; an exact tour solver would change observable output
// order and buys little at drawing scale.
package planner

import (
	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/contour"
	"github.com/chazu/kerf/pkg/nesting"
)

// Step is one entry in the cut order: which contour to cut, where to
// enter its boundary, and in which direction to traverse it. Steps are
// a side table over immutable contour geometry.
type Step struct {
	ID         int
	Contour    *contour.Contour
	Entry      geom.Coord
	EntryIndex int  // vertex index traversal starts at; 0 for circles
	Reverse    bool // traverse the chain against its stored direction
}

// Plan produces the cut order for the forest, starting the travel
// cursor at start (typically the machine home).
//
// A contour becomes eligible only once its entire subtree has been
// emitted. Among eligible contours the one with the entry point
// nearest the cursor wins; distance ties keep the lowest contour id,
// so the result is deterministic for identical input.
func Plan(f *nesting.Forest, start geom.Coord) []Step {
	n := f.Size()
	steps := make([]Step, 0, n)

	pending := make([]int, n) // unplaced children per node
	placed := make([]bool, n)
	for i := range f.Nodes {
		pending[i] = len(f.Nodes[i].Children)
	}

	pos := start
	prevCCW := false
	for len(steps) < n {
		best := -1
		var bestEntry geom.Coord
		bestIndex := 0
		bestDist := 0.0

		for id := 0; id < n; id++ {
			if placed[id] || pending[id] > 0 {
				continue
			}
			idx, entry := NearestVertex(f.Nodes[id].Contour, pos)
			d := pos.DistanceFrom(entry)
			if best == -1 || d < bestDist {
				best = id
				bestEntry = entry
				bestIndex = idx
				bestDist = d
			}
		}

		c := f.Nodes[best].Contour
		ccw := c.SignedArea() > 0
		reverse := false
		if len(steps) == 0 {
			prevCCW = ccw
		} else if ccw != prevCCW {
			// Flip only to keep a consistent traversal direction with
			// the previous contour; cosmetic, never load bearing. The
			// reversed traversal winds like prevCCW, so prevCCW stands.
			reverse = true
		}

		steps = append(steps, Step{
			ID:         best,
			Contour:    c,
			Entry:      bestEntry,
			EntryIndex: bestIndex,
			Reverse:    reverse,
		})
		placed[best] = true

		// A closed loop exits where it entered.
		pos = bestEntry

		if parent := f.Nodes[best].Parent; parent != nesting.RootParent {
			pending[parent]--
		}
	}

	return steps
}

// TravelDistance sums the rapid moves between start and the successive
// contour entry points. Cutting moves are not included.
func TravelDistance(steps []Step, start geom.Coord) float64 {
	total := 0.0
	pos := start
	for _, s := range steps {
		total += pos.DistanceFrom(s.Entry)
		pos = s.Entry
	}
	return total
}
