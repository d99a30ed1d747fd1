package contour

import (
	"math"

	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/geometry"
)

// DefaultTolerance is the endpoint-matching tolerance used when the
// caller has no better value. It matches the coordinate noise typically
// left behind by CAD exporters.
const DefaultTolerance = 1e-5

// endRef identifies one end of a chainable entity.
type endRef struct {
	entity int // index into the input entity slice
	end    int // 0 = Start, 1 = End
}

// endpointIndex maps quantized coordinates to the entity ends located
// there. Lookups probe the 3x3 cell neighborhood so two points within
// tolerance of each other always find one another even when they
// straddle a cell border.
type endpointIndex struct {
	cells map[[2]int64][]endRef
	tol   float64
}

func newEndpointIndex(tol float64) *endpointIndex {
	return &endpointIndex{cells: make(map[[2]int64][]endRef), tol: tol}
}

func (idx *endpointIndex) key(p geom.Coord) [2]int64 {
	return [2]int64{
		int64(math.Round(p.X / idx.tol)),
		int64(math.Round(p.Y / idx.tol)),
	}
}

func (idx *endpointIndex) add(p geom.Coord, ref endRef) {
	k := idx.key(p)
	idx.cells[k] = append(idx.cells[k], ref)
}

// coincident returns every indexed entity end within tolerance of p,
// in insertion order per cell with cells probed in a fixed order, so
// results are deterministic.
func (idx *endpointIndex) coincident(p geom.Coord, entities []geometry.Entity) []endRef {
	k := idx.key(p)
	var refs []endRef
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, ref := range idx.cells[[2]int64{k[0] + dx, k[1] + dy}] {
				if geometry.PointsCoincide(p, endPoint(entities, ref), idx.tol) {
					refs = append(refs, ref)
				}
			}
		}
	}
	return refs
}

func endPoint(entities []geometry.Entity, ref endRef) geom.Coord {
	if ref.end == 0 {
		return entities[ref.entity].Start()
	}
	return entities[ref.entity].End()
}

// Build groups entities into closed contours. Circles form singleton
// contours; every other entity must chain end-to-start with exactly one
// neighbor per endpoint until the chain returns to its own start.
//
// tol is the endpoint-matching tolerance and must be positive. The
// resulting contour set does not depend on input order, only the
// enumeration order of the returned slice does.
func Build(entities []geometry.Entity, tol float64) ([]*Contour, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}

	for _, ent := range entities {
		if err := geometry.Validate(ent, tol); err != nil {
			return nil, err
		}
	}

	idx := newEndpointIndex(tol)
	for i, ent := range entities {
		if _, ok := ent.(geometry.Circle); ok {
			continue
		}
		idx.add(ent.Start(), endRef{entity: i, end: 0})
		idx.add(ent.End(), endRef{entity: i, end: 1})
	}

	// Branching check: more than two entity ends on one point cannot
	// belong to a simple closed contour.
	for i, ent := range entities {
		if _, ok := ent.(geometry.Circle); ok {
			continue
		}
		for end := 0; end < 2; end++ {
			p := endPoint(entities, endRef{entity: i, end: end})
			refs := idx.coincident(p, entities)
			if len(refs) > 2 {
				seen := make(map[int]bool)
				var offenders []geometry.Entity
				for _, ref := range refs {
					if !seen[ref.entity] {
						seen[ref.entity] = true
						offenders = append(offenders, entities[ref.entity])
					}
				}
				return nil, AmbiguousChainError{At: p, Entities: offenders}
			}
		}
	}

	visited := make([]bool, len(entities))
	var contours []*Contour

	for i, ent := range entities {
		if visited[i] {
			continue
		}
		if _, ok := ent.(geometry.Circle); ok {
			visited[i] = true
			c, err := newContour([]geometry.Entity{ent})
			if err != nil {
				return nil, err
			}
			contours = append(contours, c)
			continue
		}

		chain, err := walkChain(entities, idx, visited, i, tol)
		if err != nil {
			return nil, err
		}
		c, err := newContour(chain)
		if err != nil {
			return nil, err
		}
		contours = append(contours, c)
	}

	return contours, nil
}

// walkChain follows endpoint matches from entity first until the chain
// closes on its own start or runs out of continuations.
func walkChain(entities []geometry.Entity, idx *endpointIndex, visited []bool, first int, tol float64) ([]geometry.Entity, error) {
	visited[first] = true
	chain := []geometry.Entity{entities[first]}
	start := entities[first].Start()
	cur := entities[first].End()

	for {
		var next *endRef
		for _, ref := range idx.coincident(cur, entities) {
			if !visited[ref.entity] {
				ref := ref
				next = &ref
				break
			}
		}
		if next == nil {
			break
		}

		visited[next.entity] = true
		ent := entities[next.entity]
		if next.end == 1 {
			// Matched at its far end; traverse it backwards.
			ent = ent.Reversed()
		}
		chain = append(chain, ent)
		cur = ent.End()
	}

	if len(chain) >= 2 && geometry.PointsCoincide(cur, start, tol) {
		return chain, nil
	}
	return nil, OpenContourError{Entities: chain, Gap: cur, Start: start}
}
