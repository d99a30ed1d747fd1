package nesting

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/contour"
)

// IntersectingContoursError reports two contours whose boundaries
// cross. Crossing boundaries violate the input precondition; nesting
// and cut order are undefined for them.
type IntersectingContoursError struct {
	A, B int // contour ids
	At   geom.Coord
}

func (e IntersectingContoursError) Error() string {
	return fmt.Sprintf("contours %d and %d intersect near (%.4f, %.4f)", e.A, e.B, e.At.X, e.At.Y)
}

// spatialContour adapts a contour to the R-tree index.
type spatialContour struct {
	id   int
	rect rtreego.Rect
}

// Compile-time interface check.
var _ rtreego.Spatial = (*spatialContour)(nil)

func (s *spatialContour) Bounds() rtreego.Rect { return s.rect }

// boundsRect converts a geometry bounding box to an R-tree rectangle.
// R-tree rectangles need strictly positive extents, so flat boxes are
// padded by the tolerance.
func boundsRect(b geom.Rect, tol float64) (rtreego.Rect, error) {
	w := b.Width()
	if w < tol {
		w = tol
	}
	h := b.Height()
	if h < tol {
		h = tol
	}
	return rtreego.NewRect(rtreego.Point{b.Min.X, b.Min.Y}, []float64{w, h})
}

// Build determines containment between every pair of contours and
// assembles the forest. The R-tree only prunes pairs whose bounding
// boxes are disjoint; every surviving pair is decided by exact interior
// point tests, so the index cannot change results.
func Build(contours []*contour.Contour, tol float64) (*Forest, error) {
	if tol <= 0 {
		tol = contour.DefaultTolerance
	}

	rt := rtreego.NewTree(2, 2, 8)
	items := make([]*spatialContour, len(contours))
	for i, c := range contours {
		rect, err := boundsRect(c.Bounds(), tol)
		if err != nil {
			return nil, fmt.Errorf("indexing contour %d: %w", i, err)
		}
		items[i] = &spatialContour{id: i, rect: rect}
		rt.Insert(items[i])
	}

	// Reject crossing boundaries before any hierarchy decisions.
	for i := range contours {
		for _, j := range overlapping(rt, items[i]) {
			if j <= i {
				continue
			}
			if at, crossed := boundariesCross(contours[i], contours[j]); crossed {
				return nil, IntersectingContoursError{A: i, B: j, At: at}
			}
		}
	}

	// Containment scan. Each contour's container set is independent of
	// the others, so the scans run concurrently; results land in their
	// own slot and are consumed in index order afterwards.
	containers := make([][]int, len(contours))
	var wg sync.WaitGroup
	for i := range contours {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := contours[i].InteriorPoint()
			area := contours[i].Area()
			var inside []int
			for _, j := range overlapping(rt, items[i]) {
				if j == i {
					continue
				}
				// With non-crossing boundaries a strict container is
				// strictly larger. The area guard keeps a contour whose
				// representative point happens to fall inside one of its
				// own descendants (concentric shapes share a center) from
				// being judged contained by it.
				if contours[j].Area() > area && contours[j].ContainsPoint(p) {
					inside = append(inside, j)
				}
			}
			sort.Ints(inside)
			containers[i] = inside
		}(i)
	}
	wg.Wait()

	f := &Forest{Nodes: make([]Node, len(contours))}
	for i, c := range contours {
		f.Nodes[i] = Node{Contour: c, Parent: RootParent}
	}

	// Immediate parent: the tightest (smallest-area) enclosing contour.
	// Equal areas break toward the lower id to stay deterministic.
	for i := range contours {
		parent := RootParent
		bestArea := 0.0
		for _, j := range containers[i] {
			area := contours[j].Area()
			if parent == RootParent || area < bestArea {
				parent = j
				bestArea = area
			}
		}
		f.Nodes[i].Parent = parent
		if parent == RootParent {
			f.Roots = append(f.Roots, i)
		} else {
			f.Nodes[parent].Children = append(f.Nodes[parent].Children, i)
		}
	}
	sort.Ints(f.Roots)
	for i := range f.Nodes {
		sort.Ints(f.Nodes[i].Children)
	}

	// Depth by walk from the roots; the forest is acyclic because
	// strict containment is a partial order.
	var assign func(id, depth int)
	assign = func(id, depth int) {
		f.Nodes[id].Depth = depth
		for _, child := range f.Nodes[id].Children {
			assign(child, depth+1)
		}
	}
	for _, r := range f.Roots {
		assign(r, 0)
	}

	return f, nil
}

// overlapping returns the ids of contours whose bounding boxes
// intersect the given item's, in ascending order.
func overlapping(rt *rtreego.Rtree, item *spatialContour) []int {
	var ids []int
	for _, hit := range rt.SearchIntersect(item.rect) {
		ids = append(ids, hit.(*spatialContour).id)
	}
	sort.Ints(ids)
	return ids
}

// boundariesCross tests the sampled boundaries of two contours for a
// proper crossing. Shared or tangent points are deliberately not
// reported; detection is best-effort per the input contract.
func boundariesCross(a, b *contour.Contour) (geom.Coord, bool) {
	ra := a.Polygon()
	rb := b.Polygon()
	for i := 0; i < len(ra); i++ {
		p1 := ra[i]
		p2 := ra[(i+1)%len(ra)]
		for j := 0; j < len(rb); j++ {
			p3 := rb[j]
			p4 := rb[(j+1)%len(rb)]
			if segmentsProperlyCross(p1, p2, p3, p4) {
				mid := geom.Coord{X: (p1.X + p2.X + p3.X + p4.X) / 4, Y: (p1.Y + p2.Y + p3.Y + p4.Y) / 4}
				return mid, true
			}
		}
	}
	return geom.Coord{}, false
}

// orientation returns the turn direction of the triple (p, q, r):
// positive for counterclockwise, negative for clockwise, zero for
// collinear.
func orientation(p, q, r geom.Coord) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// segmentsProperlyCross reports whether segments p1p2 and p3p4 cross at
// an interior point of both. Endpoint touches and collinear overlaps
// return false.
func segmentsProperlyCross(p1, p2, p3, p4 geom.Coord) bool {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)
	return o1*o2 < 0 && o3*o4 < 0
}
