// Package nesting builds the containment hierarchy of contours: a
// forest under a synthetic root where a child lies geometrically inside
// its parent. The planner consumes the forest to guarantee inner
// contours are cut before the boundaries that enclose them.
package nesting

import "github.com/chazu/kerf/pkg/contour"

// RootParent marks a node attached to the synthetic root.
const RootParent = -1

// Node wraps one contour with its position in the hierarchy. Links are
// plain indices into Forest.Nodes, so the structure owns no reference
// cycles: the parent link is a lookup aid, the children slice is the
// owning edge.
type Node struct {
	Contour  *contour.Contour
	Parent   int   // index of the enclosing node, or RootParent
	Children []int // immediate children, ascending index order
	Depth    int   // 0 for outermost contours
}

// Forest is the full hierarchy. Nodes[i] corresponds to the i-th input
// contour, so indices double as stable contour ids.
type Forest struct {
	Nodes []Node
	Roots []int // nodes with no enclosing contour, ascending order
}

// Size returns the number of contours in the forest.
func (f *Forest) Size() int { return len(f.Nodes) }

// MaxDepth returns the deepest nesting level, or -1 for an empty forest.
func (f *Forest) MaxDepth() int {
	max := -1
	for _, n := range f.Nodes {
		if n.Depth > max {
			max = n.Depth
		}
	}
	return max
}
