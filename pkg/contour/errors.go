package contour

import (
	"fmt"
	"strings"

	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/geometry"
)

// OpenContourError reports a maximal chain of endpoint-matched entities
// that never returns to its own start. Entities holds the chain in walk
// order; Gap is the dangling endpoint that found no continuation.
type OpenContourError struct {
	Entities []geometry.Entity
	Gap      geom.Coord
	Start    geom.Coord
}

func (e OpenContourError) Error() string {
	return fmt.Sprintf("open contour: chain of %d entities [%s] ends at (%.4f, %.4f) without reaching its start (%.4f, %.4f)",
		len(e.Entities), handleList(e.Entities), e.Gap.X, e.Gap.Y, e.Start.X, e.Start.Y)
}

// AmbiguousChainError reports an endpoint shared by more than two
// entity ends. A simple closed contour admits exactly two ends per
// point; three or more means branching topology.
type AmbiguousChainError struct {
	At       geom.Coord
	Entities []geometry.Entity
}

func (e AmbiguousChainError) Error() string {
	return fmt.Sprintf("ambiguous chain: %d entities [%s] meet at (%.4f, %.4f)",
		len(e.Entities), handleList(e.Entities), e.At.X, e.At.Y)
}

// handleList formats entity handles for error messages, falling back to
// an index placeholder for entities without one.
func handleList(entities []geometry.Entity) string {
	parts := make([]string, len(entities))
	for i, ent := range entities {
		h := ent.Attrs().Handle
		if h == "" {
			h = fmt.Sprintf("#%d", i)
		}
		parts[i] = h
	}
	return strings.Join(parts, ", ")
}
