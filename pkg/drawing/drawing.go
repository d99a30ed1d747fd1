// Package drawing defines the abstract drawing I/O interface.
// Implementations (dxf) decode a drawing file into geometry entities
// and encode an ordered entity sequence back out. The abstraction
// keeps the reordering core independent of any file format.
package drawing

import (
	"io"

	"github.com/chazu/kerf/pkg/geometry"
)

// Reader decodes a drawing into its entities, preserving original
// coordinates and non-geometric attributes for pass-through.
type Reader interface {
	Read(r io.Reader) ([]geometry.Entity, error)
}

// Writer encodes entities in the exact sequence given; for a reordered
// drawing the sequence is the cut order.
type Writer interface {
	Write(w io.Writer, entities []geometry.Entity) error
}
