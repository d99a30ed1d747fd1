package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/chazu/kerf/pkg/drawing"
	"github.com/chazu/kerf/pkg/geometry"
)

// Compile-time interface check.
var _ drawing.Writer = (*Writer)(nil)

// Writer encodes entities as a minimal DXF document: a single ENTITIES
// section in the exact sequence given. For a reordered drawing that
// sequence is the cut order.
type Writer struct{}

// NewWriter returns a DXF writer.
func NewWriter() *Writer { return &Writer{} }

// Write emits the entities. Reversed lines are written with swapped
// endpoints; reversed arcs keep their stored counterclockwise angle
// pair, because a DXF ARC is inherently counterclockwise and swapping
// the angles would describe the complementary arc instead.
func (wr *Writer) Write(w io.Writer, entities []geometry.Entity) error {
	bw := bufio.NewWriter(w)

	tag(bw, 0, "SECTION")
	tag(bw, 2, "ENTITIES")

	for i, ent := range entities {
		switch v := ent.(type) {
		case geometry.Line:
			tag(bw, 0, "LINE")
			attrTags(bw, v.Attributes)
			coordTags(bw, 10, 20, v.A.X, v.A.Y)
			coordTags(bw, 11, 21, v.B.X, v.B.Y)
		case geometry.Arc:
			tag(bw, 0, "ARC")
			attrTags(bw, v.Attributes)
			coordTags(bw, 10, 20, v.Center.X, v.Center.Y)
			floatTag(bw, 40, v.Radius)
			floatTag(bw, 50, v.StartAngle)
			floatTag(bw, 51, v.EndAngle)
		case geometry.Circle:
			tag(bw, 0, "CIRCLE")
			attrTags(bw, v.Attributes)
			coordTags(bw, 10, 20, v.Center.X, v.Center.Y)
			floatTag(bw, 40, v.Radius)
		default:
			return fmt.Errorf("writing entity %d: %w", i,
				geometry.UnsupportedEntityError{Type: fmt.Sprintf("%T", ent)})
		}
	}

	tag(bw, 0, "ENDSEC")
	tag(bw, 0, "EOF")
	return bw.Flush()
}

func tag(w *bufio.Writer, code int, value string) {
	fmt.Fprintf(w, "%d\n%s\n", code, value)
}

// floatTag formats with the shortest representation that survives a
// parse round-trip unchanged.
func floatTag(w *bufio.Writer, code int, v float64) {
	tag(w, code, strconv.FormatFloat(v, 'f', -1, 64))
}

func coordTags(w *bufio.Writer, xCode, yCode int, x, y float64) {
	floatTag(w, xCode, x)
	floatTag(w, yCode, y)
}

func attrTags(w *bufio.Writer, a geometry.Attributes) {
	if a.Handle != "" {
		tag(w, 5, a.Handle)
	}
	if a.LineType != "" {
		tag(w, 6, a.LineType)
	}
	if a.Layer != "" {
		tag(w, 8, a.Layer)
	}
	if a.Color != 0 {
		tag(w, 62, strconv.Itoa(a.Color))
	}
}
