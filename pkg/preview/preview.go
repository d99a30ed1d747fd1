// Package preview renders a planned tour as an SVG image: contour
// outlines in cut order, dashed rapid-travel moves between them, and a
// sequence number at each entry point. The picture is a quick sanity
// check on a plan before the output file goes to a machine.
package preview

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/geometry"
	"github.com/chazu/kerf/pkg/planner"
)

// canvasSize is the longer edge of the rendered image in SVG units.
const canvasSize = 800.0

// marginFrac pads the drawing bounds so strokes and labels are not
// clipped at the edge.
const marginFrac = 0.05

// Render writes an SVG preview of the tour to w. start is the travel
// origin, the same point handed to the planner.
func Render(w io.Writer, steps []planner.Step, start geom.Coord) error {
	bounds := tourBounds(steps, start)
	m := mapping(bounds)

	canvas := svg.New(w)
	canvas.Start(m.width, m.height)
	canvas.Rect(0, 0, m.width, m.height, "fill:white")

	// Travel moves first so contour strokes draw over them.
	pos := start
	for _, s := range steps {
		a, b := m.point(pos), m.point(s.Entry)
		canvas.Line(a.X, a.Y, b.X, b.Y, "stroke:#999;stroke-width:1;stroke-dasharray:6,4")
		pos = s.Entry
	}

	for i, s := range steps {
		for _, ent := range planner.Traverse(s) {
			drawEntity(canvas, m, ent)
		}
		p := m.point(s.Entry)
		canvas.Circle(p.X, p.Y, 3, "fill:#d33")
		canvas.Text(p.X+6, p.Y-6, fmt.Sprintf("%d", i+1),
			"font-size:14px;font-family:sans-serif;fill:#d33")
	}

	p := m.point(start)
	canvas.Circle(p.X, p.Y, 4, "fill:none;stroke:#333;stroke-width:1.5")
	canvas.End()
	return nil
}

const strokeStyle = "fill:none;stroke:#000;stroke-width:1.5"

func drawEntity(canvas *svg.SVG, m mapper, ent geometry.Entity) {
	switch v := ent.(type) {
	case geometry.Line:
		a, b := m.point(v.A), m.point(v.B)
		canvas.Line(a.X, a.Y, b.X, b.Y, strokeStyle)
	case geometry.Arc:
		canvas.Path(arcPath(m, v), strokeStyle)
	case geometry.Circle:
		c := m.point(v.Center)
		canvas.Circle(c.X, c.Y, v.Radius*m.scale, strokeStyle)
	}
}

// arcPath builds an SVG elliptical-arc path for a circular arc. The
// vertical flip of the drawing-to-screen mapping reverses orientation:
// a counterclockwise arc sweeps in the positive-angle (screen
// clockwise) direction, so the sweep flag is 1 unless the arc is
// traversed clockwise.
func arcPath(m mapper, a geometry.Arc) string {
	s, e := m.point(a.Start()), m.point(a.End())
	r := a.Radius * m.scale

	largeArc := 0
	if a.SweepDeg() > 180 {
		largeArc = 1
	}
	sweep := 1
	if a.Clockwise {
		sweep = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M%g,%g ", s.X, s.Y)
	fmt.Fprintf(&b, "A%g,%g 0 %d %d %g,%g", r, r, largeArc, sweep, e.X, e.Y)
	return b.String()
}

// mapper converts drawing coordinates (y up) to image coordinates
// (y down) with uniform scale and a margin.
type mapper struct {
	scale         float64
	offsetX       float64
	offsetY       float64
	width, height float64
}

func (m mapper) point(p geom.Coord) geom.Coord {
	return geom.Coord{
		X: (p.X-m.offsetX)*m.scale + m.margin(),
		Y: m.height - ((p.Y-m.offsetY)*m.scale + m.margin()),
	}
}

func (m mapper) margin() float64 {
	return canvasSize * marginFrac
}

func mapping(bounds geom.Rect) mapper {
	w := bounds.Width()
	h := bounds.Height()
	longest := math.Max(w, h)
	if longest == 0 {
		longest = 1
	}

	usable := canvasSize * (1 - 2*marginFrac)
	scale := usable / longest
	return mapper{
		scale:   scale,
		offsetX: bounds.Min.X,
		offsetY: bounds.Min.Y,
		width:   w*scale + 2*canvasSize*marginFrac,
		height:  h*scale + 2*canvasSize*marginFrac,
	}
}

func tourBounds(steps []planner.Step, start geom.Coord) geom.Rect {
	bounds := geom.Rect{Min: start, Max: start}
	for _, s := range steps {
		bounds.ExpandToContainRect(s.Contour.Bounds())
	}
	return bounds
}
