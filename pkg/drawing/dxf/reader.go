// Package dxf implements the drawing.Reader and drawing.Writer
// interfaces for the DXF format, covering the LINE, ARC and CIRCLE
// entities of the ENTITIES section. Non-geometric attributes (layer,
// color, linetype, handle) ride along untouched.
//
// DXF is a flat sequence of group-code/value line pairs; only the
// subset needed for 2D contour work is understood, and any other
// entity type in the ENTITIES section is a hard error rather than a
// silent skip.
package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/drawing"
	"github.com/chazu/kerf/pkg/geometry"
)

// Compile-time interface check.
var _ drawing.Reader = (*Reader)(nil)

// Reader decodes DXF input.
type Reader struct{}

// NewReader returns a DXF reader.
func NewReader() *Reader { return &Reader{} }

// tagPair is one group-code/value pair from the file.
type tagPair struct {
	code  int
	value string
}

// Read parses the ENTITIES section into geometry entities, in file
// order. Entity types outside LINE/ARC/CIRCLE fail with
// geometry.UnsupportedEntityError.
func (rd *Reader) Read(r io.Reader) ([]geometry.Entity, error) {
	pairs, err := scanPairs(r)
	if err != nil {
		return nil, err
	}

	var entities []geometry.Entity
	inEntities := false

	i := 0
	for i < len(pairs) {
		p := pairs[i]
		switch {
		case p.code == 0 && p.value == "SECTION":
			// The section name follows as a 2-group.
			if i+1 < len(pairs) && pairs[i+1].code == 2 {
				inEntities = pairs[i+1].value == "ENTITIES"
				i += 2
				continue
			}
			i++
		case p.code == 0 && p.value == "ENDSEC":
			inEntities = false
			i++
		case p.code == 0 && p.value == "EOF":
			i = len(pairs)
		case inEntities && p.code == 0:
			ent, next, err := parseEntity(pairs, i)
			if err != nil {
				return nil, err
			}
			entities = append(entities, ent)
			i = next
		default:
			i++
		}
	}

	return entities, nil
}

// scanPairs reads the whole stream as group-code/value pairs.
func scanPairs(r io.Reader) ([]tagPair, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dxf: %w", err)
	}
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("malformed dxf: odd number of lines (%d)", len(lines))
	}

	pairs := make([]tagPair, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		code, err := strconv.Atoi(lines[i])
		if err != nil {
			return nil, fmt.Errorf("malformed dxf: group code %q at line %d: %w", lines[i], i+1, err)
		}
		pairs = append(pairs, tagPair{code: code, value: lines[i+1]})
	}
	return pairs, nil
}

// parseEntity consumes one entity record starting at pairs[start]
// (which holds the 0/TYPE pair) and returns the entity plus the index
// of the next unconsumed pair.
func parseEntity(pairs []tagPair, start int) (geometry.Entity, int, error) {
	kind := pairs[start].value

	var attrs geometry.Attributes
	var x1, y1, x2, y2, radius, angle1, angle2 float64

	i := start + 1
	for i < len(pairs) && pairs[i].code != 0 {
		p := pairs[i]
		var err error
		switch p.code {
		case 5:
			attrs.Handle = p.value
		case 6:
			attrs.LineType = p.value
		case 8:
			attrs.Layer = p.value
		case 62:
			attrs.Color, err = strconv.Atoi(p.value)
		case 10:
			x1, err = strconv.ParseFloat(p.value, 64)
		case 20:
			y1, err = strconv.ParseFloat(p.value, 64)
		case 11:
			x2, err = strconv.ParseFloat(p.value, 64)
		case 21:
			y2, err = strconv.ParseFloat(p.value, 64)
		case 40:
			radius, err = strconv.ParseFloat(p.value, 64)
		case 50:
			angle1, err = strconv.ParseFloat(p.value, 64)
		case 51:
			angle2, err = strconv.ParseFloat(p.value, 64)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("malformed dxf: %s group %d value %q: %w", kind, p.code, p.value, err)
		}
		i++
	}

	switch kind {
	case "LINE":
		return geometry.Line{
			A:          geom.Coord{X: x1, Y: y1},
			B:          geom.Coord{X: x2, Y: y2},
			Attributes: attrs,
		}, i, nil
	case "ARC":
		return geometry.Arc{
			Center:     geom.Coord{X: x1, Y: y1},
			Radius:     radius,
			StartAngle: angle1,
			EndAngle:   angle2,
			Attributes: attrs,
		}, i, nil
	case "CIRCLE":
		return geometry.Circle{
			Center:     geom.Coord{X: x1, Y: y1},
			Radius:     radius,
			Attributes: attrs,
		}, i, nil
	default:
		return nil, 0, geometry.UnsupportedEntityError{Type: kind, Handle: attrs.Handle}
	}
}
