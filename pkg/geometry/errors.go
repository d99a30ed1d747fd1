package geometry

import (
	"fmt"

	"github.com/jbeda/geom"
)

// DegenerateEntityError reports an entity with no usable extent:
// a zero-length line or an arc/circle with non-positive radius.
type DegenerateEntityError struct {
	Handle string
	Reason string
	At     geom.Coord
}

func (e DegenerateEntityError) Error() string {
	if e.Handle != "" {
		return fmt.Sprintf("degenerate entity %s at (%.4f, %.4f): %s", e.Handle, e.At.X, e.At.Y, e.Reason)
	}
	return fmt.Sprintf("degenerate entity at (%.4f, %.4f): %s", e.At.X, e.At.Y, e.Reason)
}

// UnsupportedEntityError reports a drawing entity outside the supported
// set (LINE, ARC, CIRCLE).
type UnsupportedEntityError struct {
	Type   string
	Handle string
}

func (e UnsupportedEntityError) Error() string {
	if e.Handle != "" {
		return fmt.Sprintf("unsupported entity type %s (handle %s)", e.Type, e.Handle)
	}
	return fmt.Sprintf("unsupported entity type %s", e.Type)
}

// Validate rejects degenerate geometry. tol is the endpoint-matching
// tolerance: a line shorter than tol would collapse to a point under
// chaining and is rejected as degenerate.
func Validate(e Entity, tol float64) error {
	switch v := e.(type) {
	case Line:
		if v.Length() <= tol {
			return DegenerateEntityError{Handle: v.Attributes.Handle, Reason: "zero-length line", At: v.A}
		}
	case Arc:
		if v.Radius <= 0 {
			return DegenerateEntityError{Handle: v.Attributes.Handle, Reason: fmt.Sprintf("radius %.4f is not positive", v.Radius), At: v.Center}
		}
		if PointsCoincide(v.PointAt(v.StartAngle), v.PointAt(v.EndAngle), tol) {
			return DegenerateEntityError{Handle: v.Attributes.Handle, Reason: "arc endpoints coincide; a full circle must be a CIRCLE entity", At: v.Center}
		}
	case Circle:
		if v.Radius <= 0 {
			return DegenerateEntityError{Handle: v.Attributes.Handle, Reason: fmt.Sprintf("radius %.4f is not positive", v.Radius), At: v.Center}
		}
	}
	return nil
}
