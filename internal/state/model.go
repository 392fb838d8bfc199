package state

import "math"

// Point is a device-space coordinate.
type Point struct{ X, Y float64 }

// Stroke is one continuous ink path, tagged with the document and page it
// was drawn on.
type Stroke struct {
	ID     string
	Doc    string
	Page   int
	Points []Point
}

// Clone returns a copy that shares no memory with s.
func (s Stroke) Clone() Stroke {
	c := s
	c.Points = append([]Point(nil), s.Points...)
	return c
}

type OpType string

const (
	OpInsertStroke OpType = "insert_stroke"
	OpExtendStroke OpType = "extend_stroke"
	OpDeleteStroke OpType = "delete_stroke"
	OpClear        OpType = "clear"
)

// Op describes one mutation of a StrokeStore. Stroke is nil for OpClear.
type Op struct {
	Type   OpType
	Stroke *Stroke
	Seq    uint64
}

// Transform is the zoom and pan applied to the composited page and ink.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// IdentityTransform is scale 1 with no offset.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Apply maps a content point to view space.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.Scale + t.TranslateX, Y: p.Y*t.Scale + t.TranslateY}
}

// Invert maps a view point back to content space. A zero scale is treated
// as identity.
func (t Transform) Invert(p Point) Point {
	if t.Scale == 0 || math.IsNaN(t.Scale) {
		return p
	}
	return Point{X: (p.X - t.TranslateX) / t.Scale, Y: (p.Y - t.TranslateY) / t.Scale}
}

// PageState is the 1-based index of the displayed page.
type PageState struct {
	Current int
}
