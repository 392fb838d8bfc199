package gesture

import (
	"math"
	"time"

	"PageInk/internal/state"
)

// DragHandler receives the motion of a recognized drag.
type DragHandler interface {
	BeginDrag(p state.Point, at time.Time)
	UpdateDrag(p state.Point, at time.Time)
	EndDrag()
}

// InkRecognizer feeds stylus events to a StrokeBuilder.
type InkRecognizer struct {
	builder *StrokeBuilder
}

func NewInkRecognizer(b *StrokeBuilder) *InkRecognizer {
	return &InkRecognizer{builder: b}
}

func (r *InkRecognizer) Name() string { return "ink" }

func (r *InkRecognizer) Matches(s *Session, e Event) bool {
	return e.Type == Stylus
}

func (r *InkRecognizer) Handle(s *Session, e Event) {
	switch e.Phase {
	case Down:
		r.builder.Begin(e)
	case Move:
		if e.Pointer == s.PrimaryID() {
			r.builder.Update(e)
		}
	case Up, Cancel:
		// Only the primary contact lifting closes the stroke.
		if s.Ended() || s.PrimaryChanged() {
			r.builder.End(e)
		}
	}
}

func (r *InkRecognizer) Reset() {}

// PinchRecognizer zooms when the distance between the first two touch
// contacts changes by more than slop units. It reports the scale at pinch
// start times the spread ratio, so a new pinch continues from the current
// zoom.
type PinchRecognizer struct {
	view *TransformController
	slop float64

	active     bool
	startScale float64
}

func NewPinchRecognizer(view *TransformController, slop float64) *PinchRecognizer {
	return &PinchRecognizer{view: view, slop: slop}
}

func (r *PinchRecognizer) Name() string { return "pinch" }

func (r *PinchRecognizer) Matches(s *Session, e Event) bool {
	if e.Phase != Move || s.Count() < 2 {
		return false
	}
	cur, start, ok := s.Spread()
	return ok && math.Abs(cur-start) > r.slop
}

func (r *PinchRecognizer) Handle(s *Session, e Event) {
	ratio, ok := s.SpreadRatio()
	if !ok {
		// A finger lifted; wait for a new pair.
		r.active = false
		return
	}
	if !r.active {
		r.active = true
		// The pair may have just re-formed, so ratio is relative to now.
		r.startScale = r.view.Scale()
	}
	r.view.Pinch(r.startScale * ratio)
}

func (r *PinchRecognizer) Reset() {
	r.active = false
	r.startScale = 0
}

// DragRecognizer reports the primary touch contact's motion to a
// DragHandler once it travels more than slop.
type DragRecognizer struct {
	name   string
	target DragHandler
	slop   float64

	active bool
}

func NewDragRecognizer(name string, target DragHandler, slop float64) *DragRecognizer {
	return &DragRecognizer{name: name, target: target, slop: slop}
}

func (r *DragRecognizer) Name() string { return r.name }

func (r *DragRecognizer) Matches(s *Session, e Event) bool {
	return e.Phase == Move && s.Count() >= 1 && s.Travel() > r.slop
}

func (r *DragRecognizer) Handle(s *Session, e Event) {
	if s.Ended() {
		if r.active {
			r.target.EndDrag()
		}
		r.active = false
		return
	}
	pos, ok := s.PrimaryPos()
	if !ok {
		return
	}
	if !r.active || s.PrimaryChanged() {
		r.active = true
		r.target.BeginDrag(s.Anchor(), s.AnchorTime())
	}
	if e.Pointer == s.PrimaryID() {
		r.target.UpdateDrag(pos, e.Time)
	}
}

func (r *DragRecognizer) Reset() {
	if r.active {
		r.target.EndDrag()
	}
	r.active = false
}

// TapRecognizer fires when a session ends after exactly count contacts
// were down together and none of them moved beyond slop.
type TapRecognizer struct {
	name   string
	count  int
	slop   float64
	action func()
}

func NewTapRecognizer(name string, count int, slop float64, action func()) *TapRecognizer {
	return &TapRecognizer{name: name, count: count, slop: slop, action: action}
}

func (r *TapRecognizer) Name() string { return r.name }

func (r *TapRecognizer) Matches(s *Session, e Event) bool {
	return e.Phase == Up && s.Ended() && s.MaxContacts() == r.count && !s.MovedBeyond(r.slop)
}

func (r *TapRecognizer) Handle(s *Session, e Event) {
	if r.action != nil {
		r.action()
	}
}

func (r *TapRecognizer) Reset() {}
