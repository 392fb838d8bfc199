package gesture

import (
	"testing"
	"time"

	"PageInk/internal/config"
	"PageInk/internal/state"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

func pt(x, y float64) state.Point { return state.Point{X: x, Y: y} }

func ev(phase Phase, typ PointerType, id int, x, y float64, ms int) Event {
	return Event{Phase: phase, Type: typ, Pointer: id, Pos: pt(x, y), Time: at(ms)}
}

// rig wires the gesture components the way the engine does.
type rig struct {
	cfg     config.Gesture
	store   *state.StrokeStore
	view    *TransformController
	pages   *Navigator
	builder *StrokeBuilder
	arbiter *Arbiter
	touch   *Group
	undos   int
}

func newRig(t *testing.T, mutate ...func(*config.Gesture)) *rig {
	t.Helper()
	cfg := config.Default().Gesture
	for _, m := range mutate {
		m(&cfg)
	}
	r := &rig{cfg: cfg, store: state.NewStrokeStore()}
	r.view = NewTransformController(cfg)
	r.pages = NewNavigator(cfg.SwipeThreshold, true)
	r.builder = NewStrokeBuilder(r.store, LocatorFunc(func() (string, int) { return "doc.pdf", r.pages.Current() }))

	var drag DragHandler = r.pages
	if cfg.DragMode == config.DragPan {
		drag = r.view
	}
	r.touch = NewGroup("touch", Race, []PointerType{Touch},
		NewPinchRecognizer(r.view, cfg.PinchSlop),
		NewDragRecognizer("drag", drag, cfg.DragSlop),
		NewTapRecognizer("undo", 2, cfg.TapSlop, func() {
			r.undos++
			r.store.Undo()
		}),
	)
	ink := NewGroup("stylus", Simultaneous, []PointerType{Stylus}, NewInkRecognizer(r.builder))
	r.arbiter = NewArbiter(cfg.MouseAsStylus, ink, r.touch)
	return r
}

func (r *rig) send(events ...Event) {
	for _, e := range events {
		r.arbiter.Handle(e)
	}
}

// draw sends a complete stylus stroke through the given points, lifting
// at the last one.
func (r *rig) draw(points ...state.Point) {
	for i, p := range points {
		phase := Move
		if i == 0 {
			phase = Down
		}
		r.send(Event{Phase: phase, Type: Stylus, Pointer: 100, Pos: p, Time: at(i * 10)})
	}
	last := points[len(points)-1]
	r.send(Event{Phase: Up, Type: Stylus, Pointer: 100, Pos: last, Time: at(len(points) * 10)})
}
