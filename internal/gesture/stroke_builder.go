package gesture

import (
	"PageInk/internal/logging"
	"PageInk/internal/state"
)

// Locator reports where new ink lands: the open document and its
// currently displayed page.
type Locator interface {
	Location() (doc string, page int)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func() (string, int)

func (f LocatorFunc) Location() (string, int) { return f() }

// StrokeBuilder turns a single stylus contact into a stroke in the store.
// Only stylus events with exactly one concurrent stylus contact are
// accepted; everything else is ignored.
type StrokeBuilder struct {
	store *state.StrokeStore
	where Locator

	// Open stroke, valid between Begin and End.
	openID string
	prev   state.Point
	open   bool
}

func NewStrokeBuilder(store *state.StrokeStore, where Locator) *StrokeBuilder {
	return &StrokeBuilder{store: store, where: where}
}

func accepts(e Event) bool {
	return e.Type == Stylus && e.Pointers == 1
}

// Open reports whether a stroke is in progress.
func (b *StrokeBuilder) Open() bool { return b.open }

// Begin starts a new stroke at e.Pos on the current page.
func (b *StrokeBuilder) Begin(e Event) {
	if !accepts(e) {
		return
	}
	doc, page := b.where.Location()
	st := b.store.Append(state.Stroke{Doc: doc, Page: page, Points: []state.Point{e.Pos}})
	b.openID = st.ID
	b.prev = e.Pos
	b.open = true
}

// Update extends the open stroke to e.Pos through interpolated points. If
// the open stroke is gone (never begun, or no longer last in the store) the
// event starts a fresh stroke instead.
func (b *StrokeBuilder) Update(e Event) {
	if !accepts(e) {
		return
	}
	if !b.open {
		logging.WithComponent("gesture").Debug("stroke update without open stroke, starting new one")
		b.Begin(e)
		return
	}
	pts := state.Interpolate(b.prev, e.Pos)
	if len(pts) > 1 {
		pts = pts[1:]
	} else {
		// Same position as before; nothing to add.
		pts = nil
	}
	if len(pts) > 0 && !b.store.ExtendLast(b.openID, pts...) {
		logging.WithComponent("gesture").Debug("open stroke lost, starting new one", "id", b.openID)
		b.open = false
		b.Begin(e)
		return
	}
	b.prev = e.Pos
}

// End closes the stroke. The stroke stays in the store.
func (b *StrokeBuilder) End(e Event) {
	if e.Type != Stylus {
		return
	}
	b.open = false
	b.openID = ""
	b.prev = state.Point{}
}
