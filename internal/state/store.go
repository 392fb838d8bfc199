package state

import (
	"PageInk/internal/logging"
)

// StrokeStore is the ordered collection of strokes across all pages.
// Insertion order is draw order and undo order.
//
// A StrokeStore is not safe for concurrent use; the engine serializes
// access to it.
type StrokeStore struct {
	strokes []Stroke
	seq     sequence
	onOp    func(Op)
}

func NewStrokeStore() *StrokeStore {
	return &StrokeStore{}
}

// SetListener registers fn to receive every mutation. Pass nil to remove.
func (s *StrokeStore) SetListener(fn func(Op)) {
	s.onOp = fn
}

func (s *StrokeStore) emit(t OpType, st *Stroke) {
	op := Op{Type: t, Seq: s.seq.next()}
	if st != nil {
		c := st.Clone()
		op.Stroke = &c
	}
	if s.onOp != nil {
		s.onOp(op)
	}
}

// Append adds st to the end of the store, assigning an ID when it has none,
// and returns the stored copy.
func (s *StrokeStore) Append(st Stroke) Stroke {
	st = st.Clone()
	if st.ID == "" {
		st.ID = newStrokeID()
	}
	s.strokes = append(s.strokes, st)
	s.emit(OpInsertStroke, &st)
	logging.WithComponent("store").Debug("stroke appended", "id", st.ID, "page", st.Page, "count", len(s.strokes))
	return st.Clone()
}

// ExtendLast appends points to the last stroke if its ID is id. It reports
// false when the store is empty or the last stroke is a different one.
func (s *StrokeStore) ExtendLast(id string, points ...Point) bool {
	n := len(s.strokes)
	if n == 0 || s.strokes[n-1].ID != id {
		return false
	}
	last := &s.strokes[n-1]
	last.Points = append(last.Points, points...)
	s.emit(OpExtendStroke, last)
	return true
}

// Undo removes the most recently appended stroke, regardless of page.
// It is a no-op on an empty store.
func (s *StrokeStore) Undo() (Stroke, bool) {
	n := len(s.strokes)
	if n == 0 {
		return Stroke{}, false
	}
	removed := s.strokes[n-1]
	s.strokes[n-1] = Stroke{}
	s.strokes = s.strokes[:n-1]
	s.emit(OpDeleteStroke, &removed)
	logging.WithComponent("store").Debug("stroke undone", "id", removed.ID, "page", removed.Page, "count", n-1)
	return removed, true
}

// Clear removes every stroke.
func (s *StrokeStore) Clear() {
	s.strokes = nil
	s.emit(OpClear, nil)
}

func (s *StrokeStore) Len() int {
	return len(s.strokes)
}

// Last returns a copy of the most recent stroke.
func (s *StrokeStore) Last() (Stroke, bool) {
	if len(s.strokes) == 0 {
		return Stroke{}, false
	}
	return s.strokes[len(s.strokes)-1].Clone(), true
}

// Strokes returns copies of all strokes in store order.
func (s *StrokeStore) Strokes() []Stroke {
	out := make([]Stroke, len(s.strokes))
	for i, st := range s.strokes {
		out[i] = st.Clone()
	}
	return out
}

// OnPage returns copies of the strokes drawn on page of doc, in store order.
func (s *StrokeStore) OnPage(doc string, page int) []Stroke {
	var out []Stroke
	for _, st := range s.strokes {
		if st.Doc == doc && st.Page == page {
			out = append(out, st.Clone())
		}
	}
	return out
}

// Pages returns the highest page number used by doc, or 0.
func (s *StrokeStore) Pages(doc string) int {
	n := 0
	for _, st := range s.strokes {
		if st.Doc == doc && st.Page > n {
			n = st.Page
		}
	}
	return n
}
