package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PageInk/internal/state"
)

func newBuilder(page *int) (*StrokeBuilder, *state.StrokeStore) {
	store := state.NewStrokeStore()
	b := NewStrokeBuilder(store, LocatorFunc(func() (string, int) { return "doc.pdf", *page }))
	return b, store
}

func stylus(phase Phase, x, y float64) Event {
	return Event{Phase: phase, Type: Stylus, Pointer: 1, Pos: pt(x, y), Pointers: 1}
}

func TestBuilderKeepsPointsWithinGap(t *testing.T) {
	page := 1
	b, store := newBuilder(&page)

	b.Begin(stylus(Down, 0, 0))
	b.Update(stylus(Move, 7, 3))
	b.Update(stylus(Move, 7, 3))
	b.Update(stylus(Move, -20, 41))
	b.Update(stylus(Move, -19.5, 41))
	b.End(stylus(Up, -19.5, 41))

	require.Equal(t, 1, store.Len())
	st, _ := store.Last()
	require.GreaterOrEqual(t, len(st.Points), 2)
	assert.Equal(t, pt(0, 0), st.Points[0])
	assert.Equal(t, pt(-19.5, 41), st.Points[len(st.Points)-1])
	for i := 1; i < len(st.Points); i++ {
		assert.LessOrEqual(t, state.Distance(st.Points[i-1], st.Points[i]), state.MaxPointGap+1e-9, "gap at %d", i)
		assert.NotEqual(t, st.Points[i-1], st.Points[i], "duplicate point at %d", i)
	}
	assert.False(t, b.Open())
}

func TestBuilderTagsPageAtBegin(t *testing.T) {
	page := 4
	b, store := newBuilder(&page)

	b.Begin(stylus(Down, 0, 0))
	page = 5
	b.Update(stylus(Move, 10, 0))
	b.End(stylus(Up, 10, 0))

	st, _ := store.Last()
	assert.Equal(t, 4, st.Page)
	assert.Equal(t, "doc.pdf", st.Doc)
}

func TestBuilderIgnoresOutOfPolicyEvents(t *testing.T) {
	page := 1
	b, store := newBuilder(&page)

	touch := stylus(Down, 0, 0)
	touch.Type = Touch
	b.Begin(touch)

	two := stylus(Down, 0, 0)
	two.Pointers = 2
	b.Begin(two)

	assert.Zero(t, store.Len())
	assert.False(t, b.Open())
}

func TestBuilderUpdateWithoutBeginStartsStroke(t *testing.T) {
	page := 2
	b, store := newBuilder(&page)

	b.Update(stylus(Move, 5, 5))
	require.Equal(t, 1, store.Len())
	st, _ := store.Last()
	assert.Equal(t, []state.Point{pt(5, 5)}, st.Points)
	assert.Equal(t, 2, st.Page)

	b.Update(stylus(Move, 9, 5))
	st, _ = store.Last()
	assert.Equal(t, pt(9, 5), st.Points[len(st.Points)-1])
}

func TestBuilderRecoversWhenOpenStrokeUndone(t *testing.T) {
	page := 1
	b, store := newBuilder(&page)

	b.Begin(stylus(Down, 0, 0))
	b.Update(stylus(Move, 4, 0))
	store.Undo()

	b.Update(stylus(Move, 50, 0))
	require.Equal(t, 1, store.Len())
	st, _ := store.Last()
	assert.Equal(t, []state.Point{pt(50, 0)}, st.Points, "fresh stroke, no line from the undone one")
}
