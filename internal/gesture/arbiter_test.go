package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PageInk/internal/config"
	"PageInk/internal/state"
)

func TestStylusDrawsStroke(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(10, 0), pt(10, 7))

	require.Equal(t, 1, r.store.Len())
	st, _ := r.store.Last()
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, pt(10, 7), st.Points[len(st.Points)-1])
	for i := 1; i < len(st.Points); i++ {
		assert.LessOrEqual(t, state.Distance(st.Points[i-1], st.Points[i]), state.MaxPointGap+1e-9)
	}
}

func TestMouseActsAsStylusWhenConfigured(t *testing.T) {
	r := newRig(t)
	r.send(
		ev(Down, Mouse, 0, 0, 0, 0),
		ev(Move, Mouse, 0, 6, 0, 10),
		ev(Up, Mouse, 0, 6, 0, 20),
	)
	assert.Equal(t, 1, r.store.Len())

	off := newRig(t, func(g *config.Gesture) { g.MouseAsStylus = false })
	off.send(
		ev(Down, Mouse, 0, 0, 0, 0),
		ev(Move, Mouse, 0, 6, 0, 10),
		ev(Up, Mouse, 0, 6, 0, 20),
	)
	assert.Zero(t, off.store.Len())
}

func TestSecondStylusContactIgnored(t *testing.T) {
	r := newRig(t)
	r.send(
		ev(Down, Stylus, 1, 0, 0, 0),
		ev(Move, Stylus, 1, 4, 0, 10),
		ev(Down, Stylus, 2, 100, 100, 20),
		ev(Move, Stylus, 2, 120, 100, 30),
		ev(Move, Stylus, 1, 8, 0, 40),
		ev(Up, Stylus, 2, 120, 100, 50),
		ev(Move, Stylus, 1, 10, 0, 60),
		ev(Up, Stylus, 1, 10, 0, 70),
	)
	require.Equal(t, 1, r.store.Len())
	st, _ := r.store.Last()
	for _, p := range st.Points {
		assert.Less(t, p.X, 11.0)
		assert.Zero(t, p.Y)
	}
	assert.Equal(t, pt(10, 0), st.Points[len(st.Points)-1])
}

func TestTwoFingerTapUndoes(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(5, 0))
	r.draw(pt(0, 10), pt(5, 10))

	r.send(
		ev(Down, Touch, 1, 100, 100, 0),
		ev(Down, Touch, 2, 200, 100, 5),
		ev(Move, Touch, 1, 102, 101, 20),
		ev(Up, Touch, 1, 102, 101, 60),
		ev(Up, Touch, 2, 200, 100, 70),
	)
	assert.Equal(t, 1, r.undos)
	assert.Equal(t, 1, r.store.Len())
	assert.Nil(t, r.touch.Winner(), "session over")
}

func TestSingleOrTripleTapDoesNotUndo(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(5, 0))

	r.send(ev(Down, Touch, 1, 100, 100, 0), ev(Up, Touch, 1, 100, 100, 10))
	r.send(
		ev(Down, Touch, 1, 100, 100, 0),
		ev(Down, Touch, 2, 150, 100, 0),
		ev(Down, Touch, 3, 200, 100, 0),
		ev(Up, Touch, 1, 100, 100, 10),
		ev(Up, Touch, 2, 150, 100, 10),
		ev(Up, Touch, 3, 200, 100, 10),
	)
	assert.Zero(t, r.undos)
	assert.Equal(t, 1, r.store.Len())
}

func TestCanceledTapDoesNotUndo(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(5, 0))
	r.send(
		ev(Down, Touch, 1, 100, 100, 0),
		ev(Down, Touch, 2, 200, 100, 0),
		ev(Cancel, Touch, 1, 100, 100, 10),
		ev(Cancel, Touch, 2, 200, 100, 10),
	)
	assert.Zero(t, r.undos)
}

func TestPinchBeatsTap(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(5, 0))

	r.send(
		ev(Down, Touch, 1, 100, 100, 0),
		ev(Down, Touch, 2, 200, 100, 0),
		ev(Move, Touch, 2, 250, 100, 10),
	)
	require.NotNil(t, r.touch.Winner())
	assert.Equal(t, "pinch", r.touch.Winner().Name())
	assert.InDelta(t, 1.5, r.view.Scale(), 1e-9)

	r.send(
		ev(Move, Touch, 2, 500, 100, 20),
		ev(Up, Touch, 1, 100, 100, 30),
		ev(Up, Touch, 2, 500, 100, 30),
	)
	assert.Equal(t, 2.0, r.view.Scale(), "clamped at max zoom")
	assert.Zero(t, r.undos)
	assert.Equal(t, 1, r.store.Len())
}

func TestPinchContinuesFromCurrentScale(t *testing.T) {
	r := newRig(t)
	r.send(
		ev(Down, Touch, 1, 0, 0, 0),
		ev(Down, Touch, 2, 100, 0, 0),
		ev(Move, Touch, 2, 150, 0, 10),
		ev(Up, Touch, 1, 0, 0, 20),
		ev(Up, Touch, 2, 150, 0, 20),
	)
	require.InDelta(t, 1.5, r.view.Scale(), 1e-9)

	r.send(
		ev(Down, Touch, 1, 0, 0, 30),
		ev(Down, Touch, 2, 100, 0, 30),
		ev(Move, Touch, 2, 60, 0, 40),
	)
	assert.InDelta(t, 0.9, r.view.Scale(), 1e-9)
}

func TestSwipeFlipsPages(t *testing.T) {
	r := newRig(t)
	r.send(
		ev(Down, Touch, 1, 0, 300, 0),
		ev(Move, Touch, 1, -130, 300, 10),
	)
	assert.Equal(t, 2, r.pages.Current())
	assert.Equal(t, "drag", r.touch.Winner().Name())

	r.send(
		ev(Move, Touch, 1, -300, 300, 20),
		ev(Up, Touch, 1, -300, 300, 30),
	)
	assert.Equal(t, 3, r.pages.Current())
}

func TestTwoFingerParallelDragBeatsTap(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(5, 0))
	r.send(
		ev(Down, Touch, 1, 300, 100, 0),
		ev(Down, Touch, 2, 300, 200, 0),
	)
	ms := 0
	for x := 290.0; x >= 150; x -= 10 {
		ms += 10
		r.send(ev(Move, Touch, 1, x, 100, ms), ev(Move, Touch, 2, x, 200, ms))
	}
	require.NotNil(t, r.touch.Winner())
	assert.Equal(t, "drag", r.touch.Winner().Name())
	r.send(
		ev(Up, Touch, 1, 150, 100, ms+10),
		ev(Up, Touch, 2, 150, 200, ms+10),
	)
	assert.Equal(t, 2, r.pages.Current())
	assert.Zero(t, r.undos)
	assert.Equal(t, 1.0, r.view.Scale())
}

func TestDragPansInPanMode(t *testing.T) {
	r := newRig(t, func(g *config.Gesture) { g.DragMode = config.DragPan })
	r.send(
		ev(Down, Touch, 1, 0, 0, 0),
		ev(Move, Touch, 1, -200, 40, 10),
		ev(Up, Touch, 1, -200, 40, 20),
	)
	assert.Equal(t, 1, r.pages.Current())
	tr := r.view.Transform()
	assert.Equal(t, -200.0, tr.TranslateX)
	assert.Equal(t, 40.0, tr.TranslateY)
}

func TestVelocityPanKeepsRecognizingMove(t *testing.T) {
	r := newRig(t, func(g *config.Gesture) {
		g.DragMode = config.DragPan
		g.PanPolicy = config.PanVelocity
		g.MaxPanVelocity = 3000
	})
	r.send(
		ev(Down, Touch, 1, 0, 0, 0),
		ev(Move, Touch, 1, 40, 0, 50),
	)
	assert.Equal(t, 40.0, r.view.Transform().TranslateX)

	r.send(ev(Up, Touch, 1, 40, 0, 60))
	assert.Equal(t, 40.0, r.view.Transform().TranslateX)
}

func TestVelocityPanClampsFlick(t *testing.T) {
	r := newRig(t, func(g *config.Gesture) {
		g.DragMode = config.DragPan
		g.PanPolicy = config.PanVelocity
		g.MaxPanVelocity = 1000
	})
	r.send(
		ev(Down, Touch, 1, 0, 0, 0),
		ev(Move, Touch, 1, 100, 0, 10),
		ev(Up, Touch, 1, 100, 0, 20),
	)
	assert.InDelta(t, 10.0, r.view.Transform().TranslateX, 1e-9)
}

func TestStylusAndTouchRunSimultaneously(t *testing.T) {
	r := newRig(t)
	r.send(
		ev(Down, Stylus, 9, 10, 10, 0),
		ev(Down, Touch, 1, 0, 300, 1),
		ev(Move, Stylus, 9, 14, 10, 2),
		ev(Move, Touch, 1, -140, 300, 3),
		ev(Move, Stylus, 9, 18, 10, 4),
		ev(Cancel, Touch, 1, -140, 300, 5),
		ev(Up, Stylus, 9, 18, 10, 6),
	)
	require.Equal(t, 1, r.store.Len(), "touch cancellation keeps ink")
	st, _ := r.store.Last()
	assert.Equal(t, 1, st.Page, "page fixed at stroke begin")
	assert.Equal(t, pt(18, 10), st.Points[len(st.Points)-1])
	assert.Equal(t, 2, r.pages.Current())
}

func TestStrokesKeepTheirPage(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(3, 0))
	r.send(
		ev(Down, Touch, 1, 0, 0, 0),
		ev(Move, Touch, 1, -200, 0, 10),
		ev(Up, Touch, 1, -200, 0, 20),
	)
	r.draw(pt(0, 0), pt(3, 0))

	got := r.store.Strokes()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Page)
	assert.Equal(t, 2, got[1].Page)
	assert.Len(t, r.store.OnPage("doc.pdf", 1), 1)
}

func TestUnknownPointerEventsIgnored(t *testing.T) {
	r := newRig(t)
	handled := r.arbiter.Handle(ev(Move, Touch, 5, 10, 10, 0))
	assert.Empty(t, handled)
	handled = r.arbiter.Handle(ev(Up, Stylus, 5, 10, 10, 0))
	assert.Empty(t, handled)
	assert.False(t, r.touch.Active())
}

func TestRecognizersRearmNextSession(t *testing.T) {
	r := newRig(t)
	r.draw(pt(0, 0), pt(5, 0))
	r.send(
		ev(Down, Touch, 1, 0, 0, 0),
		ev(Move, Touch, 1, -50, 0, 10),
		ev(Up, Touch, 1, -50, 0, 20),
	)
	r.send(
		ev(Down, Touch, 1, 0, 0, 30),
		ev(Down, Touch, 2, 50, 0, 30),
		ev(Up, Touch, 1, 0, 0, 40),
		ev(Up, Touch, 2, 50, 0, 40),
	)
	assert.Equal(t, 1, r.undos)
}

func TestCancelAll(t *testing.T) {
	r := newRig(t)
	r.send(
		ev(Down, Stylus, 9, 0, 0, 0),
		ev(Move, Stylus, 9, 6, 0, 10),
		ev(Down, Touch, 1, 0, 0, 10),
		ev(Down, Touch, 2, 40, 0, 10),
	)
	r.arbiter.CancelAll()

	assert.False(t, r.touch.Active())
	assert.False(t, r.builder.Open())
	assert.Equal(t, 1, r.store.Len())
	assert.Zero(t, r.undos)
}
