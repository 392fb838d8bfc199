// Package engine composes the stroke store, view transform, page state and
// gesture arbiter behind one input entry point. The renderer reads the
// results through copies; it never mutates engine state directly.
package engine

import (
	"sync"

	"PageInk/internal/config"
	"PageInk/internal/document"
	"PageInk/internal/gesture"
	"PageInk/internal/logging"
	"PageInk/internal/state"
)

// Engine is safe for concurrent use. Events are handled one at a time in
// arrival order.
type Engine struct {
	mu sync.RWMutex

	cfg     config.Config
	store   *state.StrokeStore
	view    *gesture.TransformController
	pages   *gesture.Navigator
	builder *gesture.StrokeBuilder
	arbiter *gesture.Arbiter
	doc     document.Info

	dirty    bool
	onChange func()
}

func New(cfg config.Config) *Engine {
	e := &Engine{
		cfg:   cfg,
		store: state.NewStrokeStore(),
		view:  gesture.NewTransformController(cfg.Gesture),
		pages: gesture.NewNavigator(cfg.Gesture.SwipeThreshold, cfg.Document.ClampToPageCount),
	}
	e.store.SetListener(func(state.Op) { e.dirty = true })
	e.builder = gesture.NewStrokeBuilder(e.store, gesture.LocatorFunc(e.location))

	var drag gesture.DragHandler = e.pages
	if cfg.Gesture.DragMode == config.DragPan {
		drag = e.view
	}
	ink := gesture.NewGroup("stylus", gesture.Simultaneous, []gesture.PointerType{gesture.Stylus},
		gesture.NewInkRecognizer(e.builder),
	)
	touch := gesture.NewGroup("touch", gesture.Race, []gesture.PointerType{gesture.Touch},
		gesture.NewPinchRecognizer(e.view, cfg.Gesture.PinchSlop),
		gesture.NewDragRecognizer(string(cfg.Gesture.DragMode), drag, cfg.Gesture.DragSlop),
		gesture.NewTapRecognizer("undo", 2, cfg.Gesture.TapSlop, e.undoLocked),
	)
	e.arbiter = gesture.NewArbiter(cfg.Gesture.MouseAsStylus, ink, touch)
	return e
}

// location is called by the stroke builder with mu held.
func (e *Engine) location() (string, int) {
	return e.doc.URI, e.pages.Current()
}

// OnChange registers fn to run after any event or call that changed what
// the renderer shows. fn runs without the engine lock held.
func (e *Engine) OnChange(fn func()) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// update runs fn under the write lock and fires the change callback if
// strokes, transform or page moved.
func (e *Engine) update(fn func()) {
	e.mu.Lock()
	beforeT, beforeP := e.view.Transform(), e.pages.Current()
	e.dirty = false
	fn()
	changed := e.dirty || e.view.Transform() != beforeT || e.pages.Current() != beforeP
	cb := e.onChange
	e.mu.Unlock()

	if changed && cb != nil {
		cb()
	}
}

// Handle feeds one pointer event through the arbiter. Positions are in view
// space; ink positions are mapped to page space before they reach the
// stroke builder so strokes stay attached to the page under zoom and pan.
func (e *Engine) Handle(ev gesture.Event) {
	e.update(func() {
		if ev.Type != gesture.Touch {
			ev.Pos = e.view.Transform().Invert(ev.Pos)
		}
		e.arbiter.Handle(ev)
	})
}

// Cancel ends every gesture in progress, e.g. when the window loses focus.
func (e *Engine) Cancel() {
	e.update(e.arbiter.CancelAll)
}

// Open switches to doc. The page resets to 1 and, under the reset policy,
// all strokes are dropped. Under the preserve policy earlier strokes stay
// in the store (and in undo order) but are hidden, because they belong to
// another document.
func (e *Engine) Open(doc document.Info) {
	e.update(func() {
		e.arbiter.CancelAll()
		if e.cfg.Document.OnOpen == config.OpenReset {
			e.store.Clear()
		}
		e.doc = doc
		e.pages.Reset()
		e.pages.SetPageCount(doc.PageCount)
		e.view.Reset()
		// Opening always changes what is shown.
		e.dirty = true
		logging.WithComponent("engine").Info("document opened",
			"uri", doc.URI, "pages", doc.PageCount, "policy", e.cfg.Document.OnOpen, "strokes", e.store.Len())
	})
}

// Refresh updates the page count of the open document without touching
// strokes or the current page beyond clamping.
func (e *Engine) Refresh(doc document.Info) {
	e.update(func() {
		if doc.URI != e.doc.URI {
			return
		}
		e.doc.PageCount = doc.PageCount
		e.pages.SetPageCount(doc.PageCount)
		e.dirty = true
	})
}

func (e *Engine) undoLocked() {
	if st, ok := e.store.Undo(); ok {
		logging.WithComponent("engine").Debug("undo", "stroke", st.ID, "page", st.Page)
	}
}

// Undo removes the most recent stroke on any page.
func (e *Engine) Undo() {
	e.update(e.undoLocked)
}

// Clear removes every stroke.
func (e *Engine) Clear() {
	e.update(e.store.Clear)
}

func (e *Engine) NextPage() { e.update(e.pages.Next) }
func (e *Engine) PrevPage() { e.update(e.pages.Prev) }

// GoToPage jumps to page, clamped like swipes are.
func (e *Engine) GoToPage(page int) {
	e.update(func() { e.pages.Go(page) })
}

// ZoomBy scales the view by factor, within the zoom bounds.
func (e *Engine) ZoomBy(factor float64) {
	e.update(func() { e.view.ZoomBy(factor) })
}

// ResetView restores scale 1 and no offset.
func (e *Engine) ResetView() {
	e.update(e.view.Reset)
}

// Visible returns the strokes of the open document's current page in draw
// order.
func (e *Engine) Visible() []state.Stroke {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.OnPage(e.doc.URI, e.pages.Current())
}

// Strokes returns every stroke in the store.
func (e *Engine) Strokes() []state.Stroke {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Strokes()
}

func (e *Engine) Transform() state.Transform {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.view.Transform()
}

func (e *Engine) Page() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pages.Current()
}

func (e *Engine) Document() document.Info {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// Snapshot is a consistent view of everything the renderer needs.
type Snapshot struct {
	Doc       document.Info
	Page      int
	Transform state.Transform
	Strokes   []state.Stroke
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Doc:       e.doc,
		Page:      e.pages.Current(),
		Transform: e.view.Transform(),
		Strokes:   e.store.OnPage(e.doc.URI, e.pages.Current()),
	}
}
