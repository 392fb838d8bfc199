package ui

import (
	"fmt"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"PageInk/internal/engine"
	"PageInk/internal/export"
	"PageInk/internal/gesture"
	"PageInk/internal/logging"
	"PageInk/internal/state"
)

// Pointer ids used for local input. Bridge ids never collide with these.
const (
	mousePointer = 1
	dragPointer  = 2
	touchPointer = 3
)

// BoardWidget shows the current page's ink and turns fyne input into
// engine events. The primary mouse button inks, the secondary button drags
// like one finger, and the wheel zooms.
type BoardWidget struct {
	widget.BaseWidget

	engine    *engine.Engine
	zoomStep  float64
	now       func() time.Time
	statusBar *widget.Label

	button   desktop.MouseButton
	touching bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(e *engine.Engine, zoomStep float64) *BoardWidget {
	b := &BoardWidget{
		engine:    e,
		zoomStep:  zoomStep,
		now:       time.Now,
		statusBar: widget.NewLabel(""),
	}
	b.ExtendBaseWidget(b)
	b.statusBar.SetText(b.Status())
	e.OnChange(func() { fyne.Do(b.changed) })
	return b
}

func (b *BoardWidget) changed() {
	b.Refresh()
	b.statusBar.SetText(b.Status())
}

// Status describes the page and zoom for the status bar.
func (b *BoardWidget) Status() string {
	snap := b.engine.Snapshot()
	zoom := fmt.Sprintf("%.0f%%", snap.Transform.Scale*100)
	name := snap.Doc.Name()
	if name == "" {
		name = "No document"
	}
	if snap.Doc.PageCount > 0 {
		return fmt.Sprintf("%s  Page %d of %d  %s", name, snap.Page, snap.Doc.PageCount, zoom)
	}
	return fmt.Sprintf("%s  Page %d  %s", name, snap.Page, zoom)
}

func (b *BoardWidget) StatusBar() fyne.CanvasObject { return b.statusBar }

// ExportTo writes the annotation layer of every page of the open document
// as PDF.
func (b *BoardWidget) ExportTo(w io.Writer) error {
	doc, strokes := b.engine.Document(), b.engine.Strokes()
	if err := export.Render(w, doc, strokes, export.DefaultOptions()); err != nil {
		return err
	}
	logging.WithComponent("ui").Info("exported annotations", "document", doc.URI, "strokes", len(strokes))
	return nil
}

func (b *BoardWidget) send(phase gesture.Phase, typ gesture.PointerType, id int, pos fyne.Position) {
	b.engine.Handle(gesture.Event{
		Phase:   phase,
		Type:    typ,
		Pointer: id,
		Pos:     state.Point{X: float64(pos.X), Y: float64(pos.Y)},
		Time:    b.now(),
	})
}

// pressed maps the held mouse button to a pointer.
func (b *BoardWidget) pressed() (gesture.PointerType, int, bool) {
	switch b.button {
	case desktop.MouseButtonPrimary:
		return gesture.Mouse, mousePointer, true
	case desktop.MouseButtonSecondary:
		return gesture.Touch, dragPointer, true
	}
	return 0, 0, false
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.button != 0 || b.touching {
		return
	}
	b.button = e.Button
	typ, id, ok := b.pressed()
	if !ok {
		b.button = 0
		return
	}
	b.send(gesture.Down, typ, id, e.Position)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != b.button {
		return
	}
	if typ, id, ok := b.pressed(); ok {
		b.send(gesture.Up, typ, id, e.Position)
	}
	b.button = 0
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if typ, id, ok := b.pressed(); ok {
		b.send(gesture.Move, typ, id, e.Position)
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.touching {
		b.send(gesture.Move, gesture.Touch, touchPointer, e.Position)
		return
	}
	if typ, id, ok := b.pressed(); ok {
		b.send(gesture.Move, typ, id, e.Position)
	}
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	switch {
	case e.Scrolled.DY > 0:
		b.engine.ZoomBy(b.zoomStep)
	case e.Scrolled.DY < 0:
		b.engine.ZoomBy(1 / b.zoomStep)
	}
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	if b.touching {
		return
	}
	b.touching = true
	b.send(gesture.Down, gesture.Touch, touchPointer, e.Position)
}

func (b *BoardWidget) TouchUp(e *mobile.TouchEvent) {
	if !b.touching {
		return
	}
	b.touching = false
	b.send(gesture.Up, gesture.Touch, touchPointer, e.Position)
}

func (b *BoardWidget) TouchCancel(e *mobile.TouchEvent) {
	if !b.touching {
		return
	}
	b.touching = false
	b.send(gesture.Cancel, gesture.Touch, touchPointer, e.Position)
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return newBoardRenderer(b)
}
