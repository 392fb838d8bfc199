package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"PageInk/internal/state"
)

const (
	inkWidth = 1.5
	dotSize  = 3.0
)

var (
	paperColor = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	inkColor   = color.Black
)

// boardRenderer draws the visible strokes of the current page as line
// segments mapped through the view transform.
type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	ink        []fyne.CanvasObject
}

func newBoardRenderer(b *BoardWidget) *boardRenderer {
	r := &boardRenderer{board: b, background: canvas.NewRectangle(paperColor)}
	r.rebuild()
	return r
}

func (r *boardRenderer) rebuild() {
	strokes := r.board.engine.Visible()
	t := r.board.engine.Transform()
	width := float32(inkWidth * t.Scale)

	r.ink = r.ink[:0]
	for _, s := range strokes {
		r.ink = append(r.ink, strokeObjects(s, t, width)...)
	}
}

func strokeObjects(s state.Stroke, t state.Transform, width float32) []fyne.CanvasObject {
	if len(s.Points) == 0 {
		return nil
	}
	if len(s.Points) == 1 {
		p := toPosition(t.Apply(s.Points[0]))
		dot := canvas.NewCircle(inkColor)
		dot.Resize(fyne.NewSquareSize(dotSize))
		dot.Move(p.SubtractXY(dotSize/2, dotSize/2))
		return []fyne.CanvasObject{dot}
	}
	objects := make([]fyne.CanvasObject, 0, len(s.Points)-1)
	for i := 0; i < len(s.Points)-1; i++ {
		segment := canvas.NewLine(inkColor)
		segment.StrokeWidth = width
		segment.Position1 = toPosition(t.Apply(s.Points[i]))
		segment.Position2 = toPosition(t.Apply(s.Points[i+1]))
		objects = append(objects, segment)
	}
	return objects
}

func toPosition(p state.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.ink)+1)
	objects = append(objects, r.background)
	return append(objects, r.ink...)
}

func (r *boardRenderer) Refresh() {
	r.rebuild()
	r.background.Refresh()
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Destroy() {}
