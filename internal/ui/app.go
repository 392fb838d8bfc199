package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"PageInk/internal/engine"
)

// RunApp opens the main window on e and blocks until it closes. A
// non-empty shareAddr is shown so a tablet can be pointed at the bridge.
func RunApp(e *engine.Engine, zoomStep float64, shareAddr string) {
	a := app.NewWithID("app.pageink")
	win := a.NewWindow("PageInk")
	board := NewBoardWidget(e, zoomStep)
	win.SetOnClosed(e.Cancel)
	win.Resize(fyne.NewSize(1024, 768))

	bottom := board.StatusBar()
	if shareAddr != "" {
		bottom = container.NewBorder(nil, nil, nil, widget.NewLabel("Tablet: "+shareAddr), bottom)
	}
	content := container.NewBorder(NewToolbar(board, win), bottom, nil, nil, board)

	win.SetContent(content)
	win.ShowAndRun()
}
