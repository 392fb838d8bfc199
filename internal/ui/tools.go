package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PageInk/internal/logging"
)

// NewToolbar builds the page, view and history controls for board.
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	e := board.engine
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.NavigateBackIcon(), e.PrevPage),
		widget.NewToolbarAction(theme.NavigateNextIcon(), e.NextPage),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { e.ZoomBy(1 / board.zoomStep) }),
		widget.NewToolbarAction(theme.ZoomFitIcon(), e.ResetView),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { e.ZoomBy(board.zoomStep) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), e.Undo),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Clear", "Remove all ink?", func(ok bool) {
				if ok {
					e.Clear()
				}
			}, win)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { showExport(board, win) }),
	)
	return container.NewHBox(tb, layout.NewSpacer())
}

func showExport(board *BoardWidget, win fyne.Window) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logging.WithComponent("ui").Warn("closing export failed", "error", err)
			}
		}()
		if err := board.ExportTo(writer); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	save.SetFileName("annotations.pdf")
	save.Show()
}
