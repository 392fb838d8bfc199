// Package export writes the ink layer of a document to a PDF file.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"PageInk/internal/document"
	"PageInk/internal/logging"
	"PageInk/internal/state"
)

// Options control how device coordinates map onto the exported page.
type Options struct {
	// UnitsPerPoint is how many device units make one PDF point.
	UnitsPerPoint float64
	// LineWidth is the stroke width in points.
	LineWidth float64
}

func DefaultOptions() Options {
	return Options{UnitsPerPoint: 1, LineWidth: 1}
}

// Render writes one PDF page per page of doc (or per annotated page, if
// more) with the strokes of doc drawn as black polylines.
func Render(w io.Writer, doc document.Info, strokes []state.Stroke, opts Options) error {
	if opts.UnitsPerPoint <= 0 {
		opts.UnitsPerPoint = 1
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}

	byPage := make(map[int][]state.Stroke)
	pages := doc.PageCount
	for _, st := range strokes {
		if st.Doc != doc.URI || len(st.Points) == 0 {
			continue
		}
		byPage[st.Page] = append(byPage[st.Page], st)
		pages = max(pages, st.Page)
	}
	pages = max(pages, 1)

	p := gofpdf.New("P", "pt", "A4", "")
	p.SetTitle(doc.Name()+" annotations", true)
	p.SetCreator("PageInk", true)

	k := 1 / opts.UnitsPerPoint
	for page := 1; page <= pages; page++ {
		p.AddPage()
		p.SetDrawColor(0, 0, 0)
		p.SetFillColor(0, 0, 0)
		p.SetLineWidth(opts.LineWidth)
		p.SetLineCapStyle("round")
		p.SetLineJoinStyle("round")

		for _, st := range byPage[page] {
			first := st.Points[0]
			if len(st.Points) == 1 {
				p.Circle(first.X*k, first.Y*k, opts.LineWidth/2, "F")
				continue
			}
			p.MoveTo(first.X*k, first.Y*k)
			for _, pt := range st.Points[1:] {
				p.LineTo(pt.X*k, pt.Y*k)
			}
			p.DrawPath("D")
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("render annotations: %w", err)
	}
	logging.WithComponent("export").Debug("annotations rendered", "doc", doc.URI, "pages", pages, "annotated", len(byPage))
	return nil
}

// WritePDF renders to the file at path, replacing it.
func WritePDF(path string, doc document.Info, strokes []state.Stroke, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := Render(f, doc, strokes, opts); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	logging.WithComponent("export").Info("annotations exported", "path", path)
	return nil
}
