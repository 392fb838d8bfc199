// Package document opens the PDF being annotated. Only the facts the
// annotation engine needs are read: where the file is and how many pages
// it has. Rendering belongs to the viewer.
package document

import (
	"errors"
	"fmt"
	"path/filepath"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// ErrNoPages is returned for documents whose page tree is empty.
var ErrNoPages = errors.New("document has no pages")

// Info describes an opened document. A zero PageCount means the count is
// unknown.
type Info struct {
	URI       string
	PageCount int
}

// Name is the file name part of the URI.
func (i Info) Name() string {
	if i.URI == "" {
		return ""
	}
	return filepath.Base(i.URI)
}

// Open reads the page count of the PDF at path.
func Open(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{}, fmt.Errorf("open document: %w", err)
	}
	r, err := pdf.Open(abs)
	if err != nil {
		return Info{}, fmt.Errorf("open document %s: %w", abs, err)
	}
	defer r.Close()

	n, err := pagetree.NumPages(r)
	if err != nil {
		return Info{}, fmt.Errorf("read page tree of %s: %w", abs, err)
	}
	if n == 0 {
		return Info{}, fmt.Errorf("open document %s: %w", abs, ErrNoPages)
	}
	return Info{URI: abs, PageCount: n}, nil
}
