package gesture

import (
	"time"

	"PageInk/internal/logging"
	"PageInk/internal/state"
)

// Navigator tracks the displayed page. A horizontal drag past the swipe
// threshold flips one page and re-arms from the current position, so one
// long drag can flip several pages.
type Navigator struct {
	threshold float64
	clampMax  bool
	pageCount int

	page state.PageState

	dragging bool
	originX  float64
}

// NewNavigator starts on page 1. With clampMax set the page never exceeds
// a known page count.
func NewNavigator(threshold float64, clampMax bool) *Navigator {
	return &Navigator{threshold: threshold, clampMax: clampMax, page: state.PageState{Current: 1}}
}

func (n *Navigator) Current() int { return n.page.Current }

// SetPageCount records the document length; 0 means unknown.
func (n *Navigator) SetPageCount(count int) {
	n.pageCount = max(count, 0)
	n.Go(n.page.Current)
}

// Reset returns to page 1.
func (n *Navigator) Reset() {
	n.page.Current = 1
	n.dragging = false
}

// Go moves to page, clamped to the valid range.
func (n *Navigator) Go(page int) {
	if n.clampMax && n.pageCount > 0 {
		page = min(page, n.pageCount)
	}
	page = max(page, 1)
	if page != n.page.Current {
		logging.WithComponent("gesture").Debug("page changed", "from", n.page.Current, "to", page)
	}
	n.page.Current = page
}

func (n *Navigator) Next() { n.Go(n.page.Current + 1) }
func (n *Navigator) Prev() { n.Go(n.page.Current - 1) }

func (n *Navigator) BeginDrag(p state.Point, _ time.Time) {
	n.dragging = true
	n.originX = p.X
}

func (n *Navigator) UpdateDrag(p state.Point, at time.Time) {
	if !n.dragging {
		n.BeginDrag(p, at)
		return
	}
	delta := p.X - n.originX
	switch {
	case delta < -n.threshold:
		n.Next()
		n.originX = p.X
	case delta > n.threshold:
		n.Prev()
		n.originX = p.X
	}
}

func (n *Navigator) EndDrag() {
	n.dragging = false
}
