package gesture

import (
	"time"

	"PageInk/internal/state"
)

type contact struct {
	id       int
	start    state.Point
	last     state.Point
	lastTime time.Time
}

// Session is the lifetime of one contact sequence within a group, from the
// first contact down to the last contact up or canceled.
type Session struct {
	contacts    []*contact // active, in down order
	maxContacts int
	maxDisp     float64

	// anchor is where the current primary contact was when it became
	// primary; primaryID tracks which contact that is.
	anchor     state.Point
	anchorTime time.Time
	primaryID  int

	// spreadStart is the distance between the first two contacts when that
	// pair formed; zero while fewer than two contacts are down.
	spreadStart float64
	pairA       int
	pairB       int

	primaryChanged bool
}

func newSession() *Session {
	return &Session{primaryID: -1, pairA: -1, pairB: -1}
}

func (s *Session) find(id int) (int, *contact) {
	for i, c := range s.contacts {
		if c.id == id {
			return i, c
		}
	}
	return -1, nil
}

// track applies e to the contact set and fills in e.Pointers. It reports
// false for events that do not belong to a known contact.
func (s *Session) track(e *Event) bool {
	s.primaryChanged = false
	i, c := s.find(e.Pointer)

	switch e.Phase {
	case Down:
		if c != nil {
			// Repeated down for a live contact; treat as a move.
			e.Phase = Move
			return s.track(e)
		}
		s.contacts = append(s.contacts, &contact{id: e.Pointer, start: e.Pos, last: e.Pos, lastTime: e.Time})
		s.maxContacts = max(s.maxContacts, len(s.contacts))
		e.Pointers = len(s.contacts)

	case Move:
		if c == nil {
			return false
		}
		c.last = e.Pos
		c.lastTime = e.Time
		s.maxDisp = max(s.maxDisp, state.Distance(c.start, e.Pos))
		e.Pointers = len(s.contacts)

	case Up, Cancel:
		if c == nil {
			return false
		}
		c.last = e.Pos
		c.lastTime = e.Time
		s.maxDisp = max(s.maxDisp, state.Distance(c.start, e.Pos))
		e.Pointers = len(s.contacts)
		s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
	}

	s.refresh()
	return true
}

func (s *Session) refresh() {
	if p := s.primary(); p == nil {
		s.primaryID = -1
	} else if p.id != s.primaryID {
		s.primaryChanged = s.primaryID != -1
		s.primaryID = p.id
		s.anchor = p.last
		s.anchorTime = p.lastTime
	}

	if len(s.contacts) < 2 {
		s.spreadStart, s.pairA, s.pairB = 0, -1, -1
		return
	}
	a, b := s.contacts[0], s.contacts[1]
	if a.id != s.pairA || b.id != s.pairB {
		s.pairA, s.pairB = a.id, b.id
		s.spreadStart = state.Distance(a.last, b.last)
	}
}

func (s *Session) primary() *contact {
	if len(s.contacts) == 0 {
		return nil
	}
	return s.contacts[0]
}

// Count is the number of contacts currently down.
func (s *Session) Count() int { return len(s.contacts) }

// MaxContacts is the largest number of simultaneous contacts seen.
func (s *Session) MaxContacts() int { return s.maxContacts }

// Ended reports whether every contact has lifted.
func (s *Session) Ended() bool { return len(s.contacts) == 0 }

// PrimaryID returns the id of the earliest contact still down, or -1.
func (s *Session) PrimaryID() int { return s.primaryID }

// PrimaryChanged reports whether the last tracked event handed the primary
// role to another contact.
func (s *Session) PrimaryChanged() bool { return s.primaryChanged }

// Anchor is the position of the primary contact when it became primary.
func (s *Session) Anchor() state.Point { return s.anchor }

// AnchorTime is when the primary contact was at its anchor.
func (s *Session) AnchorTime() time.Time { return s.anchorTime }

// PrimaryPos is the latest position of the primary contact.
func (s *Session) PrimaryPos() (state.Point, bool) {
	p := s.primary()
	if p == nil {
		return state.Point{}, false
	}
	return p.last, true
}

// Travel is how far the primary contact moved from its anchor.
func (s *Session) Travel() float64 {
	p := s.primary()
	if p == nil {
		return 0
	}
	return state.Distance(s.anchor, p.last)
}

// MovedBeyond reports whether any contact, lifted or not, strayed more than
// slop from where it went down.
func (s *Session) MovedBeyond(slop float64) bool {
	return s.maxDisp > slop
}

// Spread returns the current distance between the first two contacts and
// their distance when the pair formed.
func (s *Session) Spread() (cur, start float64, ok bool) {
	if len(s.contacts) < 2 {
		return 0, 0, false
	}
	return state.Distance(s.contacts[0].last, s.contacts[1].last), s.spreadStart, true
}

// SpreadRatio is the current distance between the first two contacts
// divided by their distance when the pair formed. ok is false with fewer
// than two contacts or a degenerate start.
func (s *Session) SpreadRatio() (ratio float64, ok bool) {
	if len(s.contacts) < 2 || s.spreadStart <= 0 {
		return 0, false
	}
	return state.Distance(s.contacts[0].last, s.contacts[1].last) / s.spreadStart, true
}
