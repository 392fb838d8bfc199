package gesture

import (
	"PageInk/internal/logging"
)

// Recognizer interprets the events of one group session.
//
// Matches must not change state. In a race group it is asked only until
// some recognizer wins the session; the winner then receives every later
// event of that session through Handle. In a simultaneous group every
// matching recognizer handles every event.
type Recognizer interface {
	Name() string
	Matches(s *Session, e Event) bool
	Handle(s *Session, e Event)
	// Reset drops per-session state. It is called on every recognizer of
	// the group when its session ends.
	Reset()
}

// Mode says how the recognizers of a group compose.
type Mode int

const (
	// Race hands the session to the first recognizer that matches.
	Race Mode = iota
	// Simultaneous delivers to every recognizer that matches.
	Simultaneous
)

// Group is a set of recognizers fed by one kind of pointer.
type Group struct {
	name        string
	mode        Mode
	accept      func(PointerType) bool
	recognizers []Recognizer

	session *Session
	winner  Recognizer
}

// NewGroup builds a group that receives the pointer types listed in types.
// Recognizer order is priority order for Race groups.
func NewGroup(name string, mode Mode, types []PointerType, recognizers ...Recognizer) *Group {
	set := make(map[PointerType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return &Group{
		name:        name,
		mode:        mode,
		accept:      func(t PointerType) bool { return set[t] },
		recognizers: recognizers,
	}
}

// Winner returns the recognizer that owns the current race session.
func (g *Group) Winner() Recognizer { return g.winner }

// Active reports whether the group has a session in progress.
func (g *Group) Active() bool { return g.session != nil }

// dispatch delivers e and returns the recognizer names that handled it.
func (g *Group) dispatch(e Event) []string {
	if g.session == nil {
		if e.Phase != Down {
			return nil
		}
		g.session = newSession()
	}
	if !g.session.track(&e) {
		return nil
	}

	var handled []string
	switch g.mode {
	case Simultaneous:
		for _, r := range g.recognizers {
			if r.Matches(g.session, e) {
				r.Handle(g.session, e)
				handled = append(handled, r.Name())
			}
		}
	case Race:
		if g.winner == nil {
			for _, r := range g.recognizers {
				if r.Matches(g.session, e) {
					g.winner = r
					logging.WithComponent("gesture").Debug("recognizer won session",
						"group", g.name, "recognizer", r.Name(), "contacts", g.session.Count())
					break
				}
			}
		}
		if g.winner != nil {
			g.winner.Handle(g.session, e)
			handled = append(handled, g.winner.Name())
		}
	}

	if g.session.Ended() {
		g.end()
	}
	return handled
}

func (g *Group) end() {
	for _, r := range g.recognizers {
		r.Reset()
	}
	g.session = nil
	g.winner = nil
}

// Arbiter routes each input event to the groups that accept its pointer
// type. Groups are independent: a touch race never cancels ink.
type Arbiter struct {
	groups []*Group
	// mouseAsStylus rewrites mouse events to stylus before routing.
	mouseAsStylus bool
}

func NewArbiter(mouseAsStylus bool, groups ...*Group) *Arbiter {
	return &Arbiter{groups: groups, mouseAsStylus: mouseAsStylus}
}

// Handle routes e and returns the names of the recognizers that consumed
// it. Events nobody accepts are dropped silently.
func (a *Arbiter) Handle(e Event) []string {
	if e.Type == Mouse && a.mouseAsStylus {
		e.Type = Stylus
	}
	var handled []string
	for _, g := range a.groups {
		if g.accept(e.Type) {
			handled = append(handled, g.dispatch(e)...)
		}
	}
	if len(handled) == 0 {
		logging.WithComponent("gesture").Debug("event ignored",
			"phase", e.Phase, "type", e.Type, "pointer", e.Pointer)
	}
	return handled
}

// CancelAll ends every group session as if all contacts were canceled.
// Strokes already drawn stay in the store.
func (a *Arbiter) CancelAll() {
	for _, g := range a.groups {
		if g.session == nil {
			continue
		}
		for _, c := range append([]*contact(nil), g.session.contacts...) {
			g.dispatch(Event{Phase: Cancel, Pointer: c.id, Type: g.typeOf(), Pos: c.last, Time: c.lastTime})
		}
		if g.session != nil {
			g.end()
		}
	}
}

// typeOf returns a pointer type this group accepts, for synthesized events.
func (g *Group) typeOf() PointerType {
	for _, t := range []PointerType{Stylus, Touch, Mouse} {
		if g.accept(t) {
			return t
		}
	}
	return Touch
}
