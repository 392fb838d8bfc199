// Package gesture turns a raw multi-touch pointer stream into strokes, view
// transform updates and page changes.
//
// Events are routed by pointer type into recognizer groups. The stylus
// group runs its recognizers simultaneously; the touch group races them,
// and the first recognizer to match owns the rest of the touch session.
package gesture

import (
	"fmt"
	"time"

	"PageInk/internal/state"
)

type PointerType int

const (
	Touch PointerType = iota
	Stylus
	Mouse
)

func (t PointerType) String() string {
	switch t {
	case Touch:
		return "touch"
	case Stylus:
		return "stylus"
	case Mouse:
		return "mouse"
	default:
		return fmt.Sprintf("PointerType(%d)", int(t))
	}
}

// ParsePointerType accepts the names returned by String.
func ParsePointerType(s string) (PointerType, error) {
	switch s {
	case "touch":
		return Touch, nil
	case "stylus", "pen":
		return Stylus, nil
	case "mouse":
		return Mouse, nil
	}
	return 0, fmt.Errorf("unknown pointer type %q", s)
}

type Phase int

const (
	Down Phase = iota
	Move
	Up
	Cancel
)

func (p Phase) String() string {
	switch p {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase accepts the names returned by String.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "down":
		return Down, nil
	case "move":
		return Move, nil
	case "up":
		return Up, nil
	case "cancel":
		return Cancel, nil
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// Ending reports whether the phase lifts its contact.
func (p Phase) Ending() bool {
	return p == Up || p == Cancel
}

// Event is one raw pointer sample.
type Event struct {
	Phase   Phase
	Pointer int
	Type    PointerType
	Pos     state.Point
	Time    time.Time

	// Pointers is the number of contacts of the same group that are down
	// while this event is handled, this one included. The arbiter fills
	// it in.
	Pointers int
}
