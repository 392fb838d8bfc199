package state

import (
	"github.com/google/uuid"
)

// sequence hands out increasing op numbers for one store.
type sequence struct {
	n uint64
}

func (s *sequence) next() uint64 {
	s.n++
	return s.n
}

func newStrokeID() string {
	return uuid.NewString()
}
