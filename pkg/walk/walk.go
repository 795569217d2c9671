package walk

import (
	"fmt"

	"github.com/kagamiz/mapsolver/pkg/room"
)

// Walk is the oracle's reply to a single /explore call: the door digits
// submitted and the label sequence observed, including the starting room's
// label at index 0. Once constructed by New, a Walk is never mutated.
type Walk struct {
	N      int
	Doors  string
	Labels []int
}

// New validates and constructs a Walk. It rejects, with ErrInconsistentInput,
// any digit outside '0'..'5', any label outside {0,1,2,3}, a labels slice
// whose length isn't len(doors)+1, and n < 1.
func New(n int, doors string, labels []int) (*Walk, error) {
	if n < 1 {
		return nil, fmt.Errorf("room count %d: %w", n, ErrInconsistentInput)
	}
	for i, d := range doors {
		if d < '0' || d > '5' {
			return nil, fmt.Errorf("door digit %q at position %d: %w", d, i, ErrInconsistentInput)
		}
	}
	if len(labels) != len(doors)+1 {
		return nil, fmt.Errorf("%d labels for a %d-digit walk, want %d: %w",
			len(labels), len(doors), len(doors)+1, ErrInconsistentInput)
	}
	for i, l := range labels {
		if !room.ValidLabel(l) {
			return nil, fmt.Errorf("label %d at position %d: %w", l, i, ErrInconsistentInput)
		}
	}
	return &Walk{N: n, Doors: doors, Labels: labels}, nil
}

// Len returns the number of door traversals (len(Doors) == len(Labels)-1).
func (w *Walk) Len() int {
	return len(w.Doors)
}

// DoorAt returns the door digit at step i as an int in [0,6).
func (w *Walk) DoorAt(i int) int {
	return int(w.Doors[i] - '0')
}
