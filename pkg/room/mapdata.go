package room

import "fmt"

// MapData is the solved map: one label per room, the start room, and the
// 3N undirected connections forming the door matching. Field names and JSON
// tags match the oracle's guess payload shape exactly.
type MapData struct {
	RoomLabels  []int        `json:"rooms"`
	StartRoom   int          `json:"startingRoom"`
	Connections []Connection `json:"connections"`
}

// N returns the room count.
func (m *MapData) N() int {
	return len(m.RoomLabels)
}

// DoorTargets rebuilds each room's six door-targets from Connections. It is
// the inverse of ExtractConnections and is used by simulation and by
// visualization, which both want direct (room, door) -> room lookups rather
// than the undirected connection list.
func (m *MapData) DoorTargets() ([][Doors]int, error) {
	n := m.N()
	targets := make([][Doors]int, n)
	for i := range targets {
		for j := range targets[i] {
			targets[i][j] = int(Unknown)
		}
	}
	set := func(rd RoomDoor, to int) error {
		if rd.Room < 0 || rd.Room >= n || rd.Door < 0 || rd.Door >= Doors {
			return fmt.Errorf("connection references out-of-range door-end %+v", rd)
		}
		if targets[rd.Room][rd.Door] != int(Unknown) {
			return fmt.Errorf("door-end %+v is assigned by more than one connection", rd)
		}
		targets[rd.Room][rd.Door] = to
		return nil
	}
	for _, c := range m.Connections {
		if err := set(c.Src, c.Dst.Room); err != nil {
			return nil, err
		}
		if c.Src == c.Dst {
			continue
		}
		if err := set(c.Dst, c.Src.Room); err != nil {
			return nil, err
		}
	}
	for i, row := range targets {
		for j, t := range row {
			if t == int(Unknown) {
				return nil, fmt.Errorf("door-end {%d %d} is never assigned by any connection", i, j)
			}
		}
	}
	return targets, nil
}

// Simulate walks doors from StartRoom and returns the label sequence
// observed, including the starting room's label at index 0. It is the
// round-trip check every solver's output must satisfy.
func (m *MapData) Simulate(doors string) ([]int, error) {
	n := m.N()
	if m.StartRoom < 0 || m.StartRoom >= n {
		return nil, fmt.Errorf("start room %d out of range [0,%d)", m.StartRoom, n)
	}
	targets, err := m.DoorTargets()
	if err != nil {
		return nil, err
	}
	labels := make([]int, 0, len(doors)+1)
	current := m.StartRoom
	labels = append(labels, m.RoomLabels[current])
	for _, d := range doors {
		if d < '0' || d > '5' {
			return nil, fmt.Errorf("invalid door digit %q", d)
		}
		current = targets[current][d-'0']
		labels = append(labels, m.RoomLabels[current])
	}
	return labels, nil
}

// ValidateWellFormed checks the matching well-formedness and label
// histogram invariants: every one of the 6N door-ends appears in exactly one
// connection (self-loops included), and each label count falls within
// {floor(N/4), ceil(N/4)}. The connection count itself is not checked
// directly: a matching with S self-loops has 3N+S/2 connections rather than
// a constant 3N, since a self-loop closes a door-end against itself instead
// of consuming a second door-end the way an ordinary edge does.
func (m *MapData) ValidateWellFormed() error {
	n := m.N()
	if n == 0 {
		return fmt.Errorf("map has no rooms")
	}
	if _, err := m.DoorTargets(); err != nil {
		return fmt.Errorf("matching well-formedness: %w", err)
	}

	counts := make([]int, NumLabels)
	for _, l := range m.RoomLabels {
		if !ValidLabel(l) {
			return fmt.Errorf("room label %d out of range", l)
		}
		counts[l]++
	}
	min, max := LabelBounds(n)
	for l, c := range counts {
		if c < min || c > max {
			return fmt.Errorf("label %d appears %d times, want in [%d,%d]", l, c, min, max)
		}
	}
	return nil
}
