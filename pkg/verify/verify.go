package verify

import (
	"fmt"

	"github.com/kagamiz/mapsolver/pkg/room"
	"github.com/kagamiz/mapsolver/pkg/unionfind"
)

// Verify checks m against the walk (doors, labels) that produced it,
// covering every invariant a solved map must satisfy: the round-trip
// simulation must reproduce labels exactly, the door matching must be
// well-formed (every one of the 6N door-ends used exactly once), the label
// histogram must be as even as N allows, and the map must be a single
// connected component reachable from m.StartRoom.
func Verify(n int, doors string, labels []int, m *room.MapData) *Report {
	r := newReport()

	if m.N() != n {
		r.record("room-count", false, fmt.Sprintf("map has %d rooms, want %d", m.N(), n))
		return r
	}

	checkRoundTrip(r, doors, labels, m)
	checkWellFormed(r, m)
	checkConnectivity(r, m)

	return r
}

func checkRoundTrip(r *Report, doors string, labels []int, m *room.MapData) {
	got, err := m.Simulate(doors)
	if err != nil {
		r.record("round-trip", false, err.Error())
		return
	}
	if len(got) != len(labels) {
		r.record("round-trip", false, fmt.Sprintf("simulated %d labels, want %d", len(got), len(labels)))
		return
	}
	for i := range got {
		if got[i] != labels[i] {
			r.record("round-trip", false, fmt.Sprintf("label %d: simulated %d, observed %d", i, got[i], labels[i]))
			return
		}
	}
	r.record("round-trip", true, fmt.Sprintf("all %d observed labels reproduced", len(labels)))
}

func checkWellFormed(r *Report, m *room.MapData) {
	if err := m.ValidateWellFormed(); err != nil {
		r.record("well-formed", false, err.Error())
		return
	}
	r.record("well-formed", true, fmt.Sprintf("%d connections over %d doors", len(m.Connections), m.N()*room.Doors))
}

// checkConnectivity reports whether every room is reachable from StartRoom,
// using pkg/unionfind to union the matching's implied door-targets — the
// same structure DFS's own connectivity prune uses, repurposed here as a
// post-hoc check on a finished map rather than a mid-search pruning test.
func checkConnectivity(r *Report, m *room.MapData) {
	targets, err := m.DoorTargets()
	if err != nil {
		r.record("connectivity", false, err.Error())
		return
	}

	uf := unionfind.New(m.N())
	for i, row := range targets {
		for _, to := range row {
			uf.Union(i, to)
		}
	}

	var unreachable []int
	for i := 0; i < m.N(); i++ {
		if !uf.Connected(m.StartRoom, i) {
			unreachable = append(unreachable, i)
		}
	}
	if len(unreachable) > 0 {
		r.record("connectivity", false, fmt.Sprintf("rooms unreachable from start room %d: %v", m.StartRoom, unreachable))
		return
	}
	r.record("connectivity", true, fmt.Sprintf("all %d rooms reachable from start room %d", m.N(), m.StartRoom))
}
