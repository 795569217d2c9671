package room

import "testing"

// buildMap constructs a MapData from a room set via ExtractConnections,
// mirroring how a solver turns its internal room array into wire output.
func buildMap(t *testing.T, rooms []Room, start int) *MapData {
	t.Helper()
	conns, err := ExtractConnections(rooms)
	if err != nil {
		t.Fatalf("ExtractConnections: %v", err)
	}
	labels := make([]int, len(rooms))
	for i, r := range rooms {
		labels[i] = int(r.Label)
	}
	return &MapData{RoomLabels: labels, StartRoom: start, Connections: conns}
}

func TestSimulateRoundTrip(t *testing.T) {
	rooms := threeRoomLoop()
	md := buildMap(t, rooms, 0)

	labels, err := md.Simulate("012")
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	want := []int{0, 1, 2, 0}
	if len(labels) != len(want) {
		t.Fatalf("got %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("got %v, want %v", labels, want)
		}
	}
}

func TestSimulateSelfLoopWalk(t *testing.T) {
	rooms := []Room{NewRoom()}
	rooms[0].Label = 0
	for j := range rooms[0].Doors {
		rooms[0].Doors[j] = 0
	}
	md := buildMap(t, rooms, 0)

	labels, err := md.Simulate("000000")
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	for _, l := range labels {
		if l != 0 {
			t.Fatalf("got %v, want all zeros", labels)
		}
	}
	if len(labels) != 7 {
		t.Fatalf("got %d labels, want 7", len(labels))
	}
}

func TestValidateWellFormedHistogram(t *testing.T) {
	rooms := threeRoomLoop()
	md := buildMap(t, rooms, 0)
	if err := md.ValidateWellFormed(); err != nil {
		t.Fatalf("ValidateWellFormed: %v", err)
	}

	// Skew the histogram: relabel every room to 0.
	for i := range md.RoomLabels {
		md.RoomLabels[i] = 0
	}
	if err := md.ValidateWellFormed(); err == nil {
		t.Fatal("expected histogram violation, got nil")
	}
}
