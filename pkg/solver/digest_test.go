package solver

import (
	"testing"

	"github.com/kagamiz/mapsolver/pkg/room"
)

func TestDigestStableForIdenticalState(t *testing.T) {
	rooms := []room.Room{room.NewRoom(), room.NewRoom()}
	rooms[0].Label = 1

	a := digest(rooms, 2, 1)
	b := digest(rooms, 2, 1)
	if a != b {
		t.Fatalf("identical states produced different digests: %q vs %q", a, b)
	}
}

func TestDigestDiffersOnLabelChange(t *testing.T) {
	rooms := []room.Room{room.NewRoom(), room.NewRoom()}
	base := digest(rooms, 0, 0)

	rooms[0].Label = 2
	changed := digest(rooms, 0, 0)

	if base == changed {
		t.Fatal("expected digest to change when a room label changes")
	}
}

func TestDigestDiffersOnDoorChange(t *testing.T) {
	rooms := []room.Room{room.NewRoom(), room.NewRoom()}
	base := digest(rooms, 0, 0)

	rooms[0].Doors[3] = 1
	changed := digest(rooms, 0, 0)

	if base == changed {
		t.Fatal("expected digest to change when a door-target changes")
	}
}

func TestDigestDiffersOnWalkPosition(t *testing.T) {
	rooms := []room.Room{room.NewRoom()}
	a := digest(rooms, 0, 0)
	b := digest(rooms, 1, 0)
	if a == b {
		t.Fatal("expected digest to change with walk index")
	}
}
