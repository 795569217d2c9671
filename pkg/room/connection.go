package room

import "fmt"

// ExtractConnections pairs every door-end of a fully-determined room set
// into the 3N undirected Connections that make up the map's matching. Every
// room.Doors[j] must already name a room index in [0,N); ErrLogicError
// panics-by-error if that invariant is violated elsewhere in the pipeline.
//
// Door-ends are scanned in lexicographic (room, door) order. For each
// unpaired end (i,j) pointing at dst, the smallest unused door k of dst such
// that dst's door k also points back at i is its partner; this deterministic
// tie-break is the only sound choice when i has two doors both aimed at dst
// and dst reciprocates with two doors aimed at i. A door whose only possible
// partner is itself (dst == i and no other candidate) is a self-loop.
func ExtractConnections(rooms []Room) ([]Connection, error) {
	n := len(rooms)
	done := make(map[RoomDoor]bool, n*Doors)
	connections := make([]Connection, 0, n*Doors/2)

	for i := 0; i < n; i++ {
		for j := 0; j < Doors; j++ {
			src := RoomDoor{Room: i, Door: j}
			if done[src] {
				continue
			}
			done[src] = true

			dst := rooms[i].Doors[j]
			dstDoor := -1
			for k := 0; k < Doors; k++ {
				candidate := RoomDoor{Room: dst, Door: k}
				if !done[candidate] && rooms[dst].Doors[k] == i {
					dstDoor = k
					break
				}
			}

			if dstDoor == -1 {
				if i == dst {
					dstDoor = j
				} else {
					return nil, fmt.Errorf("room %d door %d: %w", i, j, ErrLogicError)
				}
			}

			done[RoomDoor{Room: dst, Door: dstDoor}] = true
			connections = append(connections, Connection{
				Src: src,
				Dst: RoomDoor{Room: dst, Door: dstDoor},
			})
		}
	}
	return connections, nil
}
