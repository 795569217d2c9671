package solver

import (
	"context"

	"github.com/kagamiz/mapsolver/pkg/rng"
	"github.com/kagamiz/mapsolver/pkg/room"
	"github.com/kagamiz/mapsolver/pkg/unionfind"
	"github.com/kagamiz/mapsolver/pkg/walk"
)

// dfsState is one node of the backtracking search: the partial room set
// built so far, the walk position reached, and the room the walk is
// currently standing in.
type dfsState struct {
	rooms       []room.Room
	idx         int
	currentRoom int
}

func (s dfsState) clone() dfsState {
	rooms := make([]room.Room, len(s.rooms))
	copy(rooms, s.rooms)
	return dfsState{rooms: rooms, idx: s.idx, currentRoom: s.currentRoom}
}

// SolveDFS reconstructs a map by exact backtracking: it walks doors one
// step at a time, branching over which already-placed room (or a fresh one)
// the walk could have landed in, and memoizes every visited state by its
// digest so no (rooms, idx, currentRoom) triple is explored twice. It
// returns ErrNoSolution if the search tree is exhausted. seed drives the
// random fill of doors left undetermined after the walk is exhausted;
// maxMemoEntries caps the memo table (0 means unbounded).
func SolveDFS(ctx context.Context, n int, doors string, labels []int, seed uint64, maxMemoEntries int) (*room.MapData, error) {
	if err := validateInput(n, doors, labels); err != nil {
		return nil, err
	}

	rooms := make([]room.Room, n)
	for i := range rooms {
		rooms[i] = room.NewRoom()
	}
	rooms[0].Label = room.Label(labels[0])

	memo := make(map[string]*room.MapData)
	initial := dfsState{rooms: rooms, idx: 0, currentRoom: 0}
	fillRNG := rng.NewRNG(seed, "dfs-fill", nil)

	result, err := dfsSearch(ctx, n, doors, labels, initial, memo, maxMemoEntries, fillRNG)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNoSolution
	}
	return result, nil
}

// validateInput defers to walk.New for the structural checks every strategy
// needs before it may look at state.rooms: a malformed (n, doors, labels)
// triple is an ErrInconsistentInput, never an ErrNoSolution — "no solution"
// means the search space was explored and came up empty, which never
// happens for input that couldn't describe a walk in the first place.
func validateInput(n int, doors string, labels []int) error {
	_, err := walk.New(n, doors, labels)
	return err
}

// dfsSearch is the recursive core. maxMemoEntries, if positive, stops new
// memoization once the table reaches that size — states beyond the cap are
// still explored, just not cached, trading re-exploration for bounded
// memory (see config.DFSCfg.MaxMemoEntries).
func dfsSearch(
	ctx context.Context,
	n int,
	doors string,
	labels []int,
	state dfsState,
	memo map[string]*room.MapData,
	maxMemoEntries int,
	fillRNG *rng.RNG,
) (*room.MapData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	key := digest(state.rooms, state.idx, state.currentRoom)
	if cached, ok := memo[key]; ok {
		return cached, nil
	}

	store := func(result *room.MapData) (*room.MapData, error) {
		if maxMemoEntries <= 0 || len(memo) < maxMemoEntries {
			memo[key] = result
		}
		return result, nil
	}

	// Prune 2: in-degree <= 6 for every room (six doors exist, so no room
	// can be the target of a seventh).
	inDegree := make([]int, n)
	for _, r := range state.rooms {
		for _, d := range r.Doors {
			if d != int(room.Unknown) {
				inDegree[d]++
			}
		}
	}
	for _, deg := range inDegree {
		if deg > room.Doors {
			return store(nil)
		}
	}

	// Prune 3: connectivity. Union the determined edges; a component whose
	// doors are all determined can never grow, so if it holds fewer than N
	// rooms the candidate can never knit into a single connected map.
	if !connectivityFeasible(state.rooms) {
		return store(nil)
	}

	// Prune 4: reverse-lookup consistency. For each room r, every other
	// room that already has a determined door pointing at r must be
	// matchable to one of r's own doors — either one already pointing
	// back at that predecessor, or one still UNKNOWN. This only checks
	// feasibility; it never commits an UNKNOWN door to a predecessor.
	// That commitment is a distinct operation, performed once at the
	// terminal phase by dfsComplete.
	if !reverseLookupFeasible(state.rooms) {
		return store(nil)
	}

	if state.idx == len(doors) {
		result, err := dfsComplete(n, state.rooms, fillRNG)
		if err != nil {
			return nil, err
		}
		return store(result)
	}

	doorIdx := int(doors[state.idx] - '0')
	current := &state.rooms[state.currentRoom]

	if current.Doors[doorIdx] != int(room.Unknown) {
		nextRoom := current.Doors[doorIdx]
		if int(state.rooms[nextRoom].Label) != labels[state.idx+1] {
			return store(nil)
		}
		next := state.clone()
		next.idx++
		next.currentRoom = nextRoom
		result, err := dfsSearch(ctx, n, doors, labels, next, memo, maxMemoEntries, fillRNG)
		if err != nil {
			return nil, err
		}
		return store(result)
	}

	// Branch over already-placed rooms bearing the required label.
	candidateCount := 0
	for nextRoom := 0; nextRoom < n; nextRoom++ {
		if int(state.rooms[nextRoom].Label) != labels[state.idx+1] {
			continue
		}
		candidateCount++

		next := state.clone()
		next.rooms[state.currentRoom].Doors[doorIdx] = nextRoom
		next.idx++
		next.currentRoom = nextRoom

		result, err := dfsSearch(ctx, n, doors, labels, next, memo, maxMemoEntries, fillRNG)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return store(result)
		}
	}

	// Prune 1 (label capacity): if every room with this label is already
	// accounted for and there are already at least ceil(n/4) of them, no
	// fresh room can legally carry the same label.
	_, maxPerLabel := room.LabelBounds(n)
	if candidateCount >= maxPerLabel {
		return store(nil)
	}

	// Branch over a fresh, as-yet-unlabelled room.
	for nextRoom := 0; nextRoom < n; nextRoom++ {
		if state.rooms[nextRoom].Label != room.Unknown {
			continue
		}
		next := state.clone()
		next.rooms[nextRoom].Label = room.Label(labels[state.idx+1])
		next.rooms[state.currentRoom].Doors[doorIdx] = nextRoom
		next.idx++
		next.currentRoom = nextRoom

		result, err := dfsSearch(ctx, n, doors, labels, next, memo, maxMemoEntries, fillRNG)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return store(result)
		}
	}

	return store(nil)
}

// connectivityFeasible unions every door-target already determined and
// rejects a state only when it can prove the map can never be connected:
// concretely, when some component has every door of every room in it
// determined, yet holds fewer than all N rooms. A component with any
// undetermined door is optimistic (that door might still bridge the gap),
// matching the teacher's "union-find tracks provable structure, never
// guesses" approach in its own connectivity checks.
func connectivityFeasible(rooms []room.Room) bool {
	n := len(rooms)
	uf := unionfind.New(n)
	for i, r := range rooms {
		for _, d := range r.Doors {
			if d != int(room.Unknown) {
				uf.Union(i, d)
			}
		}
	}
	open := make([]bool, n)
	for i, r := range rooms {
		for _, d := range r.Doors {
			if d == int(room.Unknown) {
				open[uf.Find(i)] = true
				break
			}
		}
	}
	for i := range rooms {
		if root := uf.Find(i); !open[root] && uf.SetSize(root) < n {
			return false
		}
	}
	return true
}

// reverseLookupFeasible checks, without committing any assignment, whether
// every room's incoming determined doors can still be matched to an
// outgoing door slot on the far end. For room r, each predecessor p with a
// determined door pointing at r needs a door on r that either already
// points back to p or is still UNKNOWN; once matched, that door of r is
// consumed so a second predecessor can't claim it too. If any predecessor
// has no available slot, the partial state can never complete.
func reverseLookupFeasible(rooms []room.Room) bool {
	predecessors := make([][]int, len(rooms))
	for p, r := range rooms {
		for _, d := range r.Doors {
			if d != int(room.Unknown) {
				predecessors[d] = append(predecessors[d], p)
			}
		}
	}

	for i, r := range rooms {
		var used [room.Doors]bool
		for _, p := range predecessors[i] {
			matched := false
			for door := 0; door < room.Doors; door++ {
				if !used[door] && r.Doors[door] == p {
					used[door] = true
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			for door := 0; door < room.Doors; door++ {
				if !used[door] && r.Doors[door] == int(room.Unknown) {
					used[door] = true
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}

// dfsComplete runs once the walk is fully consumed: it checks the label
// histogram, completes any door whose reverse-lookup is forced, then fills
// whatever doors remain undetermined with a random admissible pairing
// before extracting the final connection list.
func dfsComplete(n int, rooms []room.Room, fillRNG *rng.RNG) (*room.MapData, error) {
	labelCount := make(map[room.Label]int)
	for _, r := range rooms {
		if r.Label == room.Unknown {
			return nil, nil
		}
		labelCount[r.Label]++
	}
	minPerLabel, maxPerLabel := room.LabelBounds(n)
	for l := room.Label(0); l < room.NumLabels; l++ {
		if cnt := labelCount[l]; cnt != minPerLabel && cnt != maxPerLabel {
			return nil, nil
		}
	}

	rooms = append([]room.Room(nil), rooms...)

	reverseLookup := make([][]int, n)
	for i, r := range rooms {
		for _, d := range r.Doors {
			if d != int(room.Unknown) {
				reverseLookup[d] = append(reverseLookup[d], i)
			}
		}
	}

	inDegree := make([]int, n)
	for _, r := range rooms {
		for _, d := range r.Doors {
			if d != int(room.Unknown) {
				inDegree[d]++
			}
		}
	}

	for i := range rooms {
		used := [room.Doors]bool{}
		for _, expectedRoom := range reverseLookup[i] {
			matched := false
			for doorIdx := 0; doorIdx < room.Doors; doorIdx++ {
				if used[doorIdx] {
					continue
				}
				if rooms[i].Doors[doorIdx] == expectedRoom {
					used[doorIdx] = true
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			for doorIdx := 0; doorIdx < room.Doors; doorIdx++ {
				if used[doorIdx] {
					continue
				}
				if rooms[i].Doors[doorIdx] == int(room.Unknown) {
					rooms[i].Doors[doorIdx] = expectedRoom
					used[doorIdx] = true
					matched = true
					inDegree[expectedRoom]++
					if inDegree[expectedRoom] > room.Doors {
						return nil, nil
					}
					break
				}
			}
			if !matched {
				return nil, nil
			}
		}
	}

	type doorRef struct{ room, door int }
	var undeterminedDoors []doorRef
	for i := range rooms {
		for doorIdx := 0; doorIdx < room.Doors; doorIdx++ {
			if rooms[i].Doors[doorIdx] == int(room.Unknown) {
				undeterminedDoors = append(undeterminedDoors, doorRef{room: i, door: doorIdx})
			}
		}
	}

	fillRNG.Shuffle(len(undeterminedDoors), func(i, j int) {
		undeterminedDoors[i], undeterminedDoors[j] = undeterminedDoors[j], undeterminedDoors[i]
	})
	for i := 0; i < len(undeterminedDoors); i += 2 {
		a, b := undeterminedDoors[i], undeterminedDoors[i]
		if i+1 < len(undeterminedDoors) {
			b = undeterminedDoors[i+1]
		}
		rooms[a.room].Doors[a.door] = b.room
		rooms[b.room].Doors[b.door] = a.room
	}

	roomLabels := make([]int, n)
	for i, r := range rooms {
		roomLabels[i] = int(r.Label)
	}
	connections, err := room.ExtractConnections(rooms)
	if err != nil {
		return nil, err
	}

	return &room.MapData{
		RoomLabels:  roomLabels,
		StartRoom:   0,
		Connections: connections,
	}, nil
}
