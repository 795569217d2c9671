package solver

import (
	"context"
	"math"

	"github.com/kagamiz/mapsolver/pkg/config"
	"github.com/kagamiz/mapsolver/pkg/rng"
	"github.com/kagamiz/mapsolver/pkg/room"
)

// annealState is a complete candidate map: every door is paired with
// exactly one other door (itself, for a self-loop), so it is always a
// structurally valid map — annealing only ever asks "how well does this
// candidate agree with the observed walk", never "is this candidate legal".
type annealState struct {
	rooms     []room.Room
	startRoom int
	pairDoors [][room.Doors]room.RoomDoor
}

func (s annealState) clone() annealState {
	rooms := make([]room.Room, len(s.rooms))
	copy(rooms, s.rooms)
	pairDoors := make([][room.Doors]room.RoomDoor, len(s.pairDoors))
	copy(pairDoors, s.pairDoors)
	return annealState{rooms: rooms, startRoom: s.startRoom, pairDoors: pairDoors}
}

// feedback scores one candidate against the observed walk.
type feedback struct {
	score      float64
	rightCount int
	mistakes   []int
	rightDoors map[room.RoomDoor]bool
}

// createRandomState builds a fresh candidate: labels cycle 0,1,2,3,... across
// rooms (guaranteeing an even histogram), the start room is uniform over all
// rooms, and every door-end is paired into a uniformly random perfect
// matching (self-loops arise naturally when a door-end is paired with
// itself).
func createRandomState(n int, r *rng.RNG) annealState {
	rooms := make([]room.Room, n)
	for i := range rooms {
		rooms[i] = room.NewRoom()
		rooms[i].Label = room.Label(i % room.NumLabels)
	}

	startRoom := r.Intn(n)

	pairDoors := make([][room.Doors]room.RoomDoor, n)
	type roomDoorSlot struct{ room, door int }
	slots := make([]roomDoorSlot, 0, n*room.Doors)
	for i := 0; i < n; i++ {
		for j := 0; j < room.Doors; j++ {
			slots = append(slots, roomDoorSlot{room: i, door: j})
		}
	}

	used := make([]bool, len(slots))
	for i := range slots {
		if used[i] {
			continue
		}
		var j int
		for {
			j = r.IntRange(i, len(slots)-1)
			if !used[j] {
				break
			}
		}
		a, b := slots[i], slots[j]
		pairDoors[a.room][a.door] = room.RoomDoor{Room: b.room, Door: b.door}
		pairDoors[b.room][b.door] = room.RoomDoor{Room: a.room, Door: a.door}
		rooms[a.room].Doors[a.door] = b.room
		rooms[b.room].Doors[b.door] = a.room
		used[j] = true
	}

	return annealState{rooms: rooms, startRoom: startRoom, pairDoors: pairDoors}
}

// calculateScore simulates the observed walk against a candidate and scores
// how well they agree: +1 per correctly-predicted label (including the
// start room), -1 per mismatch, plus a small bonus (0.1 per door-end) for
// every door-end that is part of an agreeing step and never part of a
// disagreeing one. A mismatch at the very first room makes the whole
// candidate maximally unattractive so the search never lingers there.
//
// This simulates using the target room's actual label, not its index — the
// original reference implementation's scoring step compares a door's target
// room index directly against the label value, which only coincidentally
// works when room indices and labels overlap; that is treated here as a
// transcription slip rather than intended behavior (see DESIGN.md).
func calculateScore(state annealState, doors string, labels []int) feedback {
	score := 0.0
	rightCount := 0
	current := state.startRoom
	var mistakes []int
	rightDoors := make(map[room.RoomDoor]bool)
	wrongDoors := make(map[room.RoomDoor]bool)

	if int(state.rooms[current].Label) == labels[0] {
		score = 1
		rightCount++
	} else {
		score = -1000000000
	}

	for i := 0; i < len(doors); i++ {
		doorIdx := int(doors[i] - '0')
		nextRoom := state.rooms[current].Doors[doorIdx]
		if int(state.rooms[nextRoom].Label) == labels[i+1] {
			score++
			rightDoors[room.RoomDoor{Room: current, Door: doorIdx}] = true
			rightDoors[state.pairDoors[current][doorIdx]] = true
			rightCount++
		} else {
			score--
			mistakes = append(mistakes, i)
			wrongDoors[room.RoomDoor{Room: current, Door: doorIdx}] = true
			wrongDoors[state.pairDoors[current][doorIdx]] = true
		}
		current = nextRoom
	}

	for wd := range wrongDoors {
		delete(rightDoors, wd)
	}
	score += 0.1 * float64(len(rightDoors))

	return feedback{score: score, rightCount: rightCount, mistakes: mistakes, rightDoors: rightDoors}
}

// swapPair rewires two door-ends to point at each other, fixing up their
// previous partners so the matching stays a valid involution. This is the
// one primitive every mutation kind below composes from.
func swapPair(state annealState, a, b room.RoomDoor) annealState {
	next := state.clone()
	pa := next.pairDoors[a.Room][a.Door]
	pb := next.pairDoors[b.Room][b.Door]
	// A door-end that was paired with itself leaves no old partner behind,
	// so the other end's old partner is left to pair with itself.
	if pa == a {
		pa = pb
	} else if pb == b {
		pb = pa
	}

	next.pairDoors[pa.Room][pa.Door] = pb
	next.pairDoors[pb.Room][pb.Door] = pa
	next.pairDoors[a.Room][a.Door] = b
	next.pairDoors[b.Room][b.Door] = a

	next.rooms[pa.Room].Doors[pa.Door] = pb.Room
	next.rooms[pb.Room].Doors[pb.Door] = pa.Room
	next.rooms[a.Room].Doors[a.Door] = b.Room
	next.rooms[b.Room].Doors[b.Door] = a.Room

	return next
}

// mutate picks one of five mutation kinds, weighted the way the reference
// implementation weights them: 1% full restart, 9% random rewire, 85% fix a
// mistaken step, 2.5% reroute the walk (mutateReroute), 2.5% swap two labels.
func mutate(state annealState, labels []int, doors string, mistakes []int, rightDoors map[room.RoomDoor]bool, r *rng.RNG) annealState {
	switch r.WeightedChoice([]float64{10, 90, 850, 25, 25}) {
	case 0:
		return createRandomState(len(state.rooms), r)
	case 1:
		return mutateRandomRewire(state, rightDoors, r)
	case 2:
		if len(mistakes) == 0 {
			return state
		}
		return mutateFixMistake(state, labels, doors, mistakes, rightDoors, r)
	case 3:
		return mutateReroute(state, doors, labels, r)
	default:
		return mutateSwapLabels(state, r)
	}
}

// candidateDoors lists every door-end eligible for rewiring: one not known
// to agree with the walk, or — with 50% probability per call, matching the
// reference implementation's own coin flip — any door-end at all, so a
// correct pairing can occasionally still be disturbed.
func candidateDoors(n int, rightDoors map[room.RoomDoor]bool, r *rng.RNG) []room.RoomDoor {
	includeRight := r.IntRange(0, 999) < 500
	candidates := make([]room.RoomDoor, 0, n*room.Doors)
	for i := 0; i < n; i++ {
		for j := 0; j < room.Doors; j++ {
			rd := room.RoomDoor{Room: i, Door: j}
			if includeRight || !rightDoors[rd] {
				candidates = append(candidates, rd)
			}
		}
	}
	return candidates
}

func mutateRandomRewire(state annealState, rightDoors map[room.RoomDoor]bool, r *rng.RNG) annealState {
	candidates := candidateDoors(len(state.rooms), rightDoors, r)
	if len(candidates) <= 2 {
		return state
	}
	r.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	return swapPair(state, candidates[0], candidates[1])
}

func mutateFixMistake(state annealState, labels []int, doors string, mistakes []int, rightDoors map[room.RoomDoor]bool, r *rng.RNG) annealState {
	mistakeStep := mistakes[r.Intn(len(mistakes))]

	history := make([]int, len(doors)+1)
	history[0] = state.startRoom
	for i := 0; i < len(doors); i++ {
		doorIdx := int(doors[i] - '0')
		history[i+1] = state.rooms[history[i]].Doors[doorIdx]
	}

	wantLabel := labels[mistakeStep+1]
	includeRight := r.IntRange(0, 999) < 500
	var candidates []room.RoomDoor
	for i, rm := range state.rooms {
		if int(rm.Label) != wantLabel {
			continue
		}
		for j := 0; j < room.Doors; j++ {
			rd := room.RoomDoor{Room: i, Door: j}
			if includeRight || !rightDoors[rd] {
				candidates = append(candidates, rd)
			}
		}
	}
	if len(candidates) == 0 {
		return state
	}

	roomIdx := history[mistakeStep]
	doorIdx := int(doors[mistakeStep] - '0')
	chosen := candidates[r.Intn(len(candidates))]

	return swapPair(state, room.RoomDoor{Room: roomIdx, Door: doorIdx}, chosen)
}

// mutateReroute rebuilds the walk's door choices greedily: walking doors
// from the start room, it rewires each step's outgoing door-end onto an
// unused door-end of some room carrying the step's expected label, so the
// rebuilt path lands on a correct-label room at every step it can. A door
// already rewired earlier in this same pass is left alone and simply
// followed, matching the "unused door-end" constraint in the mutation
// policy (rewiring it again would likely undo the very step that just
// fixed it).
func mutateReroute(state annealState, doors string, labels []int, r *rng.RNG) annealState {
	next := state.clone()
	used := make(map[room.RoomDoor]bool)
	current := next.startRoom

	for i := 0; i < len(doors); i++ {
		doorIdx := int(doors[i] - '0')
		src := room.RoomDoor{Room: current, Door: doorIdx}

		if used[src] {
			current = next.rooms[current].Doors[doorIdx]
			continue
		}

		wantLabel := labels[i+1]
		var candidates []room.RoomDoor
		for roomIdx, rm := range next.rooms {
			if int(rm.Label) != wantLabel {
				continue
			}
			for door := 0; door < room.Doors; door++ {
				rd := room.RoomDoor{Room: roomIdx, Door: door}
				if rd != src && !used[rd] {
					candidates = append(candidates, rd)
				}
			}
		}

		if len(candidates) == 0 {
			current = next.rooms[current].Doors[doorIdx]
			continue
		}

		chosen := candidates[r.Intn(len(candidates))]
		next = swapPair(next, src, chosen)
		used[src] = true
		used[chosen] = true
		current = next.rooms[current].Doors[doorIdx]
	}

	return next
}

func mutateSwapLabels(state annealState, r *rng.RNG) annealState {
	groups := make([][]int, room.NumLabels)
	for i, rm := range state.rooms {
		groups[rm.Label] = append(groups[rm.Label], i)
	}

	maxCount, minCount := 0, math.MaxInt
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		if len(g) > maxCount {
			maxCount = len(g)
		}
		if len(g) < minCount {
			minCount = len(g)
		}
	}
	if maxCount == minCount {
		return state
	}

	var minLabels, maxLabels []int
	for label, g := range groups {
		switch len(g) {
		case minCount:
			minLabels = append(minLabels, label)
		case maxCount:
			maxLabels = append(maxLabels, label)
		}
	}

	minLabel := minLabels[r.Intn(len(minLabels))]
	maxLabel := maxLabels[r.Intn(len(maxLabels))]
	minRoom := groups[minLabel][r.Intn(len(groups[minLabel]))]
	maxRoom := groups[maxLabel][r.Intn(len(groups[maxLabel]))]

	next := state.clone()
	next.rooms[minRoom].Label = room.Label(maxLabel)
	next.rooms[maxRoom].Label = room.Label(minLabel)
	return next
}

// temperature implements the exponential cooling schedule T(t) =
// max(0.1, K*exp(-t/tau)): hottest (most tolerant of regressions) at t=0,
// cooling toward the 0.1 floor as the run progresses, per config.AnnealingCfg.
func temperature(iter int, cfg config.AnnealingCfg) float64 {
	t := cfg.K * math.Exp(-float64(iter)/cfg.Tau)
	if t < 0.1 {
		return 0.1
	}
	return t
}

// acceptProposal decides whether to move to a proposal that changed the
// score by delta: strict improvements (delta > 0) are always accepted;
// regressions are accepted with probability exp(delta/temp), using draw as
// the uniform(0,1) coin flip.
func acceptProposal(delta, temp, draw float64) bool {
	if delta > 0 {
		return true
	}
	acceptProb := math.Exp(delta / temp)
	return draw < acceptProb
}

// SolveAnnealing reconstructs a map by simulated annealing over complete
// candidate matchings: it mutates a candidate, accepts improvements
// unconditionally and regressions with probability exp(delta/T(t)), and
// restarts from a fresh random candidate after cfg.StagnationThreshold
// consecutive non-improving steps. It returns once every step of the walk
// is predicted correctly, the iteration budget is exhausted, or ctx is
// canceled.
func SolveAnnealing(ctx context.Context, n int, doors string, labels []int, cfg *config.Config) (*room.MapData, error) {
	if err := validateInput(n, doors, labels); err != nil {
		return nil, err
	}

	configHash := cfg.Hash()
	initRNG := rng.NewRNG(cfg.Seed, "anneal-init", configHash)
	loopRNG := rng.NewRNG(cfg.Seed, "anneal-loop", configHash)

	state := createRandomState(n, initRNG)
	fb := calculateScore(state, doors, labels)

	stagnation := 0
	for iter := 0; iter < cfg.Annealing.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if fb.rightCount == len(labels) {
			return finalizeAnneal(n, state)
		}

		next := mutate(state, labels, doors, fb.mistakes, fb.rightDoors, loopRNG)
		nextFB := calculateScore(next, doors, labels)

		delta := nextFB.score - fb.score
		accept := acceptProposal(delta, temperature(iter, cfg.Annealing), loopRNG.Float64())

		if nextFB.score <= fb.score {
			stagnation++
		} else {
			stagnation = 0
		}

		if accept {
			state = next
			fb = nextFB
		}

		if stagnation >= cfg.Annealing.StagnationThreshold {
			state = createRandomState(n, loopRNG)
			fb = calculateScore(state, doors, labels)
			stagnation = 0
		}
	}

	if fb.rightCount == len(labels) {
		return finalizeAnneal(n, state)
	}
	return nil, ErrNoSolution
}

func finalizeAnneal(n int, state annealState) (*room.MapData, error) {
	roomLabels := make([]int, n)
	for i, r := range state.rooms {
		roomLabels[i] = int(r.Label)
	}
	connections, err := room.ExtractConnections(state.rooms)
	if err != nil {
		return nil, err
	}
	return &room.MapData{
		RoomLabels:  roomLabels,
		StartRoom:   state.startRoom,
		Connections: connections,
	}, nil
}
