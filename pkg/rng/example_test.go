package rng_test

import (
	"crypto/sha256"
	"fmt"

	"github.com/kagamiz/mapsolver/pkg/rng"
)

// ExampleNewRNG demonstrates creating a deterministic RNG for one solve phase.
func ExampleNewRNG() {
	// Master seed for the entire solve.
	masterSeed := uint64(123456789)

	// Each phase gets its own RNG, derived from a shared config hash.
	configHash := sha256.Sum256([]byte("dungeon_config_v1"))

	// Create RNGs for two distinct phases.
	graphRNG := rng.NewRNG(masterSeed, "graph_synthesis", configHash[:])
	embedRNG := rng.NewRNG(masterSeed, "embedding", configHash[:])

	// Each phase produces independent but deterministic sequences.
	fmt.Printf("Phase A seed: %d\n", graphRNG.Seed())
	fmt.Printf("Phase B seed: %d\n", embedRNG.Seed())
	fmt.Printf("Phase A first value: %d\n", graphRNG.Intn(100))
	fmt.Printf("Phase B first value: %d\n", embedRNG.Intn(100))

	// Same inputs produce the same results.
	graphRNG2 := rng.NewRNG(masterSeed, "graph_synthesis", configHash[:])
	fmt.Printf("Phase A repeated: %d\n", graphRNG2.Intn(100))

	// Output:
	// Phase A seed: 10126480545457960121
	// Phase B seed: 11758735888959734649
	// Phase A first value: 11
	// Phase B first value: 74
	// Phase A repeated: 11
}

// ExampleRNG_Shuffle demonstrates deterministically shuffling a scan order,
// as the random-rewire mutation does with its candidate door-ends.
func ExampleRNG_Shuffle() {
	masterSeed := uint64(42)
	configHash := sha256.Sum256([]byte("config"))
	r := rng.NewRNG(masterSeed, "content_placement", configHash[:])

	doorEnds := []string{"r0d0", "r0d1", "r0d2", "r1d0", "r1d1"}
	r.Shuffle(len(doorEnds), func(i, j int) {
		doorEnds[i], doorEnds[j] = doorEnds[j], doorEnds[i]
	})

	fmt.Printf("Scan order: %v\n", doorEnds)

	// Output:
	// Scan order: [r0d2 r1d0 r0d1 r0d0 r1d1]
}

// ExampleRNG_WeightedChoice demonstrates the weighted selection the annealing
// mutation policy uses to pick among its mutation kinds.
func ExampleRNG_WeightedChoice() {
	masterSeed := uint64(999)
	configHash := sha256.Sum256([]byte("config"))
	r := rng.NewRNG(masterSeed, "loot_generation", configHash[:])

	// Mutation kind weights, heaviest first.
	weights := []float64{50.0, 30.0, 15.0, 5.0}

	kinds := []string{"swap-pair", "rewire-door", "relabel-room", "restart"}
	for i := 0; i < 10; i++ {
		choice := r.WeightedChoice(weights)
		fmt.Printf("Step %d: %s\n", i+1, kinds[choice])
	}

	// Output:
	// Step 1: swap-pair
	// Step 2: relabel-room
	// Step 3: swap-pair
	// Step 4: rewire-door
	// Step 5: swap-pair
	// Step 6: rewire-door
	// Step 7: swap-pair
	// Step 8: swap-pair
	// Step 9: swap-pair
	// Step 10: swap-pair
}

// ExampleRNG_Float64Range demonstrates drawing the annealing temperature's
// acceptance threshold from a bounded range.
func ExampleRNG_Float64Range() {
	masterSeed := uint64(777)
	configHash := sha256.Sum256([]byte("config"))
	r := rng.NewRNG(masterSeed, "difficulty_scaling", configHash[:])

	for i := 0; i < 5; i++ {
		threshold := r.Float64Range(0.3, 0.8)
		fmt.Printf("Draw %d: %.2f\n", i+1, threshold)
	}

	// Output:
	// Draw 1: 0.74
	// Draw 2: 0.73
	// Draw 3: 0.43
	// Draw 4: 0.42
	// Draw 5: 0.56
}
