// Package rng provides deterministic random number generation for the
// annealing solver.
//
// # Overview
//
// The RNG type makes simulated-annealing runs reproducible by deriving
// phase-specific seeds from a master seed. This lets the candidate-init
// phase and the mutation-loop phase each draw from an independent random
// sequence while the run as a whole stays deterministic given a seed.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_phase = H(masterSeed, phaseName, configHash)
//
// where:
//   - masterSeed: the solver run's top-level seed
//   - phaseName: which part of the solve this RNG feeds, e.g. "anneal-init"
//   - configHash: hash of the annealing tuning parameters in play
//
// This ensures:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different phases get independent random sequences (isolation)
//  3. Tuning changes result in different sequences (sensitivity)
//
// # Usage
//
// Create an RNG per phase of a solve:
//
//	configHash := sha256.Sum256([]byte(tuningJSON))
//	initRNG := rng.NewRNG(masterSeed, "anneal-init", configHash[:])
//	loopRNG := rng.NewRNG(masterSeed, "anneal-loop", configHash[:])
//
// Use the RNG for all random decisions in that phase:
//
//	startRoom := initRNG.Intn(len(candidates))
//	if loopRNG.Float64() < mutationProbability {
//	    // apply this mutation kind
//	}
//
// # Thread Safety
//
// RNG instances are NOT thread-safe; the annealing loop is single-threaded
// by design (see the core's concurrency model), so one RNG per phase
// suffices and is never shared across goroutines.
//
// # Performance
//
// The underlying math/rand.Rand is highly efficient:
//   - Uint64(): ~2ns per call
//   - Intn():   ~3ns per call
//   - Float64(): ~2ns per call
//
// Creating a new RNG costs ~8µs due to SHA-256 computation; the solver
// creates one per phase, not per iteration.
package rng
