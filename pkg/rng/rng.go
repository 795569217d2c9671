package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// RNG provides deterministic random number generation for one phase of a
// solve. Each phase derives its own seed from the master seed to ensure
// isolation and reproducibility. The derivation follows the formula:
//
//	seed_phase = H(masterSeed, phaseName, configHash)
//
// where H is SHA-256 and the first 8 bytes are used as the int64 seed.
//
// All methods are deterministic given the same initial seed, making
// annealing runs reproducible across runs with identical inputs.
type RNG struct {
	seed      uint64
	phaseName string
	source    *rand.Rand
}

// NewRNG creates a phase-specific RNG by deriving a sub-seed from the
// master seed. The derivation uses SHA-256 to combine:
//   - masterSeed: the top-level seed for the whole solve
//   - phaseName: identifies the solver phase (e.g. "anneal-init", "anneal-loop")
//   - configHash: hash of the tuning parameters, so changing them changes the sequence
func NewRNG(masterSeed uint64, phaseName string, configHash []byte) *RNG {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(phaseName))
	h.Write(configHash)

	hash := h.Sum(nil)
	derivedSeed := binary.BigEndian.Uint64(hash[:8])

	return &RNG{
		seed:      derivedSeed,
		phaseName: phaseName,
		source:    rand.New(rand.NewSource(int64(derivedSeed))),
	}
}

// Uint64 returns a pseudo-random 64-bit unsigned integer.
func (r *RNG) Uint64() uint64 {
	return r.source.Uint64()
}

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return r.source.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.source.Float64()
}

// Shuffle pseudo-randomizes the order of elements in slice.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.source.Shuffle(n, swap)
}

// Seed returns the derived seed for this RNG. Useful for logging which seed
// produced a given annealing run.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// PhaseName returns the phase name this RNG was created for.
func (r *RNG) PhaseName() string {
	return r.phaseName
}

// IntRange returns a pseudo-random integer in [min, max]. It panics if
// min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max). It panics if
// min >= max.
func (r *RNG) Float64Range(min, max float64) float64 {
	if min >= max {
		panic("rng: Float64Range min must be < max")
	}
	return min + r.source.Float64()*(max-min)
}

// Bool returns a pseudo-random boolean value.
func (r *RNG) Bool() bool {
	return r.source.Intn(2) == 1
}

// WeightedChoice selects an index from weights using weighted random
// selection. Weights must be non-negative. Returns -1 if all weights are
// zero or weights is empty. The annealing mutation policy (§4.3) uses this
// to pick one of its five mutation kinds per step.
func (r *RNG) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return -1
	}

	randVal := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if randVal < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Permutation returns a pseudo-random permutation of [0, n).
func (r *RNG) Permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}
