package solver

import (
	"context"
	"fmt"
	"sync"

	"github.com/kagamiz/mapsolver/pkg/config"
	"github.com/kagamiz/mapsolver/pkg/room"
)

// Strategy is the interface every map-reconstruction approach implements.
// Implementations must be deterministic for a fixed cfg.Seed.
type Strategy interface {
	// Solve reconstructs a map consistent with the observed walk, or
	// returns ErrNoSolution (DFS search space or annealing iteration budget
	// exhausted) / a context error (either strategy).
	Solve(ctx context.Context, n int, doors string, labels []int, cfg *config.Config) (*room.MapData, error)

	// Name returns the strategy's registration identifier.
	Name() string
}

// Registry of available solve strategies.
var (
	strategiesMu sync.RWMutex
	strategies   = make(map[string]Strategy)
)

// Register adds a strategy to the global registry. Panics if name is
// already registered.
func Register(name string, s Strategy) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()

	if _, exists := strategies[name]; exists {
		panic(fmt.Sprintf("solver: strategy %q already registered", name))
	}
	strategies[name] = s
}

// Get retrieves a registered strategy by name.
func Get(name string) (Strategy, error) {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()

	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return s, nil
}

// List returns all registered strategy names.
func List() []string {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()

	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	return names
}

type dfsStrategy struct{}

func (dfsStrategy) Name() string { return "dfs" }

func (dfsStrategy) Solve(ctx context.Context, n int, doors string, labels []int, cfg *config.Config) (*room.MapData, error) {
	return SolveDFS(ctx, n, doors, labels, cfg.Seed, cfg.DFS.MaxMemoEntries)
}

type annealingStrategy struct{}

func (annealingStrategy) Name() string { return "annealing" }

func (annealingStrategy) Solve(ctx context.Context, n int, doors string, labels []int, cfg *config.Config) (*room.MapData, error) {
	return SolveAnnealing(ctx, n, doors, labels, cfg)
}

func init() {
	Register("dfs", dfsStrategy{})
	Register("annealing", annealingStrategy{})
}

// Solve is the orchestrator entry point: it picks "dfs" for room counts
// below cfg.OrchestratorThreshold and "annealing" at or above it, then runs
// the chosen strategy. Use config.Default() for cfg when no tuning
// overrides are needed.
func Solve(ctx context.Context, n int, doors string, labels []int, cfg *config.Config) (*room.MapData, error) {
	name := "dfs"
	if n >= cfg.OrchestratorThreshold {
		name = "annealing"
	}
	strategy, err := Get(name)
	if err != nil {
		return nil, err
	}
	return strategy.Solve(ctx, n, doors, labels, cfg)
}
