package solver

import "errors"

// ErrNoSolution is returned when a solve strategy exhausts its search space
// (DFS) or its iteration budget (annealing) without finding a map consistent
// with every observed step of the walk.
var ErrNoSolution = errors.New("solver: no solution found")

// ErrUnknownStrategy is returned by Get for a name that was never
// registered.
var ErrUnknownStrategy = errors.New("solver: unknown strategy")
