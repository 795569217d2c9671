// Package config loads and validates the tuning parameters that govern a
// solve: the known problem-size catalogue, the DFS solver's memoization
// limit, the annealing solver's cooling schedule, and the threshold the
// orchestrator uses to choose between the two.
package config
