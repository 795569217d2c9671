// Package solver reconstructs a hidden map from one observed walk.
// It provides two strategies — an exact backtracking search (dfs.go) and a
// simulated-annealing search over complete candidate matchings (anneal.go)
// — registered under the names "dfs" and "annealing", plus an orchestrator
// (orchestrator.go) that picks between them by room count.
package solver
