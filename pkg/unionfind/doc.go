// Package unionfind provides a disjoint-set structure with path compression
// and union by rank, indexed by plain room indices in [0,N).
package unionfind
