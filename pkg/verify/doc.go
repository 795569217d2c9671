// Package verify checks a solved map against the walk it was reconstructed
// from and reports which of the round-trip invariants hold.
package verify
