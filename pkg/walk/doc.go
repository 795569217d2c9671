// Package walk holds the immutable observation a solver reconstructs a map
// from: the door sequence submitted to the oracle and the label sequence it
// reported back.
package walk
