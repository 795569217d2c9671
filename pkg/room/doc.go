// Package room defines the graph primitives shared by every solver: rooms
// with six numbered doors, door-ends, the undirected connections that pair
// them, and the wire-level MapData result.
package room
