// Package mapsvg renders a solved room.MapData as an SVG diagram for
// visual inspection: rooms as colored circles keyed by label, door-ends as
// tick marks around each circle, and connections as lines or loop arcs.
package mapsvg
