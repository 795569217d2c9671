package mapsvg

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/kagamiz/mapsolver/pkg/room"
)

// Options configures SVG rendering.
type Options struct {
	Width      int    // Canvas width in pixels
	Height     int    // Canvas height in pixels
	ShowLabels bool   // Show room index/label text
	NodeRadius int    // Radius of room circles (default: 24)
	Margin     int    // Canvas margin in pixels (default: 60)
	Title      string // Optional title drawn at the top
}

// DefaultOptions returns sensible default rendering options.
func DefaultOptions() Options {
	return Options{
		Width:      900,
		Height:     900,
		ShowLabels: true,
		NodeRadius: 24,
		Margin:     70,
		Title:      "Reconstructed Map",
	}
}

// labelColors keys room.Label 0..3 to a fill color, mirroring the teacher's
// archetype-keyed coloring in its own node-drawing helper.
var labelColors = [room.NumLabels]string{
	"#48bb78", // label 0: green
	"#4299e1", // label 1: blue
	"#ed8936", // label 2: orange
	"#9f7aea", // label 3: purple
}

func colorForLabel(l int) string {
	if l < 0 || l >= room.NumLabels {
		return "#718096"
	}
	return labelColors[l]
}

type position struct{ X, Y float64 }

// Render generates an SVG visualization of a solved map.
func Render(m *room.MapData, opts Options) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("mapsvg: map is nil")
	}
	n := m.N()
	if n == 0 {
		return nil, fmt.Errorf("mapsvg: map has no rooms")
	}

	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 24
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	targets, err := m.DoorTargets()
	if err != nil {
		return nil, fmt.Errorf("mapsvg: %w", err)
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	positions := circularLayout(n, opts)

	drawConnections(canvas, m, positions, opts)
	drawRooms(canvas, m, targets, positions, opts)

	if opts.Title != "" {
		canvas.Text(opts.Width/2, 30, opts.Title,
			"text-anchor:middle;font-size:20px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveToFile renders m and writes the SVG to path.
func SaveToFile(m *room.MapData, path string, opts Options) error {
	data, err := Render(m, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// circularLayout places rooms evenly around a circle, indexed by room
// number (already a stable, deterministic order — unlike the teacher's
// string-keyed rooms there is no need to sort first).
func circularLayout(n int, opts Options) []position {
	centerX := float64(opts.Width) / 2
	centerY := float64(opts.Height) / 2
	drawRadius := math.Min(float64(opts.Width), float64(opts.Height))/2 - float64(opts.Margin) - float64(opts.NodeRadius)

	positions := make([]position, n)
	angleStep := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * angleStep
		positions[i] = position{
			X: centerX + drawRadius*math.Cos(angle),
			Y: centerY + drawRadius*math.Sin(angle),
		}
	}
	return positions
}

// doorAngle returns the angle, in radians, a door tick is drawn at: doors
// are spaced 60 degrees apart starting from straight up.
func doorAngle(door int) float64 {
	return -math.Pi/2 + float64(door)*math.Pi/3
}

// doorPoint returns the point on a room's circumference where door's tick
// and any connection line touches the circle.
func doorPoint(center position, radius float64, door int) position {
	a := doorAngle(door)
	return position{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
}

func drawRooms(canvas *svg.SVG, m *room.MapData, targets [][room.Doors]int, positions []position, opts Options) {
	r := opts.NodeRadius
	for i := 0; i < m.N(); i++ {
		pos := positions[i]
		color := colorForLabel(m.RoomLabels[i])

		strokeWidth := 2
		stroke := "#fff"
		if i == m.StartRoom {
			strokeWidth = 4
			stroke = "#ffd700"
		}
		canvas.Circle(int(pos.X), int(pos.Y), r,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d;opacity:0.9", color, stroke, strokeWidth))

		for door := 0; door < room.Doors; door++ {
			inner := doorPoint(pos, float64(r), door)
			outer := doorPoint(pos, float64(r)+8, door)
			canvas.Line(int(inner.X), int(inner.Y), int(outer.X), int(outer.Y), "stroke:#e2e8f0;stroke-width:1")
		}

		if opts.ShowLabels {
			canvas.Text(int(pos.X), int(pos.Y)+4, fmt.Sprintf("%d:%d", i, m.RoomLabels[i]),
				"text-anchor:middle;font-size:11px;font-family:monospace;fill:#1a1a2e;font-weight:bold")
		}
	}
}

func drawConnections(canvas *svg.SVG, m *room.MapData, positions []position, opts Options) {
	r := float64(opts.NodeRadius)
	for _, c := range m.Connections {
		srcPos := doorPoint(positions[c.Src.Room], r, c.Src.Door)
		dstPos := doorPoint(positions[c.Dst.Room], r, c.Dst.Door)

		if c.Src == c.Dst {
			drawSelfLoop(canvas, positions[c.Src.Room], c.Src.Door, r)
			continue
		}
		canvas.Line(int(srcPos.X), int(srcPos.Y), int(dstPos.X), int(dstPos.Y),
			"stroke:#4a5568;stroke-width:2;opacity:0.8")
	}
}

// drawSelfLoop renders a true self-loop — a door paired with itself — as a
// small bulge drawn off the room's circumference at that door's angle.
func drawSelfLoop(canvas *svg.SVG, center position, door int, radius float64) {
	a := doorAngle(door)
	anchor := position{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	tip := position{X: center.X + (radius+20)*math.Cos(a), Y: center.Y + (radius+20)*math.Sin(a)}
	perp := a + math.Pi/2
	control1 := position{X: tip.X + 10*math.Cos(perp), Y: tip.Y + 10*math.Sin(perp)}
	control2 := position{X: tip.X - 10*math.Cos(perp), Y: tip.Y - 10*math.Sin(perp)}

	canvas.Qbez(int(anchor.X), int(anchor.Y), int(control1.X), int(control1.Y), int(tip.X), int(tip.Y),
		"fill:none;stroke:#f56565;stroke-width:2")
	canvas.Qbez(int(tip.X), int(tip.Y), int(control2.X), int(control2.Y), int(anchor.X), int(anchor.Y),
		"fill:none;stroke:#f56565;stroke-width:2")
}
