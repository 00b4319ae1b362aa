// Package layout places named nodes on circles.
//
// The layout is fixed rather than force-directed so the two conceptual tiers
// of a diagram stay visually legible as concentric rings regardless of edit
// history. Coordinates are recomputed from scratch on every render; there is
// no incremental layout state.
package layout

import "math"

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CirclePositions places names evenly on a circle of the given radius.
//
// The node at index i sits at angle startAngleDeg + step·i/N degrees, where
// step is -360 for clockwise traversal and +360 otherwise. Coordinates are
// rounded to the nearest integer. The function is pure and deterministic.
//
// N = 0 returns an empty map (the modulo arithmetic below would otherwise
// divide by zero).
func CirclePositions(names []string, radius int, clockwise bool, startAngleDeg int) map[string]Point {
	pos := make(map[string]Point, len(names))
	n := len(names)
	if n == 0 {
		return pos
	}

	step := 360.0
	if clockwise {
		step = -360.0
	}

	for i, name := range names {
		ang := (float64(startAngleDeg) + step*float64(i)/float64(n)) * math.Pi / 180
		pos[name] = Point{
			X: int(math.Round(float64(radius) * math.Cos(ang))),
			Y: int(math.Round(float64(radius) * math.Sin(ang))),
		}
	}
	return pos
}
