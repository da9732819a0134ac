// Package actor implements the movement primitives shared by the player and
// the adversaries. Both disciplines consult the same maze.Probe before
// committing a move, so every actor obeys the same topology.
package actor

import (
	"math"

	"github.com/vovakirdan/tui-mazechase/internal/core"
)

// Direction is one of the four axis-aligned headings, or None.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four headings in evaluation order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Vec returns the unit vector of the direction. Y grows downward.
func (d Direction) Vec() core.Vec {
	switch d {
	case DirUp:
		return core.V(0, -1)
	case DirDown:
		return core.V(0, 1)
	case DirLeft:
		return core.V(-1, 0)
	case DirRight:
		return core.V(1, 0)
	default:
		return core.Vec{}
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Offset returns the cell delta for one step in d.
func (d Direction) Offset() (dc, dr int) {
	v := d.Vec()
	return int(v.X), int(v.Y)
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// FromIntent converts a raw input vector in [-1,1]² to a heading. The
// dominant axis wins; horizontal wins ties.
func FromIntent(v core.Vec) Direction {
	ax, ay := math.Abs(v.X), math.Abs(v.Y)
	switch {
	case ax == 0 && ay == 0:
		return DirNone
	case ax >= ay && v.X < 0:
		return DirLeft
	case ax >= ay:
		return DirRight
	case v.Y < 0:
		return DirUp
	default:
		return DirDown
	}
}
