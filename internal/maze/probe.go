package maze

import "github.com/vovakirdan/tui-mazechase/internal/core"

// ProbeDistance is how far ahead a probe looks, in cells.
const ProbeDistance = 1.0

// Collider is a dynamic obstruction that can close a cell independently of
// its tile kind.
type Collider interface {
	Blocks(col, row int) bool
}

// Probe answers directional obstruction queries against a maze plus any
// dynamic colliders. It has no side effects.
type Probe struct {
	maze      *Maze
	colliders []Collider
}

// NewProbe creates a probe over the maze and optional dynamic colliders.
func NewProbe(m *Maze, colliders ...Collider) *Probe {
	return &Probe{maze: m, colliders: colliders}
}

// Maze returns the maze the probe tests against.
func (p *Probe) Maze() *Maze {
	return p.maze
}

// CanEnter casts a probe of ProbeDistance from `from` along dir and reports
// whether it stays clear of wall-class and dynamic colliders. A zero
// direction always reports false.
func (p *Probe) CanEnter(from core.Vec, dir core.Vec) bool {
	if dir.Len() == 0 || p.maze == nil {
		return false
	}
	unit := dir.Scale(1 / dir.Len())
	end := from.Add(unit.Scale(ProbeDistance))
	col, row := end.Cell()
	return p.cellClear(col, row)
}

// Clear reports whether (col, row) is open and not blocked by a collider.
func (p *Probe) Clear(col, row int) bool {
	if p.maze == nil {
		return false
	}
	return p.cellClear(col, row)
}

func (p *Probe) cellClear(col, row int) bool {
	if !p.maze.IsOpen(col, row) {
		return false
	}
	for _, c := range p.colliders {
		if c != nil && c.Blocks(col, row) {
			return false
		}
	}
	return true
}
