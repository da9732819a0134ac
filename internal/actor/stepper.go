package actor

import (
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// SnapEpsilon is the distance under which a stepping actor snaps onto its
// destination cell.
const SnapEpsilon = 0.001

// StepMover implements discrete step-to-cell movement: at most one pending
// destination cell, approached at constant speed and snapped to on arrival.
type StepMover struct {
	Pos    core.Vec
	Facing Direction
	dest   core.Vec
	moving bool
	probe  *maze.Probe
}

// NewStepMover places a stepping actor at the center of cell.
func NewStepMover(probe *maze.Probe, cell maze.Cell) StepMover {
	pos := core.CellCenter(cell.Col, cell.Row)
	return StepMover{Pos: pos, dest: pos, probe: probe}
}

// Moving reports whether a destination is pending.
func (s *StepMover) Moving() bool {
	return s.moving
}

// Destination returns the pending destination and whether one exists.
func (s *StepMover) Destination() (core.Vec, bool) {
	return s.dest, s.moving
}

// Cell returns the cell the actor currently occupies.
func (s *StepMover) Cell() maze.Cell {
	col, row := s.Pos.Cell()
	return maze.Cell{Col: col, Row: row}
}

// Begin commits a step one cell in dir if the probe allows it. It refuses
// while a step is already pending.
func (s *StepMover) Begin(dir Direction) bool {
	if s.moving || dir == DirNone {
		return false
	}
	if !s.probe.CanEnter(s.Pos, dir.Vec()) {
		return false
	}
	s.dest = s.Pos.Add(dir.Vec())
	s.Facing = dir
	s.moving = true
	return true
}

// Advance moves toward the pending destination by speed*dt and snaps when
// within SnapEpsilon. It reports whether the destination was reached.
func (s *StepMover) Advance(speed, dt float64) bool {
	if !s.moving {
		return false
	}
	s.Pos = s.Pos.MoveTowards(s.dest, speed*dt)
	if s.Pos.Dist(s.dest) < SnapEpsilon {
		s.Pos = s.dest
		s.moving = false
		return true
	}
	return false
}

// Teleport places the actor at pos and drops any pending destination.
func (s *StepMover) Teleport(pos core.Vec) {
	s.Pos = pos
	s.dest = pos
	s.moving = false
}
