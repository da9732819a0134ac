package actor

import (
	"math"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// DefaultTurnTolerance is how far from a cell center a walker may be and
// still take a perpendicular turn into that cell's side corridor.
const DefaultTurnTolerance = 0.25

const centerEpsilon = 1e-9

// Walker implements continuous directional movement: it advances along its
// committed heading every step while the probe ahead holds, and halts with
// zero displacement at a cell center when the way is blocked.
//
// A requested heading is buffered in Intended and only committed after a
// successful probe, so a turn pressed early is taken at the next opening.
type Walker struct {
	Pos           core.Vec
	Dir           Direction
	Intended      Direction
	Halted        bool
	TurnTolerance float64

	probe *maze.Probe
}

// NewWalker places a walker at the center of cell, not moving.
func NewWalker(probe *maze.Probe, cell maze.Cell) Walker {
	return Walker{
		Pos:           core.CellCenter(cell.Col, cell.Row),
		Halted:        true,
		TurnTolerance: DefaultTurnTolerance,
		probe:         probe,
	}
}

// Cell returns the cell the walker currently occupies.
func (w *Walker) Cell() maze.Cell {
	col, row := w.Pos.Cell()
	return maze.Cell{Col: col, Row: row}
}

// Steer records a requested heading and commits it if possible.
// DirNone leaves the current request in place.
func (w *Walker) Steer(d Direction) {
	if d != DirNone {
		w.Intended = d
	}
	w.tryCommit()
}

// tryCommit turns onto the intended heading when the probe allows it.
func (w *Walker) tryCommit() {
	want := w.Intended
	if want == DirNone {
		return
	}
	if want == w.Dir && !w.Halted {
		w.Intended = DirNone
		return
	}

	center := w.centerOf(w.Pos)
	perpendicular := w.Dir != DirNone && want.Horizontal() != w.Dir.Horizontal()
	// Between two centers the cell behind is open, since the walker came
	// from it.
	backtrack := w.Dir != DirNone && want == w.Dir.Opposite() && w.Pos.Dist(center) > centerEpsilon

	switch {
	case perpendicular:
		along := w.Pos.Sub(center).Dot(w.Dir.Vec())
		if math.Abs(along) > w.TurnTolerance {
			return
		}
		if !w.probe.CanEnter(center, want.Vec()) {
			return
		}
		w.Pos = center
	case backtrack:
	case !w.probe.CanEnter(w.Pos, want.Vec()):
		return
	}

	w.Dir = want
	w.Halted = false
	w.Intended = DirNone
}

// Advance moves the walker up to speed*dt along its heading and returns its
// net displacement. The walker never moves past the center of a
// cell whose neighbor ahead is closed.
func (w *Walker) Advance(speed, dt float64) float64 {
	w.tryCommit()
	if w.Dir == DirNone || w.Halted {
		return 0
	}

	dir := w.Dir.Vec()
	start := w.Pos
	remaining := speed * dt

	// Each iteration either reaches a center or spends the budget, so the
	// loop is bounded by the number of cells crossed.
	for i := 0; remaining > centerEpsilon && i < 64; i++ {
		center := w.centerOf(w.Pos)
		offset := w.Pos.Sub(center).Dot(dir)
		if math.Abs(offset) < centerEpsilon {
			offset = 0
		}

		// A buffered turn is taken as soon as the walker sits on a center.
		if offset == 0 && w.Intended != DirNone {
			w.tryCommit()
			dir = w.Dir.Vec()
		}

		if offset < 0 {
			step := math.Min(-offset, remaining)
			w.Pos = w.Pos.Add(dir.Scale(step))
			remaining -= step
			continue
		}

		if !w.probe.CanEnter(center, dir) {
			w.Pos = center
			w.Halted = true
			break
		}

		step := math.Min(1-offset, remaining)
		w.Pos = w.Pos.Add(dir.Scale(step))
		remaining -= step
	}

	return w.Pos.Dist(start)
}

// Teleport places the walker at the center of cell and stops it.
func (w *Walker) Teleport(cell maze.Cell) {
	w.Pos = core.CellCenter(cell.Col, cell.Row)
	w.Dir = DirNone
	w.Intended = DirNone
	w.Halted = true
}

func (w *Walker) centerOf(p core.Vec) core.Vec {
	col, row := p.Cell()
	return core.CellCenter(col, row)
}
