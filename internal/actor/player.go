package actor

import (
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// Player is the input-driven actor. It uses the continuous directional
// discipline.
type Player struct {
	Walker
	Speed float64
	home  maze.Cell
}

// NewPlayer creates the player at cell moving at speed cells per second.
func NewPlayer(probe *maze.Probe, cell maze.Cell, speed float64) *Player {
	return &Player{
		Walker: NewWalker(probe, cell),
		Speed:  speed,
		home:   cell,
	}
}

// Input applies one frame of raw intent in [-1,1]².
func (p *Player) Input(intent core.Vec) {
	p.Steer(FromIntent(intent))
}

// Step integrates one fixed step of movement.
func (p *Player) Step(dt float64) {
	p.Advance(p.Speed, dt)
}

// Position returns the player's continuous position.
func (p *Player) Position() core.Vec {
	return p.Pos
}

// Facing returns the committed heading, used for rendering.
func (p *Player) Facing() Direction {
	return p.Dir
}

// Home returns the player's start cell.
func (p *Player) Home() maze.Cell {
	return p.home
}
