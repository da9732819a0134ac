package adversary

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/actor"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// HomeArrival is the distance at which a returning adversary counts as home.
const HomeArrival = 0.1

// Config holds per-adversary tuning.
type Config struct {
	NormalSpeed     float64 // cells per second
	FrightenedSpeed float64
	ReturningSpeed  float64
	FrightSeconds   float64 // local fright timer length
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		NormalSpeed:     3,
		FrightenedSpeed: 1.5,
		ReturningSpeed:  6,
		FrightSeconds:   10,
	}
}

// Adversary is one self-driven actor. It never decides contact outcomes
// itself; the round orchestrator raises state requests and the adversary
// applies the ones its transition table allows.
type Adversary struct {
	ID   int
	Name string

	// SpeedScale multiplies every state speed. Difficulty progression sets it.
	SpeedScale float64

	cfg         Config
	mover       actor.StepMover
	probe       *maze.Probe
	home        maze.Cell
	state       State
	frightTimer float64
	rng         *rand.Rand
	logger      *log.Logger

	lastTick    uint64
	transitions uint64
}

// New creates an adversary resting at its home cell in the Normal state.
func New(id int, name string, probe *maze.Probe, home maze.Cell, cfg Config, rng *rand.Rand, logger *log.Logger) *Adversary {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adversary{
		ID:         id,
		Name:       name,
		SpeedScale: 1,
		cfg:        cfg,
		mover:      actor.NewStepMover(probe, home),
		probe:      probe,
		home:       home,
		rng:        rng,
		logger:     logger.With("adversary", name),
	}
}

// State returns the current behavior state.
func (a *Adversary) State() State {
	return a.state
}

// FrightRemaining returns the local fright countdown. It is only meaningful
// while Frightened and reads zero otherwise.
func (a *Adversary) FrightRemaining() float64 {
	if a.state != Frightened {
		return 0
	}
	return a.frightTimer
}

// Position returns the continuous position.
func (a *Adversary) Position() core.Vec {
	return a.mover.Pos
}

// Facing returns the heading of the current or last step.
func (a *Adversary) Facing() actor.Direction {
	return a.mover.Facing
}

// Destination returns the cell center currently being transited to.
func (a *Adversary) Destination() (core.Vec, bool) {
	if a.state == Defeated {
		return core.CellCenter(a.home.Col, a.home.Row), true
	}
	return a.mover.Destination()
}

// Home returns the spawn cell.
func (a *Adversary) Home() maze.Cell {
	return a.home
}

// Contactable reports whether contact with the player has any effect.
// Defeated adversaries in transit are ignored.
func (a *Adversary) Contactable() bool {
	return a.state != Defeated
}

// Transitions returns how many state changes have been applied.
func (a *Adversary) Transitions() uint64 {
	return a.transitions
}

// Speed returns the movement speed for the current state.
func (a *Adversary) Speed() float64 {
	var base float64
	switch a.state {
	case Frightened:
		base = a.cfg.FrightenedSpeed
	case Defeated:
		base = a.cfg.ReturningSpeed
	default:
		base = a.cfg.NormalSpeed
	}
	return base * a.SpeedScale
}

// Request asks for a state change during tick. It returns false and changes
// nothing when the request is illegal, targets the current state, or another
// transition was already honored this tick. Re-entering Frightened is thus a
// no-op that keeps the running countdown.
func (a *Adversary) Request(to State, tick uint64) bool {
	if to == a.state || !CanTransition(a.state, to) {
		return false
	}
	return a.apply(to, tick)
}

func (a *Adversary) apply(to State, tick uint64) bool {
	if a.transitions > 0 && a.lastTick == tick {
		return false
	}

	from := a.state
	a.state = to
	a.lastTick = tick
	a.transitions++

	switch to {
	case Frightened:
		a.frightTimer = a.cfg.FrightSeconds
	case Defeated:
		a.frightTimer = 0
		a.mover.Teleport(a.mover.Pos)
	case Normal:
		a.frightTimer = 0
	}

	a.logger.Debug("state changed", "from", from, "to", to, "tick", tick)
	return true
}

// Update runs the frame-rate phase: the local fright countdown and the
// direction choice while idle.
func (a *Adversary) Update(dt float64, tick uint64) {
	if a.state == Frightened {
		a.frightTimer -= dt
		if a.frightTimer <= 0 {
			a.frightTimer = 0
			a.Request(Normal, tick)
		}
	}

	if a.state != Defeated && !a.mover.Moving() {
		a.chooseDirection()
	}
}

// FixedUpdate runs the physics-rate phase: stepping toward the destination,
// or transiting home while Defeated.
func (a *Adversary) FixedUpdate(dt float64, tick uint64) {
	if a.state == Defeated {
		a.returnHome(dt, tick)
		return
	}

	if a.mover.Advance(a.Speed(), dt) {
		a.chooseDirection()
	}
}

// chooseDirection keeps the headings the probe allows and picks one
// uniformly. With no candidates the adversary stays put until the next
// evaluation.
func (a *Adversary) chooseDirection() {
	var candidates [4]actor.Direction
	n := 0
	for _, d := range actor.Directions {
		if a.probe.CanEnter(a.mover.Pos, d.Vec()) {
			candidates[n] = d
			n++
		}
	}
	if n == 0 {
		return
	}
	a.mover.Begin(candidates[a.rng.Intn(n)])
}

// returnHome moves straight toward the home cell at the returning speed and
// resumes Normal behavior on arrival. The transit cannot be cancelled.
func (a *Adversary) returnHome(dt float64, tick uint64) {
	home := core.CellCenter(a.home.Col, a.home.Row)
	pos := a.mover.Pos.MoveTowards(home, a.Speed()*dt)
	a.mover.Teleport(pos)

	if pos.Dist(home) > HomeArrival {
		return
	}
	a.mover.Teleport(home)
	if a.apply(Normal, tick) {
		a.chooseDirection()
	}
}

// Reset returns the adversary to its home cell in the Normal state. Used at
// round start.
func (a *Adversary) Reset() {
	a.mover.Teleport(core.CellCenter(a.home.Col, a.home.Row))
	a.mover.Facing = actor.DirNone
	a.state = Normal
	a.frightTimer = 0
	a.transitions = 0
	a.lastTick = 0
}
