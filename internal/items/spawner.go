package items

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// SpawnerConfig tunes the bonus spawner. Times are simulation seconds.
type SpawnerConfig struct {
	Interval float64
	Lifetime float64
}

// DefaultSpawnerConfig returns the stock bonus timings.
func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{Interval: 10, Lifetime: 10}
}

// Bonus is a timed bonus item. It drifts from its spawn cell toward the
// mirrored cell of the maze and expires when its lifetime runs out.
type Bonus struct {
	Item
	From core.Vec
	To   core.Vec
	Age  float64

	lifetime float64
}

// Remaining returns the time left before the bonus expires.
func (b *Bonus) Remaining() float64 {
	return b.lifetime - b.Age
}

// Spawner places a bonus item every interval on an eligible cell and
// removes it when it expires.
type Spawner struct {
	cfg    SpawnerConfig
	maze   *maze.Maze
	rng    *rand.Rand
	logger *log.Logger

	timer   float64
	active  []*Bonus
	nextID  int
	skipped int
}

// NewSpawner creates a spawner over m. A nil logger discards.
func NewSpawner(cfg SpawnerConfig, m *maze.Maze, rng *rand.Rand, logger *log.Logger) *Spawner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Spawner{cfg: cfg, maze: m, rng: rng, logger: logger}
}

// Active returns the live bonus items.
func (s *Spawner) Active() []*Bonus {
	return s.active
}

// Skipped returns how many intervals passed without an eligible cell.
func (s *Spawner) Skipped() int {
	return s.skipped
}

// Update advances the spawn timer and every live bonus by dt. It returns
// the bonuses spawned during this call.
func (s *Spawner) Update(dt float64) []*Bonus {
	s.age(dt)

	if s.cfg.Interval <= 0 {
		return nil
	}

	var spawned []*Bonus
	s.timer += dt
	for s.timer >= s.cfg.Interval {
		s.timer -= s.cfg.Interval
		if b := s.spawn(); b != nil {
			spawned = append(spawned, b)
		}
	}
	return spawned
}

// Take collects a live bonus and drops it from the active set.
func (s *Spawner) Take(b *Bonus) bool {
	if !b.Collect() {
		return false
	}
	s.remove(b)
	return true
}

// Touching returns the live bonuses within radius of p.
func (s *Spawner) Touching(p core.Vec, radius float64) []*Bonus {
	var out []*Bonus
	for _, b := range s.active {
		if b.Touches(p, radius) {
			out = append(out, b)
		}
	}
	return out
}

// Reset clears every live bonus and restarts the interval.
func (s *Spawner) Reset() {
	s.active = nil
	s.timer = 0
}

func (s *Spawner) age(dt float64) {
	kept := s.active[:0]
	for _, b := range s.active {
		if b.collected {
			continue
		}
		b.Age += dt
		if b.Age >= b.lifetime {
			s.logger.Debug("bonus expired", "id", b.ID)
			continue
		}
		b.Pos = b.From.Lerp(b.To, b.Age/b.lifetime)
		kept = append(kept, b)
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
}

func (s *Spawner) remove(b *Bonus) {
	for i, a := range s.active {
		if a == b {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

// spawn picks a uniform cell among the empty-or-pellet cells not holding a
// live bonus. With none it skips this interval.
func (s *Spawner) spawn() *Bonus {
	occupied := make(map[maze.Cell]bool, len(s.active))
	for _, b := range s.active {
		col, row := b.Pos.Cell()
		occupied[maze.Cell{Col: col, Row: row}] = true
	}

	var eligible []maze.Cell
	s.maze.Each(func(c maze.Cell, _ maze.Tile) {
		if s.maze.IsEmptyOrPellet(c.Col, c.Row) && !occupied[c] {
			eligible = append(eligible, c)
		}
	})
	if len(eligible) == 0 {
		s.skipped++
		s.logger.Debug("bonus spawn skipped", "reason", "no eligible cell")
		return nil
	}

	c := eligible[s.rng.Intn(len(eligible))]
	from := core.CellCenter(c.Col, c.Row)
	to := core.CellCenter(s.maze.Width()-1-c.Col, s.maze.Height()-1-c.Row)
	b := &Bonus{
		Item:     Item{ID: s.nextID, Kind: BonusItem, Pos: from},
		From:     from,
		To:       to,
		lifetime: s.cfg.Lifetime,
	}
	s.nextID++
	s.active = append(s.active, b)
	s.logger.Debug("bonus spawned", "id", b.ID, "col", c.Col, "row", c.Row)
	return b
}
