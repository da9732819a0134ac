package mazechase

import (
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/round"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StateCountdown    GameStateType = "countdown"
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateCaught       GameStateType = "caught"
	StateGameOver     GameStateType = "game_over"
	StatePaused       GameStateType = "paused"
	StateNoLevel      GameStateType = "no_level"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// AdversarySnapshot is the observable state of one adversary.
type AdversarySnapshot struct {
	Pos   core.Vec
	State string
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	Mode           string
	Level          string
	Score          int
	Lives          int
	Elapsed        string
	Player         core.Vec
	Facing         string
	Adversaries    []AdversarySnapshot
	ItemsLeft      int
	Bonuses        int
	FrightLeft     float64
	State          GameStateType
	RoundsFinished int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:           g.tick,
		Mode:           string(g.mode),
		Level:          g.level.ID,
		RoundsFinished: len(g.summaries),
		State:          g.stateType(),
	}
	if g.orch == nil {
		return s
	}

	s.Score = g.orch.Score()
	s.Lives = g.orch.Lives()
	s.Elapsed = g.hud.elapsed
	s.Player = g.player.Position()
	s.Facing = g.player.Facing().String()
	s.ItemsLeft = g.orch.Field().Remaining()
	s.Bonuses = len(g.orch.Spawner().Active())
	s.FrightLeft = g.orch.FrightRemaining()
	for _, a := range g.orch.Roster() {
		s.Adversaries = append(s.Adversaries, AdversarySnapshot{Pos: a.Position(), State: a.State().String()})
	}
	return s
}

func (g *Game) stateType() GameStateType {
	switch {
	case g.noLevel != "":
		return StateNoLevel
	case g.gameOver:
		return StateGameOver
	case g.tooSmall:
		return StatePausedSmall
	case g.paused:
		return StatePaused
	case g.orch == nil:
		return StateNoLevel
	}
	switch g.orch.Phase() {
	case round.Countdown:
		return StateCountdown
	case round.Ending:
		if g.orch.Outcome() == round.OutcomeCleared {
			return StateLevelCleared
		}
		return StateCaught
	}
	return StatePlaying
}
