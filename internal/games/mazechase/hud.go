package mazechase

import "github.com/vovakirdan/tui-mazechase/internal/round"

// hudText keeps the latest values the round pushed for the status line.
type hudText struct {
	score     int
	lives     int
	elapsed   string
	countdown string
}

var _ round.HUD = (*hudText)(nil)

func (h *hudText) SetScore(score int)       { h.score = score }
func (h *hudText) SetLives(lives int)       { h.lives = lives }
func (h *hudText) SetElapsed(text string)   { h.elapsed = text }
func (h *hudText) SetCountdown(text string) { h.countdown = text }

// RoundSummary describes one finished round, for persistence.
type RoundSummary struct {
	LevelID   string
	Score     int
	ElapsedMS int64
	LivesLeft int
	Outcome   string
}
