package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score, time
// or level index.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Progress is the measure difficulty progresses on.
type Progress struct {
	Score int
	Ticks int
	Level int // zero-based index into the campaign
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = float64(p.Ticks) / maxAt
	case "level":
		progress = float64(p.Level) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpeedScale returns the adversary speed multiplier, from 1 up to
// 1 + speed_multiplier at max difficulty.
func (d *DifficultyManager) SpeedScale(p Progress) float64 {
	return 1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
}

// FrightWindow returns the fright window length for the difficulty level.
func (d *DifficultyManager) FrightWindow(base float64, p Progress) float64 {
	result := base - d.Level(p)*d.cfg.Scaling.FrightReduction
	if result < 2 { // Minimum usable window
		result = 2
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
