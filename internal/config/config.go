// Package config provides YAML-based game configuration loading and
// difficulty management for the maze chase.
package config

// MazeChaseConfig contains all tuning for the maze chase.
type MazeChaseConfig struct {
	Player      PlayerConfig     `yaml:"player"`
	Adversaries AdversaryConfig  `yaml:"adversaries"`
	Round       RoundConfig      `yaml:"round"`
	Bonus       BonusConfig      `yaml:"bonus"`
	Generator   GeneratorConfig  `yaml:"generator"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
	Audio       AudioConfig      `yaml:"audio"`
}

// AudioConfig controls the synthesized sound cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0..1
	SampleRate int     `yaml:"sample_rate"`
}

// PlayerConfig defines player movement.
type PlayerConfig struct {
	Speed         float64 `yaml:"speed"`          // cells per second
	TurnTolerance float64 `yaml:"turn_tolerance"` // cells from center a buffered turn may snap
}

// AdversaryConfig defines the adversary roster and speeds.
type AdversaryConfig struct {
	Count           int      `yaml:"count"`
	Names           []string `yaml:"names"`
	NormalSpeed     float64  `yaml:"normal_speed"`
	FrightenedSpeed float64  `yaml:"frightened_speed"`
	ReturningSpeed  float64  `yaml:"returning_speed"`
	FrightSeconds   float64  `yaml:"fright_seconds"` // local countdown
	ContactRadius   float64  `yaml:"contact_radius"`
}

// RoundConfig defines round timing and lives.
type RoundConfig struct {
	Lives         int     `yaml:"lives"`
	CountdownStep float64 `yaml:"countdown_step"`
	FrightWindow  float64 `yaml:"fright_window"`
	Invincibility float64 `yaml:"invincibility"`
	EndDelay      float64 `yaml:"end_delay"`
	GameOverScene string  `yaml:"game_over_scene"`
	ClearedScene  string  `yaml:"cleared_scene"`
}

// BonusConfig defines the bonus spawner.
type BonusConfig struct {
	Interval float64 `yaml:"interval"`
	Lifetime float64 `yaml:"lifetime"`
}

// GeneratorConfig defines procedural maze parameters used when a level
// asks for generation without giving its own.
type GeneratorConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	WallChance   float64 `yaml:"wall_chance"`
	PowerPellets int     `yaml:"power_pellets"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "level", or "none"
	MaxAt int    `yaml:"max_at"` // score, ticks or level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to adversary speed at max difficulty
	FrightReduction float64 `yaml:"fright_reduction"` // seconds cut from the fright window at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
