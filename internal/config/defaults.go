package config

import (
	_ "embed"
)

//go:embed defaults/mazechase.yaml
var defaultMazeChaseYAML []byte

// DefaultMazeChaseConfig returns the hardcoded maze chase configuration.
func DefaultMazeChaseConfig() MazeChaseConfig {
	return MazeChaseConfig{
		Player: PlayerConfig{
			Speed:         4,
			TurnTolerance: 0.25,
		},
		Adversaries: AdversaryConfig{
			Count:           4,
			Names:           []string{"blinky", "pinky", "inky", "clyde"},
			NormalSpeed:     3,
			FrightenedSpeed: 1.5,
			ReturningSpeed:  6,
			FrightSeconds:   10,
			ContactRadius:   0.6,
		},
		Round: RoundConfig{
			Lives:         3,
			CountdownStep: 1,
			FrightWindow:  10,
			Invincibility: 1,
			EndDelay:      3,
			GameOverScene: "game_over",
			ClearedScene:  "next_level",
		},
		Bonus: BonusConfig{
			Interval: 10,
			Lifetime: 10,
		},
		Generator: GeneratorConfig{
			Width:        21,
			Height:       15,
			WallChance:   0.3,
			PowerPellets: 4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				FrightReduction: 5,
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}
