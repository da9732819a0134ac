package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mazechase/internal/audio"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/platform/tui"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

var flagRandom bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Start playing. The campaign starts from its first level unless a
level ID is given (see 'mazechase levels'). --random plays endless
procedurally generated mazes instead.

Controls:
  Arrows/WASD/HJKL  - Move (turns are buffered until the corridor allows them)
  P/Space           - Pause
  M                 - Toggle sound
  R                 - Restart (after game over)
  Ctrl+S            - Screenshot (also copied to the clipboard)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Five lives, two adversaries, slow ramp
  normal - Default tuning
  hard   - Two lives, shorter fright window, starts faster
  fixed  - No progression between levels

Examples:
  mazechase play
  mazechase play 03_wilds
  mazechase play --random --seed 42
  mazechase play --difficulty hard
  mazechase play --config ./my-tuning.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRandom, "random", false, "Play procedurally generated mazes")
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()
	if err := setup(logger); err != nil {
		return err
	}

	gameID := "mazechase"
	if flagRandom {
		gameID = "mazechase_random"
	}
	level := ""
	if len(args) == 1 {
		if flagRandom {
			return fmt.Errorf("a level cannot be combined with --random")
		}
		level = args[0]
		if err := checkLevel(level); err != nil {
			return err
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	player := newAudio(logger)
	defer player.Close()

	logger.Info("playing", "game", gameID, "level", level)
	return tui.Run(game, runtimeConfig(), tui.Options{
		Store:      store,
		Audio:      player,
		Logger:     logger,
		StartLevel: level,
	})
}

// checkLevel fails when id is not a campaign level.
func checkLevel(id string) error {
	lvls, err := mazechase.CampaignLevels()
	if err != nil {
		return fmt.Errorf("reading levels: %w", err)
	}
	for _, l := range lvls {
		if l.ID == id {
			return nil
		}
	}
	return fmt.Errorf("unknown level %q, run 'mazechase levels' to list them", id)
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. The game still runs without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// newAudio opens the speaker when sound is enabled. A player that failed to
// open stays silent.
func newAudio(logger *log.Logger) *audio.Player {
	a := gameConfig.Audio
	player := audio.NewPlayer(audio.Config{
		Enabled:    a.Enabled,
		Volume:     a.Volume,
		SampleRate: a.SampleRate,
	}, logger)
	//nolint:errcheck // Init logs the failure and the player degrades to silent
	player.Init()
	return player
}
