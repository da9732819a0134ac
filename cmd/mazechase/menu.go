package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/platform/tui"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and level picker",
	Long: `Start in interactive menu mode.

Pick campaign or random mode; the campaign then asks for a starting level.
After a game ends, back (B/Esc) returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc/B        - Back
  Q            - Quit

Examples:
  mazechase menu
  mazechase menu --fps 30
  mazechase menu --levels ./my-levels`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()
	if err := setup(logger); err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	player := newAudio(logger)
	defer player.Close()

	cfg := runtimeConfig()

	// Menu loop
	for {
		lvls, err := mazechase.CampaignLevels()
		if err != nil {
			logger.Warn("cannot list campaign levels", "err", err)
		}

		menuResult, err := tui.RunMenu(cfg, lvls)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed for each game unless pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		err = tui.Run(game, cfg, tui.Options{
			Store:      store,
			Audio:      player,
			Logger:     logger,
			StartLevel: menuResult.LevelID,
		})
		if err != nil {
			return err
		}
		// Loop back to menu
	}
}
