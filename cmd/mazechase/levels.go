package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows the campaign levels in play order with their size and item
counts. With --levels the directory is read instead of the built-in set, and
every level is built once so broken files show up here.

Examples:
  mazechase levels
  mazechase levels --levels ./my-levels`,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()
	if err := setup(logger); err != nil {
		return err
	}

	lvls, err := mazechase.CampaignLevels()
	if err != nil {
		return fmt.Errorf("reading levels: %w", err)
	}
	if len(lvls) == 0 {
		fmt.Println("No levels found.")
		return nil
	}

	rng := rand.New(rand.NewSource(flagSeed))
	fmt.Printf("  %-3s  %-16s  %-20s  %-7s  %-7s  %s\n", "#", "ID", "Name", "Size", "Pellets", "Power")
	fmt.Printf("  %-3s  %-16s  %-20s  %-7s  %-7s  %s\n", "-", "--", "----", "----", "-------", "-----")
	for i, l := range lvls {
		m, err := l.Build(mazechase.BuildOptions(gameConfig, rng, logger))
		if err != nil {
			fmt.Printf("  %-3d  %-16s  %-20s  error: %v\n", i+1, l.ID, l.Name, err)
			continue
		}
		pellets, power := 0, 0
		m.Each(func(_ maze.Cell, t maze.Tile) {
			switch t {
			case maze.Pellet:
				pellets++
			case maze.PowerPellet:
				power++
			}
		})
		size := fmt.Sprintf("%dx%d", m.Width(), m.Height())
		if l.Procedural() {
			size += "*"
		}
		fmt.Printf("  %-3d  %-16s  %-20s  %-7s  %-7d  %d\n", i+1, l.ID, l.Name, size, pellets, power)
	}
	fmt.Println()
	fmt.Println("* generated when played; counts are for one sample seed.")
	return nil
}
