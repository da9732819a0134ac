package main

import (
	"fmt"

	"github.com/spf13/cobra"

	// Register the game modes
	_ "github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows every registered game mode.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, g := range games {
		desc := g.Title
		if g.Summary != "" {
			desc += ": " + g.Summary
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, desc)
	}

	fmt.Println()
	fmt.Println("Run 'mazechase play' for the campaign or 'mazechase play --random'.")
}
