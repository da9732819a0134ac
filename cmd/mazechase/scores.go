package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/round"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and level records",
	Long: `Display the top 10 scores of a game mode (campaign by default)
followed by per-level records: plays, clears and the fastest clear.

Examples:
  mazechase scores
  mazechase scores mazechase_random`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "mazechase"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if _, ok := registry.Lookup(gameID); !ok {
		return fmt.Errorf("unknown mode %q, run 'mazechase list' to see them", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mazechase play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	bests, err := store.LevelBests(gameID)
	if err != nil {
		return fmt.Errorf("retrieving level records: %w", err)
	}
	if len(bests) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Levels")
	fmt.Println()
	fmt.Printf("  %-16s  %-5s  %-6s  %s\n", "Level", "Plays", "Clears", "Fastest")
	fmt.Printf("  %-16s  %-5s  %-6s  %s\n", "-----", "-----", "------", "-------")
	for _, b := range bests {
		fastest := "-"
		if b.Clears > 0 {
			fastest = round.FormatElapsed(float64(b.FastestClear) / 1000)
		}
		fmt.Printf("  %-16s  %-5d  %-6d  %s\n", b.LevelID, b.Plays, b.Clears, fastest)
	}
	return nil
}
