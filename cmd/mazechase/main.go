// mazechase is a maze chase arcade game for the terminal.
//
// Usage:
//
//	mazechase list              - List game modes
//	mazechase levels            - List campaign levels
//	mazechase play [level]      - Play the campaign, optionally from a level
//	mazechase menu              - Start menu to pick modes and levels
//	mazechase serve             - Start SSH server for remote play
//	mazechase web               - Serve scores over HTTP as JSON
//	mazechase scores [mode]     - Show high scores and level records
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Use a custom tuning YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--levels <dir>       - Load campaign levels from a directory
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/levels"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
)

// gameConfig is the tuning loaded by setup, shared by all subcommands.
var gameConfig config.MazeChaseConfig

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - eat pellets, dodge adversaries, in your terminal",
	Long: `Maze Chase is a terminal maze chase game. Clear every pellet of a
level while four adversaries wander the maze; a power pellet turns the
tables for a while.

Available commands:
  list     - Show the game modes
  levels   - Show the campaign levels
  play     - Play directly
  menu     - Interactive mode and level picker
  serve    - Start SSH server for remote play
  web      - Serve scores over HTTP
  scores   - View high scores

Examples:
  mazechase play
  mazechase play 02_crossroads --difficulty hard
  mazechase play --random
  mazechase menu
  mazechase serve --ssh :2222
  mazechase scores`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level YAML files replacing the built-in campaign")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive commands (default ~/.arcade/mazechase.log, - for stderr)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so they log to a file unless told otherwise.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("bad --log-level: %w", err)
	}

	out, closeFn := os.Stderr, func() {}
	path := flagLogFile
	if interactive && path == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr == nil {
			path = filepath.Join(home, ".arcade", "mazechase.log")
		}
	}
	if path != "" && path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "mazechase",
		Level:           level,
	})
	return logger, closeFn, nil
}

// setup loads the tuning and the level source and hands them, with the
// logger, to the game package.
func setup(logger *log.Logger) error {
	cfg, err := config.LoadMazeChase(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		config.ApplyMazeChasePreset(&cfg, preset)
	}
	gameConfig = cfg

	mazechase.SetConfig(cfg)
	mazechase.SetLogger(logger)
	if flagLevelsDir != "" {
		if _, err := os.Stat(flagLevelsDir); err != nil {
			return fmt.Errorf("levels directory: %w", err)
		}
		mazechase.SetLevelLoader(levels.NewLoader(os.DirFS(flagLevelsDir), ".", logger))
	}

	logger.Debug("configured",
		"difficulty", preset,
		"lives", cfg.Round.Lives,
		"adversaries", cfg.Adversaries.Count,
		"levels", flagLevelsDir,
	)
	return nil
}
