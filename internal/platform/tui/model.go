package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/audio"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/round"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

// Options carries the optional collaborators of a game session.
type Options struct {
	Store      *storage.Store
	Audio      *audio.Player // nil plays silently
	Logger     *log.Logger
	StartLevel string // campaign level ID, empty for the first
	// Standalone quits the program on back instead of returning to a menu.
	Standalone bool
}

// roundReporter is implemented by games that record finished rounds.
type roundReporter interface {
	Summaries() []mazechase.RoundSummary
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game         registry.Game
	screen       *core.Screen
	opts         Options
	logger       *log.Logger
	config       core.RuntimeConfig
	inputFrame   core.InputFrame
	gameState    core.GameState
	keyMapper    *KeyMapper
	status       string // transient message from the last platform action
	quitting     bool
	backToMenu   bool
	sessionSaved bool // Whether the session has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if a, ok := game.(registry.AudioAttacher); ok && opts.Audio != nil {
		a.SetAudio(opts.Audio)
	}
	if s, ok := game.(registry.LevelSelector); ok && opts.StartLevel != "" {
		s.StartAt(opts.StartLevel)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Platform keys that never reach the game
	switch msg.String() {
	case "ctrl+s":
		m.status = m.saveScreenshot()
		return m, nil
	case "m":
		if m.opts.Audio != nil {
			if m.opts.Audio.ToggleMute() {
				m.status = "sound on"
			} else {
				m.status = "sound off"
			}
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quit()
		return m, tea.Quit
	}

	// Back leaves the game only when it is not running
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.quit()
		m.backToMenu = true
		if m.opts.Standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events. The game adapts its layout
// on the next Render, so the round keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	// A restart starts a new session
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.sessionSaved = false
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save session on game over (once)
	if m.gameState.GameOver && !m.sessionSaved {
		m.saveSession()
		m.sessionSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// quit stops the music and saves an unfinished session with points.
func (m *Model) quit() {
	m.quitting = true
	if !m.gameState.GameOver && !m.sessionSaved && m.gameState.Score > 0 {
		m.saveSession()
		m.sessionSaved = true
	}
	if m.opts.Audio != nil {
		m.opts.Audio.Music(round.MusicNone)
	}
}

// saveSession persists the score and the finished rounds.
func (m *Model) saveSession() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	var records []storage.RoundRecord
	if r, ok := m.game.(roundReporter); ok {
		records = RoundRecords(r.Summaries())
	}
	id, err := m.opts.Store.SaveSession(m.game.ID(), m.gameState.Score, records)
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Error("could not save session", "err", err)
		return
	}
	m.logger.Info("session saved", "id", id, "score", m.gameState.Score, "rounds", len(records))
}

// RoundRecords converts game round summaries into storage records.
func RoundRecords(summaries []mazechase.RoundSummary) []storage.RoundRecord {
	records := make([]storage.RoundRecord, len(summaries))
	for i, s := range summaries {
		records[i] = storage.RoundRecord{
			LevelID:   s.LevelID,
			Score:     s.Score,
			ElapsedMS: s.ElapsedMS,
			LivesLeft: s.LivesLeft,
			Outcome:   s.Outcome,
		}
	}
	return records
}

// saveScreenshot saves the current screen to a file and copies it to the
// clipboard. Returns a status line for the user.
func (m *Model) saveScreenshot() string {
	// Render current state
	m.screen.Clear()
	m.game.Render(m.screen)
	text := m.screen.String()

	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Debug("clipboard unavailable", "err", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed"
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "err", err)
		return "screenshot failed"
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		m.logger.Warn("cannot write screenshot", "err", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.screen.Clear()
	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextColored(0, m.screen.Height()-1, m.status, core.ColorGray)
	}

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting && !m.backToMenu
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	opts.Standalone = true
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
