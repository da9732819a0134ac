package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/levels"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
)

// MenuItem represents a selectable game mode in the menu.
type MenuItem struct {
	GameID   string
	Title    string
	Campaign bool // opens the level picker
}

// levelChoice is one row of the level picker. An empty ID starts the
// campaign from its first level.
type levelChoice struct {
	ID    string
	Title string
}

// menuScreen selects which list the menu shows.
type menuScreen int

const (
	screenModes menuScreen = iota
	screenLevels
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	items          []MenuItem
	levels         []levelChoice
	screen         menuScreen
	cursor         int
	levelCursor    int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	selectedLevel  string
	openScoreboard bool // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. Campaign levels are offered in a
// second screen when lvls is non-empty.
func NewMenuModel(cfg core.RuntimeConfig, lvls []levels.Level) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Campaign: g.Campaign})
	}

	choices := make([]levelChoice, 0, len(lvls)+1)
	if len(lvls) > 0 {
		choices = append(choices, levelChoice{Title: "From the start"})
	}
	for i, l := range lvls {
		choices = append(choices, levelChoice{
			ID:    l.ID,
			Title: fmt.Sprintf("%d. %s", i+1, l.Name),
		})
	}

	return MenuModel{
		items:     items,
		levels:    choices,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard

	case MenuActionBack:
		if m.screen == screenLevels {
			m.screen = screenModes
		}

	case MenuActionUp:
		m.move(-1)

	case MenuActionDown:
		m.move(1)

	case MenuActionSelect:
		return m.selectCurrent()
	}

	return m, nil
}

// move shifts the cursor of the current screen, clamped to its list.
func (m *MenuModel) move(delta int) {
	cursor, n := &m.cursor, len(m.items)
	if m.screen == screenLevels {
		cursor, n = &m.levelCursor, len(m.levels)
	}
	next := *cursor + delta
	if next >= 0 && next < n {
		*cursor = next
	}
}

func (m MenuModel) selectCurrent() (tea.Model, tea.Cmd) {
	if m.screen == screenLevels {
		item := m.campaignItem()
		m.selected = &item
		m.selectedLevel = m.levels[m.levelCursor].ID
		return m, tea.Quit
	}
	if len(m.items) == 0 {
		return m, nil
	}

	selected := m.items[m.cursor]
	// The campaign opens the level picker first
	if selected.Campaign && len(m.levels) > 1 {
		m.screen = screenLevels
		m.levelCursor = 0
		return m, nil
	}
	m.selected = &selected
	return m, tea.Quit // Exit menu to start game
}

// campaignItem is the mode that opened the level picker. The mode cursor
// does not move while the picker is shown.
func (m MenuModel) campaignItem() MenuItem {
	return m.items[m.cursor]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A Z E   C H A S E"), m.width))
	b.WriteString("\n\n")

	subtitle := "Select a mode"
	lines := make([]string, 0, len(m.items))
	cursor := m.cursor
	if m.screen == screenLevels {
		subtitle = "Select a level"
		for _, l := range m.levels {
			lines = append(lines, l.Title)
		}
		cursor = m.levelCursor
	} else {
		for _, it := range m.items {
			lines = append(lines, it.Title)
		}
	}

	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, line := range lines {
		if i == cursor {
			line = menuCursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	if m.screen == screenLevels {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"
	}
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// SelectedLevel returns the chosen campaign level, empty for the first.
func (m MenuModel) SelectedLevel() string {
	return m.selectedLevel
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, lvls []levels.Level) (MenuResult, error) {
	model := NewMenuModel(cfg, lvls)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
		result.LevelID = m.SelectedLevel()
	} else {
		result.Quit = true
	}

	return result, nil
}
