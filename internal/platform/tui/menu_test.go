package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	_ "github.com/vovakirdan/tui-mazechase/internal/games/mazechase"
	"github.com/vovakirdan/tui-mazechase/internal/levels"
)

var testLevels = []levels.Level{
	{ID: "01_classic", Name: "Classic"},
	{ID: "02_crossroads", Name: "Crossroads"},
}

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), nil)
	if len(m.items) != 2 {
		t.Fatalf("expected 2 modes, got %+v", m.items)
	}
	if m.items[0].GameID != "mazechase" || m.items[1].GameID != "mazechase_random" {
		t.Errorf("unexpected mode order: %+v", m.items)
	}
	if !m.items[0].Campaign || m.items[1].Campaign {
		t.Errorf("only the campaign mode should open the level picker: %+v", m.items)
	}
}

func TestMenuCampaignOpensLevelPicker(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), testLevels)

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Fatal("campaign should open the level picker first")
	}
	if m.screen != screenLevels || len(m.levels) != 3 {
		t.Fatalf("level picker not shown: screen %v, %d choices", m.screen, len(m.levels))
	}

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown}) // clamped
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil || m.Selected().GameID != "mazechase" {
		t.Fatalf("Selected() = %+v", m.Selected())
	}
	if m.SelectedLevel() != "02_crossroads" {
		t.Errorf("SelectedLevel() = %q, want 02_crossroads", m.SelectedLevel())
	}
}

func TestMenuBackLeavesLevelPicker(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), testLevels)
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenModes {
		t.Error("esc should return to the mode list")
	}
}

func TestMenuRandomStartsDirectly(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), testLevels)
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().GameID != "mazechase_random" {
		t.Fatalf("Selected() = %+v", m.Selected())
	}
	if m.SelectedLevel() != "" {
		t.Errorf("random mode has no level, got %q", m.SelectedLevel())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), nil)
	if m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyTab}); !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
	m = NewMenuModel(core.DefaultConfig(), nil)
	if m = menuKey(t, m, runeKey('q')); !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSessionGameAndBack(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7}
	s := NewSessionModel(nil, cfg, testLevels, nil)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.gameModel == nil {
		t.Fatal("selecting random mode should start a game")
	}
	if s.View() == "" {
		t.Error("game view is empty")
	}

	step(runeKey('p'))
	step(TickMsg{})
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.gameModel != nil {
		t.Fatal("esc while paused should return to the menu")
	}
	if s.menu.Selected() != nil {
		t.Error("menu should be fresh after returning")
	}
}

func TestSessionScoreboard(t *testing.T) {
	s := NewSessionModel(nil, core.DefaultConfig(), nil, nil)
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.board == nil {
		t.Fatal("tab should open the scoreboard")
	}
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.board != nil {
		t.Error("esc should leave the scoreboard")
	}
}
