package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mazechase/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(1, 1, "cd")

	got := RenderScreen(s)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "ab   " || lines[1] != " cd  " {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRenderScreenKeepsVisibleWidth(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.SetColored(0, 0, 'M', core.ColorRed)
	s.SetColored(1, 0, 'M', core.ColorRed)
	s.SetColored(3, 0, '.', core.ColorWhite)
	s.SetColored(4, 0, ' ', core.ColorBlue)

	got := RenderScreen(s)
	if w := lipgloss.Width(got); w != 6 {
		t.Errorf("visible width = %d, want 6", w)
	}
	if !strings.Contains(got, "MM") {
		t.Errorf("same-colored cells should render as one run: %q", got)
	}
}

func TestEffectiveColor(t *testing.T) {
	if c := effectiveColor(core.Cell{Rune: ' ', Color: core.ColorBlue}); c != core.ColorDefault {
		t.Errorf("blank cell color = %v, want default", c)
	}
	if c := effectiveColor(core.Cell{Rune: '#', Color: core.ColorBlue}); c != core.ColorBlue {
		t.Errorf("glyph color = %v, want blue", c)
	}
}
