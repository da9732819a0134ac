package mazechase

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-mazechase/internal/actor"
	"github.com/vovakirdan/tui-mazechase/internal/adversary"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/items"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
	"github.com/vovakirdan/tui-mazechase/internal/round"
)

const (
	hudHeight = 2
	cellW     = 2 // screen columns per maze cell, keeps cells roughly square
)

var adversaryColors = []core.Color{core.ColorRed, core.ColorPink, core.ColorCyan, core.ColorOrange}

// outer walls use double lines, inner walls single lines.
var (
	outerGlyphs = map[maze.Orientation]rune{
		maze.OrientHorizontal:  '═',
		maze.OrientVertical:    '║',
		maze.OrientTopLeft:     '╔',
		maze.OrientTopRight:    '╗',
		maze.OrientBottomLeft:  '╚',
		maze.OrientBottomRight: '╝',
		maze.OrientNone:        '█',
	}
	innerGlyphs = map[maze.Orientation]rune{
		maze.OrientHorizontal:  '─',
		maze.OrientVertical:    '│',
		maze.OrientTopLeft:     '┌',
		maze.OrientTopRight:    '┐',
		maze.OrientBottomLeft:  '└',
		maze.OrientBottomRight: '┘',
		maze.OrientNone:        '■',
	}
)

// layout recomputes the map offset for the current screen size.
func (g *Game) layout() (offX, offY int) {
	if g.maze == nil {
		return 0, hudHeight
	}
	mapW := g.maze.Width() * cellW
	mapH := g.maze.Height()
	g.tooSmall = g.rt.ScreenW < mapW || g.rt.ScreenH < mapH+hudHeight
	return (g.rt.ScreenW - mapW) / 2, hudHeight
}

// toScreen maps a continuous maze position to a screen cell. Horizontal
// motion gets half-cell resolution from the double-width cells.
func toScreen(p core.Vec, offX, offY int) (int, int) {
	x := offX + int(math.Round(p.X*cellW))
	y := offY + int(math.Round(p.Y))
	return x, y
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.rt.ScreenW, g.rt.ScreenH = dst.Width(), dst.Height()

	// Draw HUD
	g.renderHUD(dst)

	if g.noLevel != "" {
		g.renderOverlay(dst, g.noLevel, "Press B to go back")
		return
	}
	if g.orch == nil {
		return
	}

	offX, offY := g.layout()
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderMaze(dst, offX, offY)
	g.renderItems(dst, offX, offY)
	g.renderAdversaries(dst, offX, offY)
	g.renderPlayer(dst, offX, offY)

	// Draw overlays
	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Press R to restart", g.orch.Score()))
	case g.orch.Phase() == round.Countdown:
		g.renderOverlay(dst, g.hud.countdown, g.level.Name)
	case g.orch.Phase() == round.Ending && g.orch.Outcome() == round.OutcomeCleared:
		g.renderOverlay(dst, "Level cleared!", fmt.Sprintf("Score: %d", g.orch.Score()))
	case g.orch.Phase() == round.Ending:
		g.renderOverlay(dst, "Caught!", fmt.Sprintf("Score: %d", g.orch.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	lives := strings.Repeat("@ ", max(g.hud.lives, 0))
	hud := fmt.Sprintf(" %s — Score: %d  Lives: %s Time: %s  Level: %s",
		g.Title(), g.hud.score, lives, g.hud.elapsed, g.level.Name)
	dst.DrawText(0, 0, hud)

	if g.orch != nil && g.orch.Frightened() {
		fr := fmt.Sprintf("POWER %.1fs ", g.orch.FrightRemaining())
		dst.DrawTextColored(dst.Width()-len(fr), 0, fr, core.ColorBrightBlue)
	}

	// Draw separator
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderMaze draws walls with glyphs chosen from their orientation.
func (g *Game) renderMaze(dst *core.Screen, offX, offY int) {
	g.maze.Each(func(c maze.Cell, t maze.Tile) {
		if !t.Wall() {
			return
		}
		o := g.maze.OrientationAt(c.Col, c.Row)
		glyphs, color := innerGlyphs, core.ColorBlue
		if t == maze.OuterWall || t == maze.OuterCorner {
			glyphs, color = outerGlyphs, core.ColorBrightBlue
		}
		x, y := offX+c.Col*cellW, offY+c.Row
		dst.SetColored(x, y, glyphs[o], color)

		// Fill the second column when the wall continues to the right.
		if g.maze.TileAt(c.Col+1, c.Row).Wall() {
			fill := glyphs[maze.OrientHorizontal]
			dst.SetColored(x+1, y, fill, color)
		}
	})
}

func (g *Game) renderItems(dst *core.Screen, offX, offY int) {
	for _, it := range g.orch.Field().Items() {
		if it.Collected() {
			continue
		}
		x, y := toScreen(it.Pos, offX, offY)
		if it.Kind == items.PowerItem {
			// Blink at about 4 Hz.
			if (g.tick/8)%2 == 0 {
				dst.SetColored(x, y, '●', core.ColorBrightYellow)
			}
			continue
		}
		dst.SetColored(x, y, '·', core.ColorWhite)
	}
	for _, b := range g.orch.Spawner().Active() {
		x, y := toScreen(b.Pos, offX, offY)
		dst.SetColored(x, y, '%', core.ColorBrightRed)
	}
}

func (g *Game) renderAdversaries(dst *core.Screen, offX, offY int) {
	for i, a := range g.orch.Roster() {
		x, y := toScreen(a.Position(), offX, offY)
		switch a.State() {
		case adversary.Frightened:
			color := core.ColorBlue
			// Flash white while the window is about to close.
			if g.orch.FrightRemaining() < 2 && (g.tick/10)%2 == 0 {
				color = core.ColorWhite
			}
			dst.SetColored(x, y, 'W', color)
		case adversary.Defeated:
			dst.SetColored(x, y, '"', core.ColorGray)
		default:
			dst.SetColored(x, y, 'M', adversaryColors[i%len(adversaryColors)])
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, offX, offY int) {
	// Blink while invincible.
	if g.orch.Invincible() && (g.tick/6)%2 == 0 {
		return
	}
	glyph := 'O'
	switch g.player.Facing() {
	case actor.DirUp:
		glyph = 'V'
	case actor.DirDown:
		glyph = 'Λ'
	case actor.DirLeft:
		glyph = '>'
	case actor.DirRight:
		glyph = '<'
	}
	x, y := toScreen(g.player.Position(), offX, offY)
	dst.SetColored(x, y, glyph, core.ColorYellow)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
