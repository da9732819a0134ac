package maze

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-mazechase/internal/core"
)

var classicCodes = [][]int{
	{1, 2, 2, 2, 2, 2, 2, 1},
	{2, 0, 5, 5, 5, 5, 5, 2},
	{2, 3, 5, 4, 4, 7, 5, 2},
	{2, 7, 4, 5, 4, 4, 4, 2},
	{2, 5, 4, 5, 5, 4, 5, 2},
	{2, 4, 5, 4, 4, 4, 7, 2},
	{2, 5, 5, 5, 5, 5, 6, 2},
	{1, 2, 2, 2, 2, 2, 2, 1},
}

func mustMaze(t *testing.T, codes [][]int) *Maze {
	t.Helper()
	m, unknown, err := New(codes)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if len(unknown) > 0 {
		t.Fatalf("unexpected unknown cells: %v", unknown)
	}
	return m
}

func TestTileOpen(t *testing.T) {
	tests := []struct {
		tile Tile
		open bool
	}{
		{Empty, true},
		{OuterCorner, false},
		{OuterWall, false},
		{InnerCorner, false},
		{InnerWall, false},
		{Pellet, true},
		{PowerPellet, true},
		{Junction, true},
		{SpawnPoint, true},
		{None, false},
	}

	for _, tc := range tests {
		t.Run(tc.tile.String(), func(t *testing.T) {
			if tc.tile.Open() != tc.open {
				t.Errorf("%v.Open() = %v, expected %v", tc.tile, tc.tile.Open(), tc.open)
			}
		})
	}
}

func TestNewMazeDimensions(t *testing.T) {
	m := mustMaze(t, classicCodes)

	if m.Width() != 8 || m.Height() != 8 {
		t.Errorf("dimensions = %dx%d, expected 8x8", m.Width(), m.Height())
	}
	if got := m.TileAt(6, 6); got != PowerPellet {
		t.Errorf("TileAt(6, 6) = %v, expected power_pellet", got)
	}
	if got := m.TileAt(-1, 0); got != None {
		t.Errorf("TileAt(-1, 0) = %v, expected none", got)
	}
	if got := m.TileAt(0, 8); got != None {
		t.Errorf("TileAt(0, 8) = %v, expected none", got)
	}
}

func TestRaggedRowsAreClosed(t *testing.T) {
	m := mustMaze(t, [][]int{
		{0, 0, 0, 0},
		{0, 0},
		{0, 0, 0},
	})

	if m.Width() != 4 {
		t.Errorf("Width() = %d, expected longest row 4", m.Width())
	}
	if !m.IsOpen(1, 1) {
		t.Error("cell inside short row should be open")
	}
	if m.IsOpen(2, 1) || m.IsOpen(3, 1) {
		t.Error("cells past a short row's extent should be closed")
	}
	if m.TileAt(3, 2) != None {
		t.Errorf("TileAt past ragged row = %v, expected none", m.TileAt(3, 2))
	}
}

func TestNewRejectsEmptyGrid(t *testing.T) {
	if _, _, err := New(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("New(nil) error = %v, expected ErrEmptyGrid", err)
	}
	if _, _, err := New([][]int{{}, {}}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("New(empty rows) error = %v, expected ErrEmptyGrid", err)
	}
}

func TestUnknownCodesReported(t *testing.T) {
	m, unknown, err := New([][]int{{0, 42}, {9, 5}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if len(unknown) != 2 {
		t.Fatalf("expected 2 unknown cells, got %v", unknown)
	}
	if m.TileAt(1, 0) != Empty {
		t.Errorf("unknown code should read as empty, got %v", m.TileAt(1, 0))
	}
}

func TestIsEmptyOrPellet(t *testing.T) {
	m := mustMaze(t, classicCodes)

	tests := []struct {
		col, row int
		expected bool
	}{
		{1, 1, true},  // empty
		{2, 1, true},  // pellet
		{6, 6, false}, // power pellet
		{5, 2, false}, // junction
		{0, 0, false}, // corner
		{3, 2, false}, // inner wall
	}

	for _, tc := range tests {
		if got := m.IsEmptyOrPellet(tc.col, tc.row); got != tc.expected {
			t.Errorf("IsEmptyOrPellet(%d, %d) = %v, expected %v", tc.col, tc.row, got, tc.expected)
		}
	}
}

func TestPlayerStart(t *testing.T) {
	m := mustMaze(t, classicCodes)
	start, ok := m.PlayerStart()
	if !ok || start != (Cell{Col: 1, Row: 1}) {
		t.Errorf("PlayerStart() = %v, %v; expected (1,1)", start, ok)
	}

	noEmpty := mustMaze(t, [][]int{{2, 2, 2}, {2, 5, 2}, {2, 2, 2}})
	start, ok = noEmpty.PlayerStart()
	if !ok || start != (Cell{Col: 1, Row: 1}) {
		t.Errorf("PlayerStart() fallback = %v, %v; expected (1,1)", start, ok)
	}

	closed := mustMaze(t, [][]int{{2, 2}, {2, 2}})
	if _, ok := closed.PlayerStart(); ok {
		t.Error("PlayerStart() should fail on a fully closed maze")
	}
}

func TestBorderOrientation(t *testing.T) {
	m := mustMaze(t, classicCodes)

	tests := []struct {
		col, row int
		expected Orientation
	}{
		{0, 0, OrientTopLeft},
		{7, 0, OrientTopRight},
		{0, 7, OrientBottomLeft},
		{7, 7, OrientBottomRight},
		{3, 0, OrientHorizontal},
		{3, 7, OrientHorizontal},
		{0, 4, OrientVertical},
		{7, 4, OrientVertical},
		{3, 2, OrientHorizontal}, // inner wall with a wall to its right
		{2, 4, OrientVertical},   // inner wall with a wall above
		{1, 1, OrientNone},       // open cell
	}

	for _, tc := range tests {
		if got := m.OrientationAt(tc.col, tc.row); got != tc.expected {
			t.Errorf("OrientationAt(%d, %d) = %v, expected %v", tc.col, tc.row, got, tc.expected)
		}
	}
}

func TestProbeCanEnter(t *testing.T) {
	m := mustMaze(t, classicCodes)
	p := NewProbe(m)
	from := core.CellCenter(1, 1)

	tests := []struct {
		name     string
		dir      core.Vec
		expected bool
	}{
		{"right into pellet", core.V(1, 0), true},
		{"down into inner corner", core.V(0, 1), false},
		{"up into outer wall", core.V(0, -1), false},
		{"left into outer wall", core.V(-1, 0), false},
		{"zero direction", core.V(0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.CanEnter(from, tc.dir); got != tc.expected {
				t.Errorf("CanEnter(%v) = %v, expected %v", tc.dir, got, tc.expected)
			}
		})
	}
}

type blockCell struct{ col, row int }

func (b blockCell) Blocks(col, row int) bool { return col == b.col && row == b.row }

func TestProbeDynamicCollider(t *testing.T) {
	m := mustMaze(t, classicCodes)
	p := NewProbe(m, blockCell{col: 2, row: 1})

	if p.CanEnter(core.CellCenter(1, 1), core.V(1, 0)) {
		t.Error("dynamic collider should block the probe")
	}
	if !p.CanEnter(core.CellCenter(3, 1), core.V(1, 0)) {
		t.Error("collider should only block its own cell")
	}
}

func TestGenerateBorders(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m, err := Generate(GenerateParams{Width: 12, Height: 9, Adversaries: 4, PowerPellets: 2}, rng)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	for c := 0; c < m.Width(); c++ {
		for _, r := range []int{0, m.Height() - 1} {
			if !m.TileAt(c, r).Wall() {
				t.Errorf("border (%d, %d) = %v, expected wall", c, r, m.TileAt(c, r))
			}
		}
	}
	for r := 0; r < m.Height(); r++ {
		for _, c := range []int{0, m.Width() - 1} {
			if !m.TileAt(c, r).Wall() {
				t.Errorf("border (%d, %d) = %v, expected wall", c, r, m.TileAt(c, r))
			}
		}
	}
	if m.TileAt(0, 0) != OuterCorner || m.TileAt(11, 8) != OuterCorner {
		t.Error("grid corners should be outer corners")
	}

	if got := len(m.Cells(SpawnPoint)); got != 4 {
		t.Errorf("spawn points = %d, expected 4", got)
	}
	if _, ok := m.PlayerStart(); !ok {
		t.Error("generated maze should have a player start")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := GenerateParams{Width: 15, Height: 11, Adversaries: 3}
	a, errA := Generate(params, rand.New(rand.NewSource(99)))
	b, errB := Generate(params, rand.New(rand.NewSource(99)))
	if errA != nil || errB != nil {
		t.Fatalf("Generate() failed: %v / %v", errA, errB)
	}

	a.Each(func(c Cell, tile Tile) {
		if b.TileAt(c.Col, c.Row) != tile {
			t.Fatalf("mazes differ at %v", c)
		}
	})
}

func TestGenerateInsufficientSpawnCells(t *testing.T) {
	// 3x3 leaves a single interior cell, which becomes the player start.
	m, err := Generate(GenerateParams{Width: 3, Height: 3, Adversaries: 2, WallChance: 0.0001}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInsufficientSpawnCells) {
		t.Fatalf("expected ErrInsufficientSpawnCells, got %v", err)
	}
	if m == nil {
		t.Fatal("maze should still be returned on insufficient spawn cells")
	}
	if got := len(m.Cells(SpawnPoint)); got != 0 {
		t.Errorf("spawn points = %d, expected 0", got)
	}
}

func TestGenerateTooSmall(t *testing.T) {
	if _, err := Generate(GenerateParams{Width: 2, Height: 5}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for a maze without interior")
	}
}

func TestGenerateNegativeCounts(t *testing.T) {
	tests := []struct {
		name   string
		params GenerateParams
	}{
		{"negative power pellets", GenerateParams{Width: 8, Height: 8, Adversaries: 2, PowerPellets: -1}},
		{"negative adversaries", GenerateParams{Width: 8, Height: 8, Adversaries: -1, PowerPellets: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Generate(tt.params, rand.New(rand.NewSource(7)))
			if err != nil {
				t.Fatalf("Generate() failed: %v", err)
			}
			if tt.params.PowerPellets < 0 && len(m.Cells(PowerPellet)) != 0 {
				t.Errorf("power pellets = %d, expected 0", len(m.Cells(PowerPellet)))
			}
			if tt.params.Adversaries < 0 && len(m.Cells(SpawnPoint)) != 0 {
				t.Errorf("spawn points = %d, expected 0", len(m.Cells(SpawnPoint)))
			}
		})
	}
}
