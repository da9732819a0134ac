package maze

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned when a maze is built from a grid with no cells.
var ErrEmptyGrid = errors.New("maze: empty grid")

// Cell addresses one maze position by column and row.
type Cell struct {
	Col, Row int
}

// Maze is an immutable grid of tiles for one round.
// Rows may be ragged; positions past a row's extent read as None (closed).
type Maze struct {
	rows        [][]Tile
	width       int
	height      int
	orientation [][]Orientation
}

// New builds a maze from rows of level-file tile codes.
// Unknown codes become Empty; their positions are returned in unknown so the
// caller can report them.
func New(codes [][]int) (m *Maze, unknown []Cell, err error) {
	if len(codes) == 0 {
		return nil, nil, ErrEmptyGrid
	}

	rows := make([][]Tile, len(codes))
	width := 0
	for r, line := range codes {
		rows[r] = make([]Tile, len(line))
		for c, code := range line {
			tile, ok := TileFromCode(code)
			if !ok {
				unknown = append(unknown, Cell{Col: c, Row: r})
			}
			rows[r][c] = tile
		}
		width = max(width, len(line))
	}
	if width == 0 {
		return nil, nil, ErrEmptyGrid
	}

	m = &Maze{rows: rows, width: width, height: len(rows)}
	m.orientation = computeOrientation(m)
	return m, unknown, nil
}

// FromTiles builds a maze from tiles directly.
func FromTiles(tiles [][]Tile) (*Maze, error) {
	codes := make([][]int, len(tiles))
	for r, line := range tiles {
		codes[r] = make([]int, len(line))
		for c, t := range line {
			codes[r][c] = int(t)
		}
	}
	m, unknown, err := New(codes)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("maze: %d cells with unknown tile kind", len(unknown))
	}
	return m, nil
}

// Width returns the length of the longest row.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return m.height
}

// TileAt returns the tile at (col, row), or None outside the grid.
func (m *Maze) TileAt(col, row int) Tile {
	if row < 0 || row >= m.height || col < 0 || col >= len(m.rows[row]) {
		return None
	}
	return m.rows[row][col]
}

// IsOpen reports whether an actor may occupy (col, row).
func (m *Maze) IsOpen(col, row int) bool {
	return m.TileAt(col, row).Open()
}

// IsEmptyOrPellet reports whether (col, row) is an Empty or Pellet cell.
// The bonus spawner only places items on these.
func (m *Maze) IsEmptyOrPellet(col, row int) bool {
	t := m.TileAt(col, row)
	return t == Empty || t == Pellet
}

// Cells returns every cell holding the given tile kind in row-major order.
func (m *Maze) Cells(kind Tile) []Cell {
	var out []Cell
	for r, line := range m.rows {
		for c, t := range line {
			if t == kind {
				out = append(out, Cell{Col: c, Row: r})
			}
		}
	}
	return out
}

// Each calls fn for every stored tile in row-major order.
func (m *Maze) Each(fn func(c Cell, t Tile)) {
	for r, line := range m.rows {
		for c, t := range line {
			fn(Cell{Col: c, Row: r}, t)
		}
	}
}

// PlayerStart returns the first Empty cell in row-major order, falling back
// to the first open cell. ok is false when the maze has no open cell.
func (m *Maze) PlayerStart() (Cell, bool) {
	if cells := m.Cells(Empty); len(cells) > 0 {
		return cells[0], true
	}
	for r, line := range m.rows {
		for c, t := range line {
			if t.Open() {
				return Cell{Col: c, Row: r}, true
			}
		}
	}
	return Cell{}, false
}
