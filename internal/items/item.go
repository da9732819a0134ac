// Package items holds the collectibles of a round: pellets and power items
// placed from the maze, and bonus items spawned on a timer.
package items

import (
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// Kind is the kind of a collectible.
type Kind int

const (
	Pellet Kind = iota
	PowerItem
	BonusItem
)

func (k Kind) String() string {
	switch k {
	case Pellet:
		return "pellet"
	case PowerItem:
		return "power"
	case BonusItem:
		return "bonus"
	default:
		return "unknown"
	}
}

// Item is a single collectible. Once collected it is out of the simulation
// for good.
type Item struct {
	ID   int
	Kind Kind
	Pos  core.Vec

	collected bool
}

// Collected reports whether the item has been taken.
func (it *Item) Collected() bool {
	return it.collected
}

// Collect marks the item taken. It reports false if it already was, so a
// second collision in the same tick awards nothing.
func (it *Item) Collect() bool {
	if it.collected {
		return false
	}
	it.collected = true
	return true
}

// Touches reports whether a point lies within radius of the item.
func (it *Item) Touches(p core.Vec, radius float64) bool {
	return !it.collected && it.Pos.Dist(p) <= radius
}

// Field is the set of static collectibles placed at round start.
type Field struct {
	items  []*Item
	byCell map[maze.Cell]*Item
	left   int
}

// Place creates one item for every Pellet and PowerPellet tile of m.
func Place(m *maze.Maze) *Field {
	f := &Field{byCell: make(map[maze.Cell]*Item)}
	m.Each(func(c maze.Cell, t maze.Tile) {
		var kind Kind
		switch t {
		case maze.Pellet:
			kind = Pellet
		case maze.PowerPellet:
			kind = PowerItem
		default:
			return
		}
		it := &Item{ID: len(f.items), Kind: kind, Pos: core.CellCenter(c.Col, c.Row)}
		f.items = append(f.items, it)
		f.byCell[c] = it
	})
	f.left = len(f.items)
	return f
}

// Items returns every placed item, collected or not.
func (f *Field) Items() []*Item {
	return f.items
}

// At returns the uncollected item at cell c, if any.
func (f *Field) At(c maze.Cell) (*Item, bool) {
	it, ok := f.byCell[c]
	if !ok || it.collected {
		return nil, false
	}
	return it, true
}

// Touching returns the uncollected items within radius of p.
func (f *Field) Touching(p core.Vec, radius float64) []*Item {
	var out []*Item
	col, row := p.Cell()
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			it, ok := f.At(maze.Cell{Col: col + dc, Row: row + dr})
			if ok && it.Touches(p, radius) {
				out = append(out, it)
			}
		}
	}
	return out
}

// Take collects it and keeps the remaining count in step.
func (f *Field) Take(it *Item) bool {
	if !it.Collect() {
		return false
	}
	f.left--
	return true
}

// Remaining returns how many static items are still uncollected.
func (f *Field) Remaining() int {
	return f.left
}

// Total returns how many static items were placed.
func (f *Field) Total() int {
	return len(f.items)
}
