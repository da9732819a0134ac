// Package maze holds the per-round tile grid, its derived openness queries,
// and the directional collision probe shared by every actor.
package maze

// Tile is the structural kind of a single maze cell.
type Tile int

// Tile kinds. The numeric values are the level-file codes.
const (
	Empty Tile = iota
	OuterCorner
	OuterWall
	InnerCorner
	InnerWall
	Pellet
	PowerPellet
	Junction
	SpawnPoint

	// None is returned for coordinates outside the grid or past the end of a
	// ragged row. It is never stored.
	None Tile = -1
)

// TileFromCode converts a level-file code to a Tile.
// Unknown codes report ok=false and map to Empty.
func TileFromCode(code int) (Tile, bool) {
	if code < int(Empty) || code > int(SpawnPoint) {
		return Empty, false
	}
	return Tile(code), true
}

// Open reports whether actors may stand on this tile.
func (t Tile) Open() bool {
	switch t {
	case Empty, Pellet, PowerPellet, Junction, SpawnPoint:
		return true
	default:
		return false
	}
}

// Wall reports whether the tile is a wall-class collider.
func (t Tile) Wall() bool {
	switch t {
	case OuterCorner, OuterWall, InnerCorner, InnerWall:
		return true
	default:
		return false
	}
}

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case OuterCorner:
		return "outer_corner"
	case OuterWall:
		return "outer_wall"
	case InnerCorner:
		return "inner_corner"
	case InnerWall:
		return "inner_wall"
	case Pellet:
		return "pellet"
	case PowerPellet:
		return "power_pellet"
	case Junction:
		return "junction"
	case SpawnPoint:
		return "spawn_point"
	case None:
		return "none"
	default:
		return "unknown"
	}
}
