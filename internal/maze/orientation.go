package maze

// Orientation is presentation metadata for wall tiles. The simulation never
// reads it; renderers use it to pick wall glyphs.
type Orientation int

const (
	OrientNone Orientation = iota
	OrientHorizontal
	OrientVertical
	OrientTopLeft
	OrientTopRight
	OrientBottomLeft
	OrientBottomRight
)

func (o Orientation) String() string {
	switch o {
	case OrientHorizontal:
		return "horizontal"
	case OrientVertical:
		return "vertical"
	case OrientTopLeft:
		return "top_left"
	case OrientTopRight:
		return "top_right"
	case OrientBottomLeft:
		return "bottom_left"
	case OrientBottomRight:
		return "bottom_right"
	default:
		return "none"
	}
}

// OrientationAt returns the rendering orientation of the tile at (col, row).
// Non-wall tiles and out-of-range positions report OrientNone.
func (m *Maze) OrientationAt(col, row int) Orientation {
	if row < 0 || row >= m.height || col < 0 || col >= len(m.orientation[row]) {
		return OrientNone
	}
	return m.orientation[row][col]
}

func computeOrientation(m *Maze) [][]Orientation {
	out := make([][]Orientation, m.height)
	lastCol, lastRow := m.width-1, m.height-1

	for r, line := range m.rows {
		out[r] = make([]Orientation, len(line))
		for c, t := range line {
			switch {
			case t == OuterCorner && c == 0 && r == 0:
				out[r][c] = OrientTopLeft
			case t == OuterCorner && c == lastCol && r == 0:
				out[r][c] = OrientTopRight
			case t == OuterCorner && c == 0 && r == lastRow:
				out[r][c] = OrientBottomLeft
			case t == OuterCorner && c == lastCol && r == lastRow:
				out[r][c] = OrientBottomRight
			case t == OuterWall && (c == 0 || c == lastCol):
				out[r][c] = OrientVertical
			case t == OuterWall && (r == 0 || r == lastRow):
				out[r][c] = OrientHorizontal
			case t.Wall():
				out[r][c] = orientFromNeighbors(m, c, r)
			}
		}
	}
	return out
}

// orientFromNeighbors derives a wall's orientation from which of its four
// neighbors are walls.
func orientFromNeighbors(m *Maze, col, row int) Orientation {
	up := m.TileAt(col, row-1).Wall()
	down := m.TileAt(col, row+1).Wall()
	left := m.TileAt(col-1, row).Wall()
	right := m.TileAt(col+1, row).Wall()

	horizontal := left || right
	vertical := up || down

	switch {
	case right && down && !left && !up:
		return OrientTopLeft
	case left && down && !right && !up:
		return OrientTopRight
	case right && up && !left && !down:
		return OrientBottomLeft
	case left && up && !right && !down:
		return OrientBottomRight
	case horizontal && !vertical:
		return OrientHorizontal
	case vertical && !horizontal:
		return OrientVertical
	case horizontal && vertical:
		if btoi(left)+btoi(right) >= btoi(up)+btoi(down) {
			return OrientHorizontal
		}
		return OrientVertical
	default:
		return OrientNone
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
