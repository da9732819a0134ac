package maze

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInsufficientSpawnCells is returned when fewer open interior cells exist
// than adversaries requested. The generated maze is still returned with as
// many spawn points as fit.
var ErrInsufficientSpawnCells = errors.New("maze: insufficient open cells for adversary spawn points")

// DefaultWallChance is the probability that an interior cell becomes a wall.
const DefaultWallChance = 0.3

// GenerateParams describes a procedural maze.
type GenerateParams struct {
	Width, Height int
	Adversaries   int
	WallChance    float64 // 0 means DefaultWallChance
	PowerPellets  int     // Open cells upgraded to power pellets
}

// Generate builds a random maze. The border is forced to outer walls with
// corners; interior cells become inner walls with WallChance and pellets
// otherwise. One open cell is left Empty for the player start, then spawn
// points are placed on a random subset of the remaining open cells.
// Negative counts are treated as zero.
func Generate(p GenerateParams, rng *rand.Rand) (*Maze, error) {
	if p.Width < 3 || p.Height < 3 {
		return nil, fmt.Errorf("maze: procedural size %dx%d too small: %w", p.Width, p.Height, ErrEmptyGrid)
	}
	wallChance := p.WallChance
	if wallChance <= 0 {
		wallChance = DefaultWallChance
	}

	tiles := make([][]Tile, p.Height)
	var open []Cell
	for r := range tiles {
		tiles[r] = make([]Tile, p.Width)
		for c := range tiles[r] {
			tiles[r][c] = borderTile(c, r, p.Width, p.Height)
			if tiles[r][c] != None {
				continue
			}
			if rng.Float64() < wallChance {
				tiles[r][c] = InnerWall
			} else {
				tiles[r][c] = Pellet
				open = append(open, Cell{Col: c, Row: r})
			}
		}
	}

	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })

	var genErr error
	if len(open) > 0 {
		start := open[0]
		tiles[start.Row][start.Col] = Empty
		open = open[1:]
	}

	spawns := max(p.Adversaries, 0)
	if spawns > len(open) {
		genErr = fmt.Errorf("%w: want %d, have %d", ErrInsufficientSpawnCells, p.Adversaries, len(open))
		spawns = len(open)
	}
	for _, c := range open[:spawns] {
		tiles[c.Row][c.Col] = SpawnPoint
	}
	open = open[spawns:]

	for _, c := range open[:min(max(p.PowerPellets, 0), len(open))] {
		tiles[c.Row][c.Col] = PowerPellet
	}

	m, err := FromTiles(tiles)
	if err != nil {
		return nil, err
	}
	return m, genErr
}

// borderTile returns the forced tile for border positions, or None for the
// interior.
func borderTile(col, row, w, h int) Tile {
	edgeCol := col == 0 || col == w-1
	edgeRow := row == 0 || row == h-1
	switch {
	case edgeCol && edgeRow:
		return OuterCorner
	case edgeCol || edgeRow:
		return OuterWall
	default:
		return None
	}
}
