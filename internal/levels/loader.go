// Package levels supplies maze levels: literal tile grids or procedural
// parameters, read from the embedded campaign or a directory on disk.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/levels/formats"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// ErrLevelNotFound is returned when no level matches an identifier.
var ErrLevelNotFound = errors.New("levels: level not found")

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Codes       [][]int
	Generate    *formats.YAMLGenerate
	Player      *maze.Cell
	Adversaries int // 0 means use the configured count
	Metadata    map[string]string
	FilePath    string
}

// Procedural reports whether the level is generated rather than literal.
func (l Level) Procedural() bool {
	return l.Generate != nil
}

// BuildOptions carries the defaults a level build falls back on.
type BuildOptions struct {
	Adversaries int
	Defaults    maze.GenerateParams // used for zero fields of a generate section
	Rand        *rand.Rand
	Logger      *log.Logger
}

// Build produces the maze for this level. Configuration problems are logged
// and, where a usable maze still exists, not returned: unknown tile codes
// become Empty and missing spawn cells only shrink the roster.
func (l Level) Build(opts BuildOptions) (*maze.Maze, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if l.Generate == nil {
		m, unknown, err := maze.New(l.Codes)
		if err != nil {
			return nil, fmt.Errorf("levels: build %s: %w", l.ID, err)
		}
		if len(unknown) > 0 {
			logger.Warn("unknown tile codes treated as empty", "level", l.ID, "cells", len(unknown))
		}
		return m, nil
	}

	p := opts.Defaults
	if l.Generate.Width > 0 {
		p.Width = l.Generate.Width
	}
	if l.Generate.Height > 0 {
		p.Height = l.Generate.Height
	}
	if l.Generate.WallChance > 0 {
		p.WallChance = l.Generate.WallChance
	}
	if l.Generate.PowerPellets > 0 {
		p.PowerPellets = l.Generate.PowerPellets
	}
	p.Adversaries = opts.Adversaries
	if l.Adversaries > 0 {
		p.Adversaries = l.Adversaries
	}

	rng := opts.Rand
	if l.Generate.Seed != 0 || rng == nil {
		rng = rand.New(rand.NewSource(l.Generate.Seed))
	}

	m, err := maze.Generate(p, rng)
	if errors.Is(err, maze.ErrInsufficientSpawnCells) {
		logger.Warn("not every adversary could be placed", "level", l.ID, "err", err)
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("levels: generate %s: %w", l.ID, err)
	}
	return m, nil
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS     fs.FS
	Root   string
	Logger *log.Logger
}

// NewLoader creates a loader over root in fsys.
func NewLoader(fsys fs.FS, root string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{FS: fsys, Root: root, Logger: logger}
}

// Builtin returns a loader over the embedded campaign.
func Builtin() *Loader {
	return NewLoader(builtinFS, "builtin", nil)
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			l.Logger.Warn("skipping level file", "path", p, "err", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	lvl := Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Codes:       parsed.Codes,
		Generate:    parsed.Generate,
		Adversaries: parsed.Adversaries,
		Metadata:    parsed.Metadata,
		FilePath:    p,
	}
	if parsed.Player != nil {
		lvl.Player = &maze.Cell{Col: parsed.Player.Col, Row: parsed.Player.Row}
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
