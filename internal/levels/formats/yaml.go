// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Grid        []string          `yaml:"grid,omitempty"`
	Generate    *YAMLGenerate     `yaml:"generate,omitempty"`
	Player      *YAMLCell         `yaml:"player,omitempty"`
	Adversaries int               `yaml:"adversaries,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLGenerate holds procedural generation parameters.
type YAMLGenerate struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	WallChance   float64 `yaml:"wall_chance,omitempty"`
	PowerPellets int     `yaml:"power_pellets,omitempty"`
	Seed         int64   `yaml:"seed,omitempty"`
}

// YAMLCell is a grid position.
type YAMLCell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// Level represents a parsed level ready for use. Exactly one of Codes and
// Generate is set.
type Level struct {
	ID          string
	Name        string
	Codes       [][]int
	Generate    *YAMLGenerate
	Player      *YAMLCell
	Adversaries int
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	switch {
	case len(yl.Grid) > 0 && yl.Generate != nil:
		return Level{}, fmt.Errorf("level %s: grid and generate are exclusive", yl.ID)
	case len(yl.Grid) == 0 && yl.Generate == nil:
		return Level{}, fmt.Errorf("level %s: needs a grid or generate section", yl.ID)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:          yl.ID,
		Name:        name,
		Codes:       ParseRows(yl.Grid),
		Generate:    yl.Generate,
		Player:      yl.Player,
		Adversaries: yl.Adversaries,
		Metadata:    yl.Metadata,
	}, nil
}

// ParseRows turns digit rows into tile codes. Any non-digit rune becomes -1,
// which the maze treats as an unknown code.
func ParseRows(rows []string) [][]int {
	if len(rows) == 0 {
		return nil
	}
	codes := make([][]int, len(rows))
	for r, row := range rows {
		for _, ch := range row {
			code := -1
			if ch >= '0' && ch <= '9' {
				code = int(ch - '0')
			}
			codes[r] = append(codes[r], code)
		}
	}
	return codes
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
