package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrConfiguration marks malformed levels, invalid configs and unknown names.
// It is never recovered inside the core.
var ErrConfiguration = errors.New("configuration error")

// Layout characters
const (
	WallChar    = '#'
	ItemChar    = '.'
	AgentChar   = 'P'
	PursuerChar = 'G'
)

// DefaultLevelName is the only bundled level
const DefaultLevelName = "default"

// DefaultLevel is the bundled maze
const DefaultLevel = `
###################
#P....#.......#..G#
#.##.#.#.###.#.#..#
#....#...#...#....#
#.######.#.######.#
#.................#
###.###.#####.###.#
#...#.....G...#...#
#.###.#######.###.#
#.................#
###################
`

// ParseLevel parses a text template. Blank lines are ignored.
func ParseLevel(template string, rules RuleConfig) (*GameState, error) {
	return ParseLayout(strings.Split(template, "\n"), rules)
}

// ParseLayout parses template rows: '#' wall, '.' item, 'P' agent start (exactly
// one), 'G' pursuer start (row-major order), anything else open floor. Width is the
// longest row; cells past the end of a shorter row are open floor.
func ParseLayout(rows []string, rules RuleConfig) (*GameState, error) {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		row = strings.TrimRight(row, "\r\n")
		if strings.TrimSpace(row) == "" {
			continue
		}
		lines = append(lines, row)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: level template is empty", ErrConfiguration)
	}

	width := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}

	var walls []Position
	items := make(map[Position]struct{})
	var pursuers []Position
	var agent *Position

	for r, line := range lines {
		for c, ch := range []rune(line) {
			pos := Position{Row: r, Col: c}
			switch ch {
			case WallChar:
				walls = append(walls, pos)
			case ItemChar:
				items[pos] = struct{}{}
			case AgentChar:
				if agent != nil {
					return nil, fmt.Errorf("%w: multiple agent starts 'P' at (%d,%d) and (%d,%d)",
						ErrConfiguration, agent.Row, agent.Col, r, c)
				}
				p := pos
				agent = &p
			case PursuerChar:
				pursuers = append(pursuers, pos)
			}
		}
	}

	if agent == nil {
		return nil, fmt.Errorf("%w: level must include an agent start position 'P'", ErrConfiguration)
	}

	if pursuers == nil {
		pursuers = []Position{}
	}
	if rules.MaxSteps <= 0 {
		rules.MaxSteps = DefaultMaxSteps
	}

	return &GameState{
		grid:     NewGrid(width, len(lines), walls),
		items:    items,
		Agent:    *agent,
		Pursuers: pursuers,
		Config:   rules,
	}, nil
}

// LoadLevel returns a fresh state for a bundled level
func LoadLevel(name string) (*GameState, error) {
	if name != DefaultLevelName {
		return nil, fmt.Errorf("%w: unknown level '%s', only '%s' is bundled", ErrConfiguration, name, DefaultLevelName)
	}
	return ParseLevel(DefaultLevel, DefaultRules())
}

// DefaultGameConfig returns the bundled level as a config
func DefaultGameConfig() *GameConfig {
	var layout []string
	for _, line := range strings.Split(DefaultLevel, "\n") {
		if strings.TrimSpace(line) != "" {
			layout = append(layout, line)
		}
	}
	return &GameConfig{
		Name:                  DefaultLevelName,
		Description:           "Bundled maze with two pursuers",
		Layout:                layout,
		MaxSteps:              DefaultMaxSteps,
		PursuerAggressiveness: DefaultPursuerAggressiveness,
	}
}
