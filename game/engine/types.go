package engine

import "strings"

// Direction is a movement token consumed by the transition model
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
	Stay  Direction = "stay"
)

const (
	// Scoring
	StepCost   = 1
	ItemReward = 10

	// Defaults applied when a config leaves the field at zero
	DefaultMaxSteps              = 500
	DefaultPursuerAggressiveness = 0.7

	// Validation constants
	MaxLevelWidth  = 100
	MaxLevelHeight = 100
	MaxAutoTicks   = 200
)

// delta is a row/column displacement
type delta struct {
	dRow, dCol int
}

var directionDeltas = map[Direction]delta{
	Up:    {-1, 0},
	Down:  {1, 0},
	Left:  {0, -1},
	Right: {0, 1},
	Stay:  {0, 0},
}

// CardinalDirections is the fixed expansion and tie-break order.
var CardinalDirections = [4]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the five known directions
func (d Direction) Valid() bool {
	_, ok := directionDeltas[d]
	return ok
}

// ParseDirection converts a case-insensitive token into a Direction
func ParseDirection(token string) (Direction, bool) {
	d := Direction(strings.ToLower(strings.TrimSpace(token)))
	if !d.Valid() {
		return Stay, false
	}
	return d, true
}

// Position is a (row, column) cell coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Less orders positions by row, then column.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Successor is a legal move out of a cell and the cell it reaches
type Successor struct {
	Direction Direction
	Position  Position
}

// GameConfig represents a level configuration from JSON
type GameConfig struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Layout                []string `json:"layout"`
	MaxSteps              int      `json:"max_steps"`
	PursuerAggressiveness float64  `json:"pursuer_aggressiveness"`
}

// RuleConfig is the part of a level config the transition model consults every tick.
// PursuerAggressiveness is carried but unused: pursuers chase greedily.
type RuleConfig struct {
	MaxSteps              int     `json:"max_steps"`
	PursuerAggressiveness float64 `json:"pursuer_aggressiveness"`
}

// DefaultRules returns the rules used when no config overrides them
func DefaultRules() RuleConfig {
	return RuleConfig{
		MaxSteps:              DefaultMaxSteps,
		PursuerAggressiveness: DefaultPursuerAggressiveness,
	}
}

// Rules returns the config's rule values with defaults applied
func (c *GameConfig) Rules() RuleConfig {
	rules := DefaultRules()
	if c == nil {
		return rules
	}
	if c.MaxSteps > 0 {
		rules.MaxSteps = c.MaxSteps
	}
	if c.PursuerAggressiveness > 0 {
		rules.PursuerAggressiveness = c.PursuerAggressiveness
	}
	return rules
}

// MoveHistoryEntry represents a single tick in the game history
type MoveHistoryEntry struct {
	Action     Direction  `json:"action"`
	Applied    Direction  `json:"applied"`
	From       Position   `json:"from"`
	To         Position   `json:"to"`
	Pursuers   []Position `json:"pursuers"`
	Score      int        `json:"score"`
	StepCount  int        `json:"step_count"`
	Timestamp  int64      `json:"timestamp"`
	MoveNumber int        `json:"move_number"`
}
