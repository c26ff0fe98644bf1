package terminal

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

// Command is what a key press asks the game loop to do
type Command int

const (
	CommandNone Command = iota
	CommandMove
	CommandQuit
	CommandReset
	CommandToggleAuto
	CommandStep
)

// Input is a decoded key press
type Input struct {
	Command   Command
	Direction engine.Direction
}

var runeDirections = map[rune]engine.Direction{
	'k': engine.Up,
	'j': engine.Down,
	'h': engine.Left,
	'l': engine.Right,
	' ': engine.Stay,
}

// ParseKey maps a key event to a game command. Arrows, wasd and hjkl move, space
// waits a tick, q/Esc/Ctrl-C quit. Anything else is ignored.
func ParseKey(ev *tcell.EventKey) Input {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Input{Command: CommandQuit}
	case tcell.KeyUp:
		return Input{Command: CommandMove, Direction: engine.Up}
	case tcell.KeyDown:
		return Input{Command: CommandMove, Direction: engine.Down}
	case tcell.KeyLeft:
		return Input{Command: CommandMove, Direction: engine.Left}
	case tcell.KeyRight:
		return Input{Command: CommandMove, Direction: engine.Right}
	case tcell.KeyEnter:
		return Input{Command: CommandStep}
	case tcell.KeyRune:
	default:
		return Input{}
	}

	r := unicode.ToLower(ev.Rune())
	switch r {
	case 'q':
		return Input{Command: CommandQuit}
	case 'r':
		return Input{Command: CommandReset}
	case 'p':
		return Input{Command: CommandToggleAuto}
	case 'n':
		return Input{Command: CommandStep}
	}
	if d := KeyToDirection(string(r)); d != engine.Stay {
		return Input{Command: CommandMove, Direction: d}
	}
	if d, ok := runeDirections[r]; ok {
		return Input{Command: CommandMove, Direction: d}
	}
	return Input{}
}

var directionKeys = map[engine.Direction]string{
	engine.Up:    "w",
	engine.Down:  "s",
	engine.Left:  "a",
	engine.Right: "d",
}

// KeyToDirection maps a typed key to a direction. Only w, a, s and d move; every
// other key, including the empty string, is Stay.
func KeyToDirection(key string) engine.Direction {
	for d, k := range directionKeys {
		if strings.ToLower(key) == k {
			return d
		}
	}
	return engine.Stay
}

// DirectionToKey is the inverse of KeyToDirection for direction tokens. Stay and
// unknown tokens have no key and return "".
func DirectionToKey(token string) string {
	d, ok := engine.ParseDirection(token)
	if !ok {
		return ""
	}
	return directionKeys[d]
}

// Speed presets for auto play
const (
	SpeedSlow   = "slow"
	SpeedMedium = "medium"
	SpeedFast   = "fast"
)

var speedIntervals = map[string]time.Duration{
	SpeedSlow:   2 * time.Second,
	SpeedMedium: time.Second,
	SpeedFast:   500 * time.Millisecond,
}

// SpeedToInterval returns the tick interval for a speed preset
func SpeedToInterval(speed string) (time.Duration, error) {
	interval, ok := speedIntervals[strings.ToLower(strings.TrimSpace(speed))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown speed '%s' (use slow, medium or fast)", engine.ErrConfiguration, speed)
	}
	return interval, nil
}
