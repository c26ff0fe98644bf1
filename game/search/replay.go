package search

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

// ErrIllegalStep is returned when a path leaves the open cells
var ErrIllegalStep = errors.New("illegal step")

// Replay walks path from start, checking every move against the graph, and returns
// the cell it ends on
func Replay(g Graph, start engine.Position, path []engine.Direction) (engine.Position, error) {
	current := start
	for i, d := range path {
		next, ok := follow(g, current, d)
		if !ok {
			return current, fmt.Errorf("%w: move %d (%s) from (%d,%d)", ErrIllegalStep, i+1, d, current.Row, current.Col)
		}
		current = next
	}
	return current, nil
}

func follow(g Graph, from engine.Position, d engine.Direction) (engine.Position, bool) {
	for _, s := range g.Successors(from) {
		if s.Direction == d {
			return s.Position, true
		}
	}
	return from, false
}
