package search

import "github.com/wricardo/mcp-training/pursuitgame/game/engine"

// Graph is the adjacency a strategy walks. *engine.GameState and *engine.Grid both
// satisfy it.
type Graph interface {
	Successors(p engine.Position) []engine.Successor
}

// Result is a path from start to target plus the number of cells expanded
type Result struct {
	Path     []engine.Direction `json:"path"`
	Expanded int                `json:"expanded"`
}

// Found reports whether the result carries at least one move
func (r Result) Found() bool {
	return len(r.Path) > 0
}

// step records how a cell was first reached
type step struct {
	prev      engine.Position
	direction engine.Direction
}

// reconstructPath walks the predecessor map back from goal to start
func reconstructPath(cameFrom map[engine.Position]step, start, goal engine.Position) []engine.Direction {
	path := make([]engine.Direction, 0)
	for current := goal; current != start; {
		s, ok := cameFrom[current]
		if !ok {
			return []engine.Direction{}
		}
		path = append(path, s.direction)
		current = s.prev
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func emptyResult(expanded int) Result {
	return Result{Path: []engine.Direction{}, Expanded: expanded}
}
