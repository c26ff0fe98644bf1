package search

import "github.com/wricardo/mcp-training/pursuitgame/game/engine"

// BreadthFirst expands cells in FIFO order. Cells are marked visited when pushed and
// the goal is tested when popped, so the path has the fewest possible moves.
func BreadthFirst(g Graph, start, target engine.Position) Result {
	queue := []engine.Position{start}
	visited := map[engine.Position]struct{}{start: {}}
	cameFrom := make(map[engine.Position]step)
	expanded := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		expanded++

		if current == target {
			return Result{Path: reconstructPath(cameFrom, start, target), Expanded: expanded}
		}

		for _, next := range g.Successors(current) {
			if _, seen := visited[next.Position]; seen {
				continue
			}
			visited[next.Position] = struct{}{}
			cameFrom[next.Position] = step{prev: current, direction: next.Direction}
			queue = append(queue, next.Position)
		}
	}
	return emptyResult(expanded)
}

// DepthFirst expands cells in LIFO order with visited-on-push. It always terminates
// on a finite grid but the path it returns is not necessarily short.
func DepthFirst(g Graph, start, target engine.Position) Result {
	stack := []engine.Position{start}
	visited := map[engine.Position]struct{}{start: {}}
	cameFrom := make(map[engine.Position]step)
	expanded := 0

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		expanded++

		if current == target {
			return Result{Path: reconstructPath(cameFrom, start, target), Expanded: expanded}
		}

		for _, next := range g.Successors(current) {
			if _, seen := visited[next.Position]; seen {
				continue
			}
			visited[next.Position] = struct{}{}
			cameFrom[next.Position] = step{prev: current, direction: next.Direction}
			stack = append(stack, next.Position)
		}
	}
	return emptyResult(expanded)
}
