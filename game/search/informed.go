package search

import "github.com/wricardo/mcp-training/pursuitgame/game/engine"

// UniformCost expands the cheapest frontier cell first. Every move costs one, so it
// returns a shortest path. Entries made stale by a cheaper push are skipped on pop.
func UniformCost(g Graph, start, target engine.Position) Result {
	return bestFirst(g, start, target, func(engine.Position) int { return 0 })
}

// AStar orders the frontier by cost plus Manhattan distance to the target. The
// heuristic never overestimates on a unit-cost grid, so the path is shortest.
func AStar(g Graph, start, target engine.Position) Result {
	return bestFirst(g, start, target, func(p engine.Position) int {
		return engine.ManhattanDistance(p, target)
	})
}

// bestFirst is the shared cost-tracking loop behind UniformCost and AStar
func bestFirst(g Graph, start, target engine.Position, h func(engine.Position) int) Result {
	open := newPathQueue(start, h(start))
	cost := map[engine.Position]int{start: 0}
	cameFrom := make(map[engine.Position]step)
	expanded := 0

	for open.Len() > 0 {
		current := open.pop()
		if current.position != target && current.cost > cost[current.position] {
			continue
		}
		expanded++

		if current.position == target {
			return Result{Path: reconstructPath(cameFrom, start, target), Expanded: expanded}
		}

		for _, next := range g.Successors(current.position) {
			newCost := current.cost + 1
			if prev, ok := cost[next.Position]; ok && newCost >= prev {
				continue
			}
			cost[next.Position] = newCost
			cameFrom[next.Position] = step{prev: current.position, direction: next.Direction}
			open.push(next.Position, newCost+h(next.Position), newCost)
		}
	}
	return emptyResult(expanded)
}

// GreedyBestFirst orders the frontier by Manhattan distance to the target alone,
// marking cells visited when pushed. Fast on open grids, but not optimal.
func GreedyBestFirst(g Graph, start, target engine.Position) Result {
	open := newPathQueue(start, engine.ManhattanDistance(start, target))
	visited := map[engine.Position]struct{}{start: {}}
	cameFrom := make(map[engine.Position]step)
	expanded := 0

	for open.Len() > 0 {
		current := open.pop()
		expanded++

		if current.position == target {
			return Result{Path: reconstructPath(cameFrom, start, target), Expanded: expanded}
		}

		for _, next := range g.Successors(current.position) {
			if _, seen := visited[next.Position]; seen {
				continue
			}
			visited[next.Position] = struct{}{}
			cameFrom[next.Position] = step{prev: current.position, direction: next.Direction}
			open.push(next.Position, engine.ManhattanDistance(next.Position, target), 0)
		}
	}
	return emptyResult(expanded)
}
