// Package search finds paths between two cells of a level.
//
// The level is an implicit graph: vertices are open cells, edges are legal moves
// with unit cost. Five strategies are provided:
//   - BreadthFirst: FIFO frontier, shortest path in edges
//   - DepthFirst: LIFO frontier, any path
//   - UniformCost: cost-ordered frontier, shortest path
//   - AStar: cost plus Manhattan distance, shortest path
//   - GreedyBestFirst: Manhattan distance only, any path
//
// Every strategy returns a Result whose Path is empty when the target is unreachable
// or equal to the start. Callers that need to tell the two apart compare positions.
//
// Usage:
//
//	state, _ := engine.ParseLevel(engine.DefaultLevel, engine.DefaultRules())
//	result, err := search.Solve(search.AStarSearch, state, state.Agent, target)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Path)
package search
