package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// NearestItem finds the item closest to the agent by Manhattan distance, breaking
// ties by position order. Walls are not considered, so the result may be farther by
// path or unreachable.
func NearestItem(state *GameState) (Position, int, bool) {
	minDistance := -1
	var nearest Position

	for p := range state.items {
		d := ManhattanDistance(state.Agent, p)
		if minDistance == -1 || d < minDistance || (d == minDistance && p.Less(nearest)) {
			minDistance = d
			nearest = p
		}
	}

	return nearest, minDistance, minDistance != -1
}

// NearestPursuer returns the Manhattan distance from agent to the closest pursuer
func NearestPursuer(agent Position, pursuers []Position) (int, bool) {
	minDistance := -1
	for _, p := range pursuers {
		d := ManhattanDistance(agent, p)
		if minDistance == -1 || d < minDistance {
			minDistance = d
		}
	}
	return minDistance, minDistance != -1
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
