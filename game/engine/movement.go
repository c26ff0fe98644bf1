package engine

// MoveAgent applies one agent move. Illegal directions are downgraded to Stay, which
// still costs a step.
func (gs *GameState) MoveAgent(direction Direction) Direction {
	if gs.IsTerminal() {
		return Stay
	}

	if !gs.grid.IsLegal(gs.Agent, direction) {
		direction = Stay
	}

	gs.Agent = ApplyDirection(gs.Agent, direction)
	gs.StepCount++
	gs.Score -= StepCost

	if gs.HasItem(gs.Agent) {
		delete(gs.items, gs.Agent)
		gs.Score += ItemReward
	}

	lose := gs.HasPursuerAt(gs.Agent)
	if gs.StepCount >= gs.Config.MaxSteps {
		lose = true
	}

	// A loss in the same tick as clearing the last item is still a loss
	if lose {
		gs.IsLose = true
	} else if len(gs.items) == 0 {
		gs.IsWin = true
	}

	return direction
}

// MovePursuers moves every pursuer one greedy step toward the agent's current cell.
// All pursuers aim at the same agent position and ignore each other.
func (gs *GameState) MovePursuers() {
	if gs.IsTerminal() {
		return
	}

	moved := make([]Position, len(gs.Pursuers))
	for i, p := range gs.Pursuers {
		moved[i] = ApplyDirection(p, gs.bestPursuerMove(p))
	}
	gs.Pursuers = moved

	if gs.HasPursuerAt(gs.Agent) {
		gs.IsLose = true
	}
}

// bestPursuerMove picks the legal move minimising Manhattan distance to the agent,
// first in direction order on ties, or Stay when boxed in.
func (gs *GameState) bestPursuerMove(from Position) Direction {
	best := Stay
	bestDist := -1
	for _, d := range gs.grid.LegalMoves(from) {
		dist := ManhattanDistance(ApplyDirection(from, d), gs.Agent)
		if bestDist == -1 || dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best
}
