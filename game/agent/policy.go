// Package agent turns a search result into the agent's next move.
package agent

import (
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

// Plan is the full decision behind one action
type Plan struct {
	Algorithm search.Algorithm   `json:"algorithm"`
	Target    engine.Position    `json:"target"`
	HasTarget bool               `json:"has_target"`
	Distance  int                `json:"distance"`
	Path      []engine.Direction `json:"path"`
	Expanded  int                `json:"expanded"`
}

// Action returns the first move of the plan, or Stay when there is none
func (p *Plan) Action() engine.Direction {
	if len(p.Path) == 0 {
		return engine.Stay
	}
	return p.Path[0]
}

// MakePlan targets the Manhattan-nearest item and searches a path to it with alg.
// The algorithm is resolved before anything else so unknown names always fail.
// Nearest is measured ignoring walls, so the chosen item may not be the closest by
// path or even reachable.
func MakePlan(state *engine.GameState, alg search.Algorithm) (*Plan, error) {
	solve, err := search.Lookup(alg)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Algorithm: alg, Path: []engine.Direction{}}

	target, distance, ok := engine.NearestItem(state)
	if !ok {
		return plan, nil
	}
	plan.Target = target
	plan.HasTarget = true
	plan.Distance = distance

	result := solve(state, state.Agent, target)
	plan.Path = result.Path
	plan.Expanded = result.Expanded
	return plan, nil
}

// ChooseAction returns the next direction for the agent
func ChooseAction(state *engine.GameState, alg search.Algorithm) (engine.Direction, error) {
	plan, err := MakePlan(state, alg)
	if err != nil {
		return engine.Stay, err
	}
	return plan.Action(), nil
}
