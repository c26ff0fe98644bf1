package agent

import (
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

// Episode summarizes a policy-driven run
type Episode struct {
	Algorithm search.Algorithm `json:"algorithm"`
	Ticks     int              `json:"ticks"`
	Score     int              `json:"score"`
	Collected int              `json:"collected"`
	Expanded  int              `json:"expanded"`
	GameOver  bool             `json:"game_over"`
	Victory   bool             `json:"victory"`
}

// RunEpisode lets the policy drive eng until the episode ends or maxTicks ticks
// have run. A maxTicks of zero or less means no tick limit; the step budget still
// ends the episode. observe, when set, sees every tick.
func RunEpisode(eng engine.Engine, alg search.Algorithm, maxTicks int, observe func(engine.TickResult)) (*Episode, error) {
	if _, err := search.Lookup(alg); err != nil {
		return nil, err
	}

	ep := &Episode{Algorithm: alg}
	for !eng.IsGameOver() && (maxTicks <= 0 || ep.Ticks < maxTicks) {
		plan, err := MakePlan(eng.GetState(), alg)
		if err != nil {
			return nil, err
		}
		result := eng.Step(plan.Action())
		ep.Ticks++
		ep.Expanded += plan.Expanded
		if result.ItemCollected {
			ep.Collected++
		}
		if observe != nil {
			observe(result)
		}
	}

	ep.Score = eng.GetScore()
	ep.GameOver = eng.IsGameOver()
	ep.Victory = eng.IsVictory()
	return ep, nil
}
