// Package engine provides the grid world and transition model for the pursuit game.
//
// The engine package implements:
//   - Level template parsing into an immutable Grid and a mutable GameState
//   - Legal-move queries over the four cardinal directions
//   - Agent movement with step cost, item pickup and terminal detection
//   - The greedy pursuer policy
//   - Read-only snapshots and ASCII rendering for external renderers
//   - A tick engine (GameEngine) with move history, and config validation
//
// Usage:
//
//	state, err := engine.ParseLevel(engine.DefaultLevel, engine.DefaultRules())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	state.MoveAgent(engine.Right)
//	state.MovePursuers()
//	fmt.Println(engine.RenderASCII(state.Snapshot()))
//
// Game Rules:
//
// Every agent move costs one point and each item collected is worth ten. The
// episode is won when the last item is collected and lost when a pursuer shares
// the agent's cell or the step budget runs out. A loss in the same tick as the
// last pickup counts as a loss.
package engine
