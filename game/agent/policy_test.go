package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

const simpleLevel = `
#####
#P..#
#...#
#..G#
#####
`

func parse(t *testing.T, template string) *engine.GameState {
	t.Helper()
	state, err := engine.ParseLevel(template, engine.DefaultRules())
	require.NoError(t, err)
	return state
}

func TestChooseAction_MovesTowardNearestItem(t *testing.T) {
	for _, alg := range search.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			state := parse(t, simpleLevel)
			action, err := ChooseAction(state, alg)
			require.NoError(t, err)
			assert.Equal(t, engine.Right, action)
		})
	}
}

func TestChooseAction_NoItemsStays(t *testing.T) {
	state := parse(t, "#####\n#P  #\n#####")

	action, err := ChooseAction(state, search.BFS)
	require.NoError(t, err)
	assert.Equal(t, engine.Stay, action)

	plan, err := MakePlan(state, search.BFS)
	require.NoError(t, err)
	assert.False(t, plan.HasTarget)
	assert.Zero(t, plan.Expanded, "no search should run without a target")
}

func TestChooseAction_UnreachableItemStays(t *testing.T) {
	state := parse(t, "P#.")

	action, err := ChooseAction(state, search.AStarSearch)
	require.NoError(t, err)
	assert.Equal(t, engine.Stay, action)
}

func TestChooseAction_UnknownAlgorithm(t *testing.T) {
	state := parse(t, simpleLevel)

	_, err := ChooseAction(state, search.Algorithm("minimax"))
	assert.ErrorIs(t, err, search.ErrUnknownAlgorithm)

	empty := parse(t, "P ")
	_, err = ChooseAction(empty, search.Algorithm("minimax"))
	assert.ErrorIs(t, err, search.ErrUnknownAlgorithm)
}

func TestChooseAction_DoesNotMutateState(t *testing.T) {
	state := parse(t, simpleLevel)
	before := state.Snapshot()

	_, err := ChooseAction(state, search.UCS)
	require.NoError(t, err)

	assert.Equal(t, before, state.Snapshot())
}

func TestMakePlan(t *testing.T) {
	state := parse(t, simpleLevel)

	plan, err := MakePlan(state, search.AStarSearch)
	require.NoError(t, err)
	assert.True(t, plan.HasTarget)
	assert.Equal(t, engine.Position{Row: 1, Col: 2}, plan.Target)
	assert.Equal(t, 1, plan.Distance)
	assert.Equal(t, []engine.Direction{engine.Right}, plan.Path)
	assert.Positive(t, plan.Expanded)
}

func TestPolicy_ClearsCorridor(t *testing.T) {
	state := parse(t, "#######\n#P....#\n#######")

	for i := 0; i < 10 && !state.IsTerminal(); i++ {
		action, err := ChooseAction(state, search.Greedy)
		require.NoError(t, err)
		state.MoveAgent(action)
		state.MovePursuers()
	}

	assert.True(t, state.IsWin)
	assert.Equal(t, 4*engine.ItemReward-4*engine.StepCost, state.Score)
}
