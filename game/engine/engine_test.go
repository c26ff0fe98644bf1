package engine

import (
	"strings"
	"testing"
)

func createTestConfig(layout string, maxSteps int) *GameConfig {
	return &GameConfig{
		Name:        "Engine Test Config",
		Description: "Configuration for engine integration tests",
		Layout:      strings.Split(layout, "\n"),
		MaxSteps:    maxSteps,
	}
}

func createTestEngine(t *testing.T, layout string, maxSteps int) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createTestConfig(layout, maxSteps))
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := createTestEngine(t, simpleLevel, 100)

	if engine.GetScore() != 0 {
		t.Errorf("Expected initial score 0, got %d", engine.GetScore())
	}
	if engine.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if engine.IsVictory() {
		t.Error("Expected game not to be victory initially")
	}
	if engine.GetAgentPosition() != (Position{Row: 1, Col: 1}) {
		t.Errorf("Expected agent at (1,1), got %+v", engine.GetAgentPosition())
	}
	if len(engine.GetMoveHistory()) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(engine.GetMoveHistory()))
	}
	if engine.GetLastMove() != nil {
		t.Error("Expected no last move")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	_, err := NewEngine(createTestConfig("#####\n#...#\n#####", 100))
	if err == nil {
		t.Fatal("Expected error for a layout without an agent")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine.GetConfig().Name != DefaultLevelName {
		t.Errorf("Expected default config, got %s", engine.GetConfig().Name)
	}
	if engine.GetState().Width() != 19 {
		t.Errorf("Expected width 19, got %d", engine.GetState().Width())
	}
}

func TestEngineStep_CollisionOnAgentMove(t *testing.T) {
	engine := createTestEngine(t, "#####\n#PG.#\n#####", 100)

	result := engine.Step(Right)

	if !result.Moved {
		t.Error("Expected agent to move")
	}
	if result.PursuersMoved {
		t.Error("Pursuers should not move once the episode is over")
	}
	if !result.GameOver || result.Victory {
		t.Errorf("Expected loss, got game_over=%v victory=%v", result.GameOver, result.Victory)
	}
}

func TestEngineStep_PursuersWaitWhenAgentDoesNotMove(t *testing.T) {
	engine := createTestEngine(t, "#####\n#PG.#\n#####", 100)

	result := engine.Step(Left)

	if result.Applied != Stay {
		t.Errorf("Expected blocked move applied as stay, got %s", result.Applied)
	}
	if result.Moved || result.PursuersMoved {
		t.Errorf("Expected a frozen board, got moved=%v pursuers_moved=%v", result.Moved, result.PursuersMoved)
	}
	if engine.GetState().Pursuers[0] != (Position{Row: 1, Col: 2}) {
		t.Errorf("Expected pursuer to hold at (1,2), got %+v", engine.GetState().Pursuers[0])
	}
	if engine.IsGameOver() {
		t.Error("Expected game to continue")
	}
	if result.ScoreDelta != -1 {
		t.Errorf("Expected score delta -1, got %d", result.ScoreDelta)
	}
}

func TestEngineStep_PursuerCatchesAgent(t *testing.T) {
	engine := createTestEngine(t, "######\n#P.G.#\n######", 100)

	first := engine.Step(Stay)
	if first.PursuersMoved {
		t.Error("Pursuers should wait on a stay tick")
	}

	second := engine.Step(Right)
	if !second.ItemCollected {
		t.Error("Expected item pickup at (1,2)")
	}
	if !second.PursuersMoved {
		t.Error("Expected pursuers to move after the agent moved")
	}
	if !second.GameOver || second.Victory {
		t.Error("Expected the pursuer to catch the agent")
	}
	if engine.GetScore() != 8 {
		t.Errorf("Expected score 8, got %d", engine.GetScore())
	}
}

func TestEngineStep_TerminalIsNotRecorded(t *testing.T) {
	engine := createTestEngine(t, "#####\n#PG.#\n#####", 100)
	engine.Step(Right)

	result := engine.Step(Right)

	if !result.GameOver {
		t.Error("Expected game over")
	}
	if result.Applied != Stay {
		t.Errorf("Expected stay on terminal tick, got %s", result.Applied)
	}
	if !result.Skipped {
		t.Error("Expected terminal tick to be marked skipped")
	}
	if len(engine.GetMoveHistory()) != 1 {
		t.Errorf("Expected 1 history entry, got %d", len(engine.GetMoveHistory()))
	}
}

func TestEngineMoveHistory(t *testing.T) {
	engine := createTestEngine(t, simpleLevel, 100)

	engine.Step(Right)
	engine.Step(Up)
	engine.Step(Down)

	history := engine.GetMoveHistory()
	if len(history) != 3 {
		t.Fatalf("Expected 3 history entries, got %d", len(history))
	}

	tests := []struct {
		action  Direction
		applied Direction
		number  int
	}{
		{Right, Right, 1},
		{Up, Stay, 2},
		{Down, Down, 3},
	}
	for i, test := range tests {
		if history[i].Action != test.action {
			t.Errorf("Entry %d: expected action %s, got %s", i, test.action, history[i].Action)
		}
		if history[i].Applied != test.applied {
			t.Errorf("Entry %d: expected applied %s, got %s", i, test.applied, history[i].Applied)
		}
		if history[i].MoveNumber != test.number {
			t.Errorf("Entry %d: expected move number %d, got %d", i, test.number, history[i].MoveNumber)
		}
		if history[i].StepCount != i+1 {
			t.Errorf("Entry %d: expected step count %d, got %d", i, i+1, history[i].StepCount)
		}
	}

	last := engine.GetLastMove()
	if last == nil || last.MoveNumber != 3 {
		t.Errorf("Expected last move number 3, got %+v", last)
	}
	if last.To != engine.GetAgentPosition() {
		t.Errorf("Expected last move to end at agent position %+v, got %+v", engine.GetAgentPosition(), last.To)
	}
}

func TestEngineReset(t *testing.T) {
	engine := createTestEngine(t, simpleLevel, 100)
	engine.Step(Right)
	engine.Step(Down)

	state := engine.Reset()

	if state.Agent != (Position{Row: 1, Col: 1}) {
		t.Errorf("Expected agent back at (1,1), got %+v", state.Agent)
	}
	if state.Score != 0 || state.StepCount != 0 {
		t.Errorf("Expected zeroed score and steps, got %d/%d", state.Score, state.StepCount)
	}
	if state.ItemCount() != 7 {
		t.Errorf("Expected 7 items after reset, got %d", state.ItemCount())
	}
	// History spans resets
	if len(engine.GetMoveHistory()) != 2 {
		t.Errorf("Expected history to be kept, got %d entries", len(engine.GetMoveHistory()))
	}
}

func TestEngineCanMoveAndPossibleMoves(t *testing.T) {
	engine := createTestEngine(t, simpleLevel, 100)

	if engine.CanMove(Up) {
		t.Error("Expected up to be blocked")
	}
	if !engine.CanMove(Right) {
		t.Error("Expected right to be legal")
	}
	if engine.CanMove(Stay) {
		t.Error("Stay is never a legal move")
	}

	moves := engine.GetPossibleMoves()
	if len(moves) != 2 || moves[0] != Down || moves[1] != Right {
		t.Errorf("Expected [down right], got %v", moves)
	}

	over := createTestEngine(t, "#####\n#PG.#\n#####", 100)
	over.Step(Right)
	if len(over.GetPossibleMoves()) != 0 {
		t.Error("Expected no moves once the game is over")
	}
}

func TestEngineWinsByCollectingEverything(t *testing.T) {
	engine := createTestEngine(t, "#####\n#P..#\n#####", 100)

	engine.Step(Right)
	result := engine.Step(Right)

	if !result.Victory || !engine.IsVictory() {
		t.Error("Expected victory after collecting both items")
	}
	if engine.GetScore() != 18 {
		t.Errorf("Expected score 18, got %d", engine.GetScore())
	}
}

func TestRenderASCII(t *testing.T) {
	engine := createTestEngine(t, simpleLevel, 100)
	engine.Step(Right)

	expected := strings.Join([]string{
		"#####",
		"# P.#",
		"#..G#",
		"#.. #",
		"#####",
	}, "\n")

	got := RenderASCII(engine.Snapshot())
	if got != expected {
		t.Errorf("Unexpected frame:\n%s\nexpected:\n%s", got, expected)
	}
	if engine.Snapshot().Status() != "playing" {
		t.Errorf("Expected playing status, got %s", engine.Snapshot().Status())
	}
}
