package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Snapshot() *Snapshot
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	GetScore() int
	GetAgentPosition() Position

	// Movement operations
	Step(direction Direction) TickResult
	CanMove(direction Direction) bool
	GetPossibleMoves() []Direction

	// Configuration
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// TickResult describes what one tick did
type TickResult struct {
	Requested     Direction  `json:"requested"`
	Applied       Direction  `json:"applied"`
	From          Position   `json:"from"`
	To            Position   `json:"to"`
	Moved         bool       `json:"moved"`
	PursuersMoved bool       `json:"pursuers_moved"`
	ItemCollected bool       `json:"item_collected"`
	ScoreDelta    int        `json:"score_delta"`
	Pursuers      []Position `json:"pursuers"`
	GameOver      bool       `json:"game_over"`
	Victory       bool       `json:"victory"`
	Skipped       bool       `json:"skipped,omitempty"` // episode was already over
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state   *GameState
	config  *GameConfig
	history []MoveHistoryEntry
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	state, err := NewGameStateFromConfig(config)
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		config:  config,
		state:   state,
		history: []MoveHistoryEntry{},
	}, nil
}

// NewEngineWithDefaults creates a new game engine on the bundled level
func NewEngineWithDefaults() *GameEngine {
	eng, err := NewEngine(DefaultGameConfig())
	if err != nil {
		// The bundled level is validated by tests
		panic(fmt.Sprintf("default level invalid: %v", err))
	}
	return eng
}

// GetState returns the live game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a read-only copy of the current state
func (e *GameEngine) Snapshot() *Snapshot {
	return e.state.Snapshot()
}

// Reset rebuilds the state from config; cumulative history is kept
func (e *GameEngine) Reset() *GameState {
	state, err := NewGameStateFromConfig(e.config)
	if err == nil {
		e.state = state
	}
	return e.state
}

// IsGameOver returns whether the episode is terminal
func (e *GameEngine) IsGameOver() bool {
	return e.state.IsTerminal()
}

// IsVictory returns whether the agent has won
func (e *GameEngine) IsVictory() bool {
	return e.state.IsWin
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetAgentPosition returns the current agent position
func (e *GameEngine) GetAgentPosition() Position {
	return e.state.Agent
}

// Step runs one tick: the agent move, then the pursuers. Pursuers only move when the
// agent actually changed cells, so a blocked or Stay tick freezes the board apart
// from the step cost.
func (e *GameEngine) Step(direction Direction) TickResult {
	st := e.state
	result := TickResult{
		Requested: direction,
		Applied:   Stay,
		From:      st.Agent,
	}

	if st.IsTerminal() {
		result.To = st.Agent
		result.Pursuers = append([]Position(nil), st.Pursuers...)
		result.GameOver = true
		result.Victory = st.IsWin
		result.Skipped = true
		return result
	}

	prevScore := st.Score
	prevItems := st.ItemCount()

	result.Applied = st.MoveAgent(direction)
	result.To = st.Agent
	result.Moved = result.To != result.From

	if result.Moved && !st.IsTerminal() {
		st.MovePursuers()
		result.PursuersMoved = true
	}

	result.ItemCollected = st.ItemCount() < prevItems
	result.ScoreDelta = st.Score - prevScore
	result.Pursuers = append([]Position(nil), st.Pursuers...)
	result.GameOver = st.IsTerminal()
	result.Victory = st.IsWin

	e.addMoveToHistory(result)
	return result
}

// CanMove checks if the agent can move in the specified direction
func (e *GameEngine) CanMove(direction Direction) bool {
	if e.state.IsTerminal() {
		return false
	}
	return e.state.grid.IsLegal(e.state.Agent, direction)
}

// GetPossibleMoves returns all legal directions for the agent
func (e *GameEngine) GetPossibleMoves() []Direction {
	if e.state.IsTerminal() {
		return []Direction{}
	}
	return e.state.LegalMoves(e.state.Agent)
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// addMoveToHistory records a tick that actually ran
func (e *GameEngine) addMoveToHistory(result TickResult) {
	e.history = append(e.history, MoveHistoryEntry{
		Action:     result.Requested,
		Applied:    result.Applied,
		From:       result.From,
		To:         result.To,
		Pursuers:   result.Pursuers,
		Score:      e.state.Score,
		StepCount:  e.state.StepCount,
		Timestamp:  time.Now().Unix(),
		MoveNumber: len(e.history) + 1,
	})
}
