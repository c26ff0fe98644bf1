package service

import (
	"time"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

// CreateSessionRequest selects the level and defaults for a new session
type CreateSessionRequest struct {
	ConfigID  string `json:"config_id,omitempty"`
	Algorithm string `json:"algorithm,omitempty"`
	MaxSteps  int    `json:"max_steps,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigID       string             `json:"config_id"`
	ConfigName     string             `json:"config_name"`
	Algorithm      search.Algorithm   `json:"algorithm"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Status         string             `json:"status"`
	Snapshot       *engine.Snapshot   `json:"snapshot"`
	Frame          string             `json:"frame"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a single tick
type MoveResult struct {
	Tick          engine.TickResult  `json:"tick"`
	Snapshot      *engine.Snapshot   `json:"snapshot"`
	Frame         string             `json:"frame"`
	Message       string             `json:"message"`
	Events        []GameEvent        `json:"events,omitempty"`
	PossibleMoves []engine.Direction `json:"possible_moves"`
}

// AutoResult contains the result of policy-driven ticks
type AutoResult struct {
	Algorithm      search.Algorithm    `json:"algorithm"`
	TicksRequested int                 `json:"ticks_requested"`
	TicksExecuted  int                 `json:"ticks_executed"`
	Truncated      bool                `json:"truncated,omitempty"`
	Limit          int                 `json:"limit,omitempty"`
	StoppedReason  string              `json:"stopped_reason,omitempty"` // "game_over" or "victory"
	Steps          []engine.TickResult `json:"steps"`
	Events         []GameEvent         `json:"events"`
	ScoreDelta     int                 `json:"score_delta"`
	StartPos       engine.Position     `json:"start_pos"`
	EndPos         engine.Position     `json:"end_pos"`
	GameOver       bool                `json:"game_over"`
	Snapshot       *engine.Snapshot    `json:"snapshot"`
	Frame          string              `json:"frame"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "blocked", "item", "caught", "timeout", "victory", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a level configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Items       int    `json:"items"`
	Pursuers    int    `json:"pursuers"`
	MaxSteps    int    `json:"max_steps"`
	BuiltIn     bool   `json:"built_in,omitempty"`
}

// NewConfigInfo summarises a validated config
func NewConfigInfo(configID, filename string, config *engine.GameConfig) *ConfigInfo {
	info := &ConfigInfo{
		Filename:    filename,
		ConfigID:    configID,
		Name:        config.Name,
		Description: config.Description,
		MaxSteps:    config.Rules().MaxSteps,
	}
	if state, err := engine.NewGameStateFromConfig(config); err == nil {
		info.Width = state.Width()
		info.Height = state.Height()
		info.Items = state.ItemCount()
		info.Pursuers = len(state.Pursuers)
	}
	return info
}
