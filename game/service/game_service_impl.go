package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/pursuitgame/game/agent"
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alg, err := search.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	if req.MaxSteps < 0 {
		return nil, fmt.Errorf("%w: max_steps must be positive, got %d", engine.ErrConfiguration, req.MaxSteps)
	}

	// Load configuration
	configID := req.ConfigID
	var config *engine.GameConfig
	if configID != "" {
		config, err = s.configs.LoadConfig(configID)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return nil, s.configNotFound(configID)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configID, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = engine.DefaultLevelName
	}

	// A per-session step budget overrides the level's
	if req.MaxSteps > 0 {
		override := *config
		override.MaxSteps = req.MaxSteps
		config = &override
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.ConfigID = configID
	session.Algorithm = alg

	return newSessionInfo(session), nil
}

// configNotFound lists the available config IDs in the error
func (s *gameServiceImpl) configNotFound(configID string) error {
	available, err := s.configs.ListConfigs()
	if err != nil || len(available) == 0 {
		return fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configID)
	}
	ids := make([]string, 0, len(available))
	for _, cfg := range available {
		ids = append(ids, cfg.ConfigID)
	}
	return fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configID, ids)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return newSessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, newSessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move runs one tick with the given direction token
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	d, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: invalid direction '%s', use up, down, left, right or stay", engine.ErrConfiguration, direction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	tick := sess.Engine.Step(d)
	events = append(events, tickEvents(tick)...)
	snapshot := sess.Engine.Snapshot()

	return &MoveResult{
		Tick:          tick,
		Snapshot:      snapshot,
		Frame:         engine.RenderASCII(snapshot),
		Message:       tickMessage(tick, snapshot),
		Events:        events,
		PossibleMoves: sess.Engine.GetPossibleMoves(),
	}, nil
}

// Auto lets the action policy drive up to ticks moves, stopping at a terminal state
func (s *gameServiceImpl) Auto(ctx context.Context, sessionID, algorithm string, ticks int) (*AutoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	alg := sess.Algorithm
	if algorithm != "" {
		if alg, err = search.ParseAlgorithm(algorithm); err != nil {
			return nil, err
		}
	}

	if ticks <= 0 {
		ticks = 1
	}
	result := &AutoResult{
		Algorithm:      alg,
		TicksRequested: ticks,
		Steps:          make([]engine.TickResult, 0),
		Events:         make([]GameEvent, 0),
		StartPos:       sess.Engine.GetAgentPosition(),
	}
	if ticks > engine.MaxAutoTicks {
		result.Truncated = true
		result.Limit = engine.MaxAutoTicks
		ticks = engine.MaxAutoTicks
	}

	startScore := sess.Engine.GetScore()
	for i := 0; i < ticks; i++ {
		if sess.Engine.IsGameOver() {
			break
		}
		action, err := agent.ChooseAction(sess.Engine.GetState(), alg)
		if err != nil {
			return nil, err
		}
		tick := sess.Engine.Step(action)
		result.Steps = append(result.Steps, tick)
		result.Events = append(result.Events, tickEvents(tick)...)
		result.TicksExecuted++
	}

	if sess.Engine.IsGameOver() {
		result.GameOver = true
		result.StoppedReason = "game_over"
		if sess.Engine.IsVictory() {
			result.StoppedReason = "victory"
		}
	}

	result.Snapshot = sess.Engine.Snapshot()
	result.Frame = engine.RenderASCII(result.Snapshot)
	result.EndPos = sess.Engine.GetAgentPosition()
	result.ScoreDelta = sess.Engine.GetScore() - startScore
	return result, nil
}

// Plan shows what the action policy would do next without moving
func (s *gameServiceImpl) Plan(ctx context.Context, sessionID, algorithm string) (*agent.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	alg := sess.Algorithm
	if algorithm != "" {
		if alg, err = search.ParseAlgorithm(algorithm); err != nil {
			return nil, err
		}
	}
	return agent.MakePlan(sess.Engine.GetState(), alg)
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	return sess.Engine.Snapshot(), nil
}

// GetSnapshot retrieves the current game state
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := make([]engine.MoveHistoryEntry, 0, opts.Limit)
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available level configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific level configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a level configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// ReloadConfigs drops cached levels so edited files are read again. Running
// sessions keep the level they started with.
func (s *gameServiceImpl) ReloadConfigs(ctx context.Context) error {
	return s.configs.RefreshCache()
}

// ListAlgorithms returns the search algorithms sessions can use
func (s *gameServiceImpl) ListAlgorithms(ctx context.Context) []search.Info {
	return search.Describe()
}

// getSession fetches a session and touches its access time. Callers hold
// s.mu for writing.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func newSessionInfo(sess *Session) *SessionInfo {
	snapshot := sess.Engine.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigID:       sess.ConfigID,
		ConfigName:     sess.Config.Name,
		Algorithm:      sess.Algorithm,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Status:         snapshot.Status(),
		Snapshot:       snapshot,
		Frame:          engine.RenderASCII(snapshot),
		GameConfig:     sess.Config,
	}
}

// tickEvents describes one tick as a list of events
func tickEvents(tick engine.TickResult) []GameEvent {
	now := time.Now()
	if tick.Skipped {
		return []GameEvent{{Type: "game_over", Message: "Game is already over, reset to play again", Timestamp: now}}
	}
	events := []GameEvent{}

	if tick.Moved {
		events = append(events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("Moved %s to (%d,%d)", tick.Applied, tick.To.Row, tick.To.Col),
			Timestamp: now,
			Position:  tick.To,
		})
	} else if tick.Requested != engine.Stay {
		events = append(events, GameEvent{
			Type:      "blocked",
			Message:   fmt.Sprintf("Move %s blocked at (%d,%d)", tick.Requested, tick.From.Row, tick.From.Col),
			Timestamp: now,
			Position:  tick.From,
		})
	}

	if tick.ItemCollected {
		events = append(events, GameEvent{
			Type:      "item",
			Message:   fmt.Sprintf("Item collected at (%d,%d)", tick.To.Row, tick.To.Col),
			Timestamp: now,
			Position:  tick.To,
		})
	}

	if tick.GameOver {
		switch {
		case tick.Victory:
			events = append(events, GameEvent{Type: "victory", Message: "Victory! All items collected!", Timestamp: now})
		case caught(tick):
			events = append(events, GameEvent{Type: "caught", Message: "Caught by a pursuer!", Timestamp: now, Position: tick.To})
		default:
			events = append(events, GameEvent{Type: "timeout", Message: "Out of steps!", Timestamp: now})
		}
	}

	return events
}

func caught(tick engine.TickResult) bool {
	for _, p := range tick.Pursuers {
		if p == tick.To {
			return true
		}
	}
	return false
}

func tickMessage(tick engine.TickResult, snapshot *engine.Snapshot) string {
	switch {
	case tick.Skipped:
		return "Game is already over, reset to play again"
	case tick.GameOver && tick.Victory:
		return fmt.Sprintf("Victory! Final score: %d", snapshot.Score)
	case tick.GameOver && caught(tick):
		return fmt.Sprintf("Caught by a pursuer. Final score: %d", snapshot.Score)
	case tick.GameOver:
		return fmt.Sprintf("Game over after %d steps. Final score: %d", snapshot.StepCount, snapshot.Score)
	case !tick.Moved && tick.Requested != engine.Stay:
		return fmt.Sprintf("Can't move %s. Score: %d", tick.Requested, snapshot.Score)
	default:
		return fmt.Sprintf("Score: %d, items left: %d, steps: %d/%d",
			snapshot.Score, len(snapshot.Items), snapshot.StepCount, snapshot.MaxSteps)
	}
}
