package engine

import "strings"

// Snapshot is a read-only view of a GameState, enough for any renderer to draw a
// frame without touching internals
type Snapshot struct {
	Walls     []Position `json:"walls"`
	Items     []Position `json:"items"`
	Agent     Position   `json:"agent"`
	Pursuers  []Position `json:"pursuers"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Score     int        `json:"score"`
	StepCount int        `json:"step_count"`
	MaxSteps  int        `json:"max_steps"`
	IsWin     bool       `json:"is_win"`
	IsLose    bool       `json:"is_lose"`
	GameOver  bool       `json:"game_over"`
}

// Snapshot copies the current state into a Snapshot
func (gs *GameState) Snapshot() *Snapshot {
	pursuers := make([]Position, len(gs.Pursuers))
	copy(pursuers, gs.Pursuers)

	return &Snapshot{
		Walls:     gs.grid.Walls(),
		Items:     gs.Items(),
		Agent:     gs.Agent,
		Pursuers:  pursuers,
		Width:     gs.grid.Width(),
		Height:    gs.grid.Height(),
		Score:     gs.Score,
		StepCount: gs.StepCount,
		MaxSteps:  gs.Config.MaxSteps,
		IsWin:     gs.IsWin,
		IsLose:    gs.IsLose,
		GameOver:  gs.IsTerminal(),
	}
}

// Cells lays the snapshot out as a height x width rune grid. Pursuers draw over
// items and the agent draws over everything.
func (s *Snapshot) Cells() [][]rune {
	grid := make([][]rune, s.Height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", s.Width))
	}
	put := func(p Position, ch rune) {
		if p.Row >= 0 && p.Row < s.Height && p.Col >= 0 && p.Col < s.Width {
			grid[p.Row][p.Col] = ch
		}
	}
	for _, w := range s.Walls {
		put(w, WallChar)
	}
	for _, it := range s.Items {
		put(it, ItemChar)
	}
	for _, g := range s.Pursuers {
		put(g, PursuerChar)
	}
	put(s.Agent, AgentChar)
	return grid
}

// RenderASCII draws the snapshot using the level template characters
func RenderASCII(s *Snapshot) string {
	cells := s.Cells()
	lines := make([]string, len(cells))
	for i, row := range cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// Status returns a one-word outcome: "won", "lost" or "playing"
func (s *Snapshot) Status() string {
	switch {
	case s.IsWin:
		return "won"
	case s.IsLose:
		return "lost"
	default:
		return "playing"
	}
}
