package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/pursuitgame/game/agent"
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/service"
)

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nLevel: %s (%s)\nAlgorithm: %s\nStatus: %s\n",
		session.ID, session.ConfigID, session.ConfigName, session.Algorithm, session.Status)
	if session.Snapshot != nil {
		b.WriteString("\n")
		b.WriteString(formatSnapshot(session.Snapshot, session.Frame))
	}
	return b.String()
}

func formatSnapshot(s *engine.Snapshot, frame string) string {
	var b strings.Builder

	switch s.Status() {
	case "won":
		b.WriteString("🎉 VICTORY!\n")
	case "lost":
		b.WriteString("💀 GAME OVER\n")
	}

	fmt.Fprintf(&b, "Agent: (%d,%d)\n", s.Agent.Row, s.Agent.Col)
	fmt.Fprintf(&b, "Score: %d\n", s.Score)
	fmt.Fprintf(&b, "Steps: %d/%d\n", s.StepCount, s.MaxSteps)
	fmt.Fprintf(&b, "Items left: %d\n", len(s.Items))

	if len(s.Pursuers) > 0 {
		parts := make([]string, len(s.Pursuers))
		for i, p := range s.Pursuers {
			parts[i] = fmt.Sprintf("(%d,%d) d=%d", p.Row, p.Col, engine.ManhattanDistance(s.Agent, p))
		}
		fmt.Fprintf(&b, "Pursuers: %s\n", strings.Join(parts, ", "))
	}

	if frame == "" {
		frame = engine.RenderASCII(s)
	}
	b.WriteString("\nBoard:\n")
	b.WriteString(frame)
	b.WriteString("\n")
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	tick := result.Tick

	switch {
	case tick.Skipped:
		b.WriteString("✗ Game is already over\n")
	case tick.Moved:
		fmt.Fprintf(&b, "✓ Moved %s (%d,%d) -> (%d,%d)\n", tick.Applied, tick.From.Row, tick.From.Col, tick.To.Row, tick.To.Col)
	case tick.Requested == engine.Stay:
		b.WriteString("✓ Stayed in place\n")
	default:
		fmt.Fprintf(&b, "✗ Move %s blocked, counted as stay\n", tick.Requested)
	}
	if tick.ItemCollected {
		b.WriteString("Item collected!\n")
	}
	if result.Message != "" {
		b.WriteString(result.Message)
		b.WriteString("\n")
	}
	if len(result.PossibleMoves) > 0 {
		moves := make([]string, len(result.PossibleMoves))
		for i, m := range result.PossibleMoves {
			moves[i] = string(m)
		}
		fmt.Fprintf(&b, "Possible moves: %s\n", strings.Join(moves, ","))
	}

	if result.Snapshot != nil {
		b.WriteString("\n")
		b.WriteString(formatSnapshot(result.Snapshot, result.Frame))
	}
	return b.String()
}

func formatAutoResult(result *service.AutoResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Auto (%s): %d/%d ticks executed\n", result.Algorithm, result.TicksExecuted, result.TicksRequested)
	if result.Truncated {
		fmt.Fprintf(&b, "Note: request truncated to %d ticks\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", result.StoppedReason)
	}
	fmt.Fprintf(&b, "Path: (%d,%d) -> (%d,%d), score delta %+d\n",
		result.StartPos.Row, result.StartPos.Col, result.EndPos.Row, result.EndPos.Col, result.ScoreDelta)

	if len(result.Steps) > 0 {
		b.WriteString("Steps: ")
		for i, step := range result.Steps {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(string(step.Applied))
			if step.ItemCollected {
				b.WriteString("*")
			}
		}
		b.WriteString("\n")
	}

	if result.Snapshot != nil {
		b.WriteString("\n")
		b.WriteString(formatSnapshot(result.Snapshot, result.Frame))
	}
	return b.String()
}

func formatPlan(plan *agent.Plan) string {
	if !plan.HasTarget {
		return fmt.Sprintf("Plan (%s): no items left, next action %s\n", plan.Algorithm, plan.Action())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plan (%s)\n", plan.Algorithm)
	fmt.Fprintf(&b, "Target: (%d,%d), Manhattan distance %d\n", plan.Target.Row, plan.Target.Col, plan.Distance)
	fmt.Fprintf(&b, "Expanded: %d positions\n", plan.Expanded)
	if len(plan.Path) == 0 {
		b.WriteString("No path to the target, next action stay\n")
		return b.String()
	}
	moves := make([]string, len(plan.Path))
	for i, d := range plan.Path {
		moves[i] = string(d)
	}
	fmt.Fprintf(&b, "Path (%d moves): %s\n", len(plan.Path), strings.Join(moves, ","))
	fmt.Fprintf(&b, "Next action: %s\n", plan.Action())
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d moves):\n\n", history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		note := ""
		if move.Action != move.Applied {
			note = fmt.Sprintf(" (requested %s)", move.Action)
		}
		fmt.Fprintf(&b, "#%d: %s%s (%d,%d) -> (%d,%d) score=%d\n",
			move.MoveNumber, move.Applied, note, move.From.Row, move.From.Col, move.To.Row, move.To.Col, move.Score)
	}

	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d\n", history.Page+1)
	}
	return b.String()
}

// describeCell reports what a snapshot shows at p, topmost layer first
func describeCell(s *engine.Snapshot, p engine.Position) string {
	if p.Row < 0 || p.Row >= s.Height || p.Col < 0 || p.Col >= s.Width {
		return fmt.Sprintf("Cell (%d,%d) is outside the %dx%d board and impassable", p.Row, p.Col, s.Width, s.Height)
	}

	cells := s.Cells()
	ch := cells[p.Row][p.Col]

	var what string
	switch ch {
	case engine.AgentChar:
		what = "your agent"
	case engine.PursuerChar:
		what = "a pursuer"
	case engine.ItemChar:
		what = "an item (passable, collectable)"
	case engine.WallChar:
		what = "a wall (impassable)"
	default:
		what = "open floor (passable)"
	}

	desc := fmt.Sprintf("Cell (%d,%d) '%c': %s, %d steps from the agent ignoring walls",
		p.Row, p.Col, ch, what, engine.ManhattanDistance(s.Agent, p))
	for _, item := range s.Items {
		if item == p && ch != engine.ItemChar {
			desc += "; an item lies underneath"
			break
		}
	}
	return desc
}
