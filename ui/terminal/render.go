package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

// Rows above the board
const boardTop = 2

var (
	styleDefault = tcell.StyleDefault
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleItem    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAgent   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	stylePursuer = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleWon     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleLost    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
)

// Screen is the subset of tcell.Screen the renderer draws on
type Screen interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Frame is everything drawn in one refresh
type Frame struct {
	Level     string
	Snapshot  *engine.Snapshot
	Auto      bool
	Algorithm string
	Message   string
}

// Renderer draws frames onto a screen
type Renderer struct {
	screen Screen
}

// NewRenderer creates a renderer for the given screen
func NewRenderer(screen Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw clears the screen and paints the header, the board and the footer
func (r *Renderer) Draw(frame Frame) {
	r.screen.Clear()
	s := frame.Snapshot

	mode := "manual"
	if frame.Auto {
		mode = "auto/" + frame.Algorithm
	}
	header := fmt.Sprintf("%s  score %d  steps %d/%d  items %d  [%s]",
		frame.Level, s.Score, s.StepCount, s.MaxSteps, len(s.Items), mode)
	if d, ok := engine.NearestPursuer(s.Agent, s.Pursuers); ok {
		header += fmt.Sprintf("  pursuer %d", d)
	}
	r.text(0, 0, header, styleHeader)

	for row, cells := range s.Cells() {
		for col, ch := range cells {
			r.screen.SetContent(col, boardTop+row, ch, nil, cellStyle(ch))
		}
	}

	footer := boardTop + s.Height + 1
	switch s.Status() {
	case "won":
		r.text(0, footer, " Victory! All items collected. ", styleWon)
	case "lost":
		r.text(0, footer, " Game over. ", styleLost)
	default:
		if frame.Message != "" {
			r.text(0, footer, frame.Message, styleDefault)
		}
	}
	r.text(0, footer+1, "arrows/wasd move  space wait  p auto  n step  r reset  q quit", styleDefault)

	r.screen.Show()
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func cellStyle(ch rune) tcell.Style {
	switch ch {
	case engine.WallChar:
		return styleWall
	case engine.ItemChar:
		return styleItem
	case engine.AgentChar:
		return styleAgent
	case engine.PursuerChar:
		return stylePursuer
	default:
		return styleDefault
	}
}
