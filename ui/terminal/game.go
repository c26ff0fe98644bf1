package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/pursuitgame/game/agent"
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

// Options configures a terminal session
type Options struct {
	Level     string
	Algorithm search.Algorithm
	Auto      bool
	Interval  time.Duration
}

// Game drives one engine from keyboard input and, in auto mode, from the policy
type Game struct {
	screen   tcell.Screen
	renderer *Renderer
	engine   *engine.GameEngine
	opts     Options
	auto     bool
	message  string
}

// NewGame wires a screen to an engine. The screen must already be initialized.
func NewGame(screen tcell.Screen, eng *engine.GameEngine, opts Options) *Game {
	if opts.Algorithm == "" {
		opts.Algorithm = search.DefaultAlgorithm
	}
	if opts.Interval <= 0 {
		opts.Interval = speedIntervals[SpeedMedium]
	}
	return &Game{
		screen:   screen,
		renderer: NewRenderer(screen),
		engine:   eng,
		opts:     opts,
		auto:     opts.Auto,
	}
}

// Run polls the screen for input and ticks the policy until the player quits or
// ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.opts.Interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	g.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.Handle(ParseKey(ev)) {
					return nil
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
			g.draw()

		case <-ticker.C:
			if g.auto && !g.engine.IsGameOver() {
				if err := g.policyTick(); err != nil {
					return err
				}
				g.draw()
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Handle applies one input. It returns false when the player asked to quit.
func (g *Game) Handle(in Input) bool {
	switch in.Command {
	case CommandQuit:
		return false
	case CommandReset:
		g.engine.Reset()
		g.message = "level reset"
	case CommandToggleAuto:
		g.auto = !g.auto
		if g.auto {
			g.message = fmt.Sprintf("auto play on (%s)", g.opts.Algorithm)
		} else {
			g.message = "auto play off"
		}
	case CommandStep:
		if err := g.policyTick(); err != nil {
			g.message = err.Error()
		}
	case CommandMove:
		g.describe(g.engine.Step(in.Direction))
	}
	return true
}

// Auto reports whether the policy is driving the agent
func (g *Game) Auto() bool {
	return g.auto
}

// Message returns the status line shown under the board
func (g *Game) Message() string {
	return g.message
}

func (g *Game) policyTick() error {
	action, err := agent.ChooseAction(g.engine.GetState(), g.opts.Algorithm)
	if err != nil {
		return err
	}
	g.describe(g.engine.Step(action))
	return nil
}

func (g *Game) describe(result engine.TickResult) {
	switch {
	case result.Skipped:
		g.message = "episode is over, press r to reset"
	case result.Requested != engine.Stay && !result.Moved:
		g.message = fmt.Sprintf("%s is blocked (%+d)", result.Requested, result.ScoreDelta)
	case result.ItemCollected:
		g.message = fmt.Sprintf("%s: picked up an item (%+d)", result.Applied, result.ScoreDelta)
	default:
		g.message = fmt.Sprintf("%s (%+d)", result.Applied, result.ScoreDelta)
	}
}

func (g *Game) draw() {
	g.renderer.Draw(Frame{
		Level:     g.opts.Level,
		Snapshot:  g.engine.Snapshot(),
		Auto:      g.auto,
		Algorithm: string(g.opts.Algorithm),
		Message:   g.message,
	})
}
