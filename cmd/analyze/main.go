// Command analyze prints quick, human-readable comparisons of the search
// algorithms on the level files in the project's configs directory. For each
// level it summarizes dimensions and counts, the first plan each algorithm makes
// (path length and nodes expanded), and how a full policy-driven episode ends.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/wricardo/mcp-training/pursuitgame/game/agent"
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

// AlgorithmReport is one algorithm's showing on a level
type AlgorithmReport struct {
	Algorithm search.Algorithm
	PathLen   int
	Expanded  int
	Episode   *agent.Episode
}

// LevelReport summarizes a level and every algorithm's run on it
type LevelReport struct {
	Name       string
	Width      int
	Height     int
	Items      int
	Pursuers   int
	MaxSteps   int
	Target     engine.Position
	HasTarget  bool
	Algorithms []AlgorithmReport
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	configs := []*engine.GameConfig{engine.DefaultGameConfig()}
	for _, file := range files {
		config, err := engine.LoadGameConfig(file)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", filepath.Base(file), err)
			continue
		}
		configs = append(configs, config)
	}

	for _, config := range configs {
		report, err := analyzeLevel(config)
		if err != nil {
			fmt.Printf("Error analyzing %s: %v\n", config.Name, err)
			continue
		}
		printReport(os.Stdout, report)
	}
}

// analyzeLevel plans once from the start state, replays each plan to check it, and
// plays one full episode per algorithm, each on a fresh engine
func analyzeLevel(config *engine.GameConfig) (*LevelReport, error) {
	state, err := engine.NewGameStateFromConfig(config)
	if err != nil {
		return nil, err
	}

	report := &LevelReport{
		Name:     config.Name,
		Width:    state.Width(),
		Height:   state.Height(),
		Items:    state.ItemCount(),
		Pursuers: len(state.Pursuers),
		MaxSteps: state.Config.MaxSteps,
	}

	for _, alg := range search.Algorithms() {
		plan, err := agent.MakePlan(state, alg)
		if err != nil {
			return nil, err
		}
		report.Target = plan.Target
		report.HasTarget = plan.HasTarget
		if len(plan.Path) > 0 {
			end, err := search.Replay(state, state.Agent, plan.Path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", alg, err)
			}
			if end != plan.Target {
				return nil, fmt.Errorf("%s: path ends at (%d,%d), not on the target", alg, end.Row, end.Col)
			}
		}

		eng, err := engine.NewEngine(config)
		if err != nil {
			return nil, err
		}
		episode, err := agent.RunEpisode(eng, alg, 0, nil)
		if err != nil {
			return nil, err
		}

		report.Algorithms = append(report.Algorithms, AlgorithmReport{
			Algorithm: alg,
			PathLen:   len(plan.Path),
			Expanded:  plan.Expanded,
			Episode:   episode,
		})
	}

	return report, nil
}

func printReport(w io.Writer, report *LevelReport) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", report.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", report.Width, report.Height)
	fmt.Fprintf(w, "Items: %d  Pursuers: %d  Max Steps: %d\n", report.Items, report.Pursuers, report.MaxSteps)
	if report.HasTarget {
		fmt.Fprintf(w, "First Target: (%d, %d)\n", report.Target.Row, report.Target.Col)
	} else {
		fmt.Fprintf(w, "First Target: none\n")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tPATH\tEXPANDED\tTICKS\tCOLLECTED\tSCORE\tRESULT")
	for _, a := range report.Algorithms {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d/%d\t%d\t%s\n",
			a.Algorithm, a.PathLen, a.Expanded, a.Episode.Ticks,
			a.Episode.Collected, report.Items, a.Episode.Score, outcome(a.Episode))
	}
	tw.Flush()

	for _, a := range report.Algorithms {
		if a.Algorithm.Optimal() && report.HasTarget && a.PathLen == 0 {
			fmt.Fprintf(w, "⚠️  WARNING: first target (%d, %d) is unreachable\n", report.Target.Row, report.Target.Col)
			return
		}
	}
}

func outcome(ep *agent.Episode) string {
	switch {
	case ep.Victory:
		return "won"
	case ep.GameOver:
		return "lost"
	default:
		return "playing"
	}
}
