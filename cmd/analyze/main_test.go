package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/pursuitgame/game/agent"
	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/search"
)

func TestAnalyzeLevel_Corridor(t *testing.T) {
	report, err := analyzeLevel(&engine.GameConfig{
		Name:   "Corridor",
		Layout: []string{"######", "#P...#", "######"},
	})
	if err != nil {
		t.Fatalf("analyzeLevel failed: %v", err)
	}

	if report.Width != 6 || report.Height != 3 {
		t.Errorf("Expected 6x3, got %dx%d", report.Width, report.Height)
	}
	if report.Items != 3 || report.Pursuers != 0 {
		t.Errorf("Expected 3 items and no pursuers, got %d/%d", report.Items, report.Pursuers)
	}
	if !report.HasTarget || report.Target != (engine.Position{Row: 1, Col: 2}) {
		t.Errorf("Expected first target (1,2), got %+v", report.Target)
	}
	if len(report.Algorithms) != len(search.Algorithms()) {
		t.Fatalf("Expected a row per algorithm, got %d", len(report.Algorithms))
	}

	for _, a := range report.Algorithms {
		if a.PathLen != 1 {
			t.Errorf("%s: expected path length 1, got %d", a.Algorithm, a.PathLen)
		}
		if !a.Episode.Victory || a.Episode.Score != 27 {
			t.Errorf("%s: expected a 27 point win, got %+v", a.Algorithm, a.Episode)
		}
	}
}

func TestAnalyzeLevel_OptimalAlgorithmsAgree(t *testing.T) {
	report, err := analyzeLevel(engine.DefaultGameConfig())
	if err != nil {
		t.Fatalf("analyzeLevel failed: %v", err)
	}

	lengths := map[search.Algorithm]int{}
	for _, a := range report.Algorithms {
		lengths[a.Algorithm] = a.PathLen
		if !a.Episode.GameOver {
			t.Errorf("%s: expected the episode to finish", a.Algorithm)
		}
	}
	if lengths[search.BFS] != lengths[search.UCS] || lengths[search.UCS] != lengths[search.AStarSearch] {
		t.Errorf("Optimal algorithms disagree on path length: %v", lengths)
	}
}

func TestAnalyzeLevel_InvalidLayout(t *testing.T) {
	if _, err := analyzeLevel(&engine.GameConfig{Name: "broken", Layout: []string{"#...#"}}); err == nil {
		t.Error("Expected error for a layout without an agent")
	}
}

func TestPrintReport(t *testing.T) {
	report := &LevelReport{
		Name:      "Tiny",
		Width:     5,
		Height:    3,
		Items:     2,
		MaxSteps:  10,
		Target:    engine.Position{Row: 1, Col: 2},
		HasTarget: true,
		Algorithms: []AlgorithmReport{
			{Algorithm: search.BFS, PathLen: 1, Expanded: 2, Episode: &agent.Episode{Ticks: 2, Collected: 2, Score: 18, GameOver: true, Victory: true}},
			{Algorithm: search.DFS, PathLen: 1, Expanded: 3, Episode: &agent.Episode{Ticks: 10, Collected: 1, Score: 0, GameOver: true}},
		},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	for _, want := range []string{"=== Analyzing Tiny ===", "Grid Size: 5 x 3", "First Target: (1, 2)", "ALGORITHM", "won", "lost", "2/2", "1/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "WARNING") {
		t.Errorf("Unexpected warning:\n%s", out)
	}
}

func TestPrintReport_UnreachableTarget(t *testing.T) {
	report, err := analyzeLevel(&engine.GameConfig{
		Name:     "Walled",
		Layout:   []string{"######", "#P#..#", "######"},
		MaxSteps: 5,
	})
	if err != nil {
		t.Fatalf("analyzeLevel failed: %v", err)
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	if !strings.Contains(buf.String(), "first target (1, 3) is unreachable") {
		t.Errorf("Expected unreachable warning:\n%s", buf.String())
	}
}

func TestBundledConfigsAnalyze(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("..", "..", "configs", "*.json"))
	if len(files) == 0 {
		t.Skip("Skipping test - configs directory not found")
	}
	for _, file := range files {
		config, err := engine.LoadGameConfig(file)
		if err != nil {
			t.Fatalf("LoadGameConfig(%s) failed: %v", file, err)
		}
		if _, err := analyzeLevel(config); err != nil {
			t.Errorf("analyzeLevel(%s) failed: %v", filepath.Base(file), err)
		}
	}
}
