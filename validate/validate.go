// Command validate provides a small CLI that validates level configuration JSON
// files in the ../configs directory (or the directory given as the first
// argument). It checks:
//   - JSON structure and required fields
//   - Level rules: exactly one agent (P), size limits, max_steps and aggressiveness ranges
//   - Rectangular rows and the characters used (#, ., P, G, space)
//   - At least one item (.) so the level can be won
//   - Connectivity: every item is reachable from the agent via open cells
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

var validChars = map[rune]bool{
	engine.WallChar:    true,
	engine.ItemChar:    true,
	engine.AgentChar:   true,
	engine.PursuerChar: true,
	' ':                true,
}

// validateConfig loads and validates a single level JSON file.
// It performs structural checks, rule validation through the engine, and
// reachability analysis for items.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// The engine pads short rows and reads unknown characters as floor; level
	// files are held to a stricter standard
	gridWidth := -1
	for i, row := range config.Layout {
		if strings.TrimSpace(row) == "" {
			continue
		}
		width := utf8.RuneCountInString(row)
		if gridWidth == -1 {
			gridWidth = width
		} else if width != gridWidth {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, gridWidth, width))
		}

		for j, char := range []rune(row) {
			if !validChars[char] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", char, i+1, j+1))
			}
		}
	}

	state, err := engine.NewGameStateFromConfig(&config)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if state.ItemCount() == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Must have at least 1 item (.)")
	}

	// Connectivity validation - check if all items are reachable from the agent
	if result.Valid {
		reachabilityResult := validateConnectivity(state)
		if !reachabilityResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, reachabilityResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		rules := config.Rules()
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", state.Height(), state.Width()))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Items: %d", state.ItemCount()))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Pursuers: %d", len(state.Pursuers)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Max steps: %d", rules.MaxSteps))
	}

	return result
}

// validateConnectivity ensures all items are reachable from the agent using
// 4-directional movement over open cells. It reports any unreachable items and
// returns an aggregated ValidationResult.
func validateConnectivity(state *engine.GameState) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	// Flood fill from the agent to find all reachable cells
	visited := map[engine.Position]bool{state.Agent: true}
	queue := []engine.Position{state.Agent}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range state.Successors(current) {
			if !visited[next.Position] {
				visited[next.Position] = true
				queue = append(queue, next.Position)
			}
		}
	}

	items := state.Items()
	unreachableItems := []string{}
	for _, item := range items {
		if !visited[item] {
			unreachableItems = append(unreachableItems, fmt.Sprintf("Item at (%d,%d)", item.Row, item.Col))
		}
	}

	if len(unreachableItems) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d items unreachable from the agent", len(unreachableItems), len(items)))
		for _, item := range unreachableItems {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", item))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d items reachable from the agent", len(items)))
	}

	return result
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
