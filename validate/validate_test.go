package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func hasError(result ValidationResult, substr string) bool {
	for _, err := range result.Errors {
		if strings.Contains(err, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Test Config",
		"description": "Test configuration",
		"layout": [
			"#####",
			"#P..#",
			"#...#",
			"#..G#",
			"#####"
		],
		"max_steps": 50
	}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}

	for _, info := range []string{"✓ Name: Test Config", "✓ Grid: 5x5", "✓ Items: 7", "✓ Pursuers: 1", "✓ Max steps: 50"} {
		if !hasError(result, info) {
			t.Errorf("Expected info line %q in %v", info, result.Errors)
		}
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	result := validateConfig(writeConfig(t, `{"name": "test", invalid json}`))

	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if !hasError(result, "Invalid JSON") {
		t.Errorf("Expected 'Invalid JSON' error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")

	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasError(result, "Failed to read file") {
		t.Errorf("Expected read error, got: %v", result.Errors)
	}
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"empty layout",
			`{"name": "x", "layout": []}`,
			"layout is required",
		},
		{
			"no agent",
			`{"name": "x", "layout": ["#####", "#..G#", "#####"]}`,
			"exactly one agent",
		},
		{
			"missing name",
			`{"layout": ["#####", "#P.G#", "#####"]}`,
			"name is required",
		},
		{
			"negative max steps",
			`{"name": "x", "layout": ["#####", "#P.G#", "#####"], "max_steps": -3}`,
			"max_steps",
		},
		{
			"ragged rows",
			`{"name": "x", "layout": ["#####", "#P.#", "#####"]}`,
			"Inconsistent grid width at row 2",
		},
		{
			"unknown character",
			`{"name": "x", "layout": ["#####", "#P.X#", "#####"]}`,
			"Invalid character 'X' at position [2,4]",
		},
		{
			"unknown multibyte character",
			`{"name": "x", "layout": ["#####", "#éPG#", "#.###"]}`,
			"Invalid character 'é' at position [2,2]",
		},
		{
			"no items",
			`{"name": "x", "layout": ["#####", "#P G#", "#####"]}`,
			"at least 1 item",
		},
		{
			"walled off item",
			`{"name": "x", "layout": ["######", "#P#..#", "######"]}`,
			"2/2 items unreachable",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := validateConfig(writeConfig(t, test.content))
			if result.Valid {
				t.Fatalf("Expected invalid result, got: %v", result.Errors)
			}
			if !hasError(result, test.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", test.wantErr, result.Errors)
			}
		})
	}
}

func TestValidateConnectivity_ValidLayout(t *testing.T) {
	state, err := engine.ParseLevel("#####\n#P..#\n#.#.#\n#...#\n#####", engine.DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	result := validateConnectivity(state)
	if !result.Valid {
		t.Errorf("Expected valid connectivity, but got errors: %v", result.Errors)
	}
	if !hasError(result, "All 7 items reachable") {
		t.Errorf("Expected connectivity summary, got: %v", result.Errors)
	}
}

func TestValidateConnectivity_UnreachableItem(t *testing.T) {
	state, err := engine.ParseLevel("#######\n#P.#..#\n#######", engine.DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	result := validateConnectivity(state)
	if result.Valid {
		t.Error("Expected connectivity failure")
	}
	if !hasError(result, "2/3 items unreachable") {
		t.Errorf("Expected unreachable summary, got: %v", result.Errors)
	}
	if !hasError(result, "Unreachable: Item at (1,4)") || !hasError(result, "Unreachable: Item at (1,5)") {
		t.Errorf("Expected each unreachable item listed, got: %v", result.Errors)
	}
}

func TestBundledConfigsAreValid(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "configs", "*.json"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(files) == 0 {
		t.Skip("Skipping test - configs directory not found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			result := validateConfig(file)
			if !result.Valid {
				t.Errorf("Expected bundled level to validate, got: %v", result.Errors)
			}
		})
	}
}
