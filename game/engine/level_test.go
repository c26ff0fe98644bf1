package engine

import (
	"errors"
	"testing"
)

const simpleLevel = `
#####
#P..#
#...#
#..G#
#####
`

func TestParseLevel_SimpleLevel(t *testing.T) {
	state, err := ParseLevel(simpleLevel, DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	if state.Width() != 5 || state.Height() != 5 {
		t.Errorf("Expected 5x5 grid, got %dx%d", state.Width(), state.Height())
	}
	if state.Agent != (Position{Row: 1, Col: 1}) {
		t.Errorf("Expected agent at (1,1), got %+v", state.Agent)
	}
	if len(state.Pursuers) != 1 || state.Pursuers[0] != (Position{Row: 3, Col: 3}) {
		t.Errorf("Expected one pursuer at (3,3), got %+v", state.Pursuers)
	}
	if state.ItemCount() != 7 {
		t.Errorf("Expected 7 items, got %d", state.ItemCount())
	}
	if len(state.Grid().Walls()) != 16 {
		t.Errorf("Expected 16 walls, got %d", len(state.Grid().Walls()))
	}
	if state.HasItem(state.Agent) {
		t.Error("Agent start cell should not hold an item")
	}
}

func TestParseLevel_PursuerOrderIsRowMajor(t *testing.T) {
	state, err := ParseLevel("G..G\n.P..\nG...", DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	expected := []Position{{0, 0}, {0, 3}, {2, 0}}
	if len(state.Pursuers) != len(expected) {
		t.Fatalf("Expected %d pursuers, got %d", len(expected), len(state.Pursuers))
	}
	for i, p := range expected {
		if state.Pursuers[i] != p {
			t.Errorf("Pursuer %d: expected %+v, got %+v", i, p, state.Pursuers[i])
		}
	}
}

func TestParseLevel_RaggedRows(t *testing.T) {
	state, err := ParseLevel("#####\n#P\n#...#", DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	if state.Width() != 5 {
		t.Errorf("Expected width 5 from longest row, got %d", state.Width())
	}
	// Cells past the end of a short row are open floor
	if !state.Grid().IsOpen(Position{Row: 1, Col: 3}) {
		t.Error("Expected (1,3) beyond a short row to be open floor")
	}
	moves := state.LegalMoves(state.Agent)
	if len(moves) != 2 || moves[0] != Down || moves[1] != Right {
		t.Errorf("Expected [down right], got %v", moves)
	}
}

func TestParseLevel_BlankLinesIgnored(t *testing.T) {
	state, err := ParseLevel("\n\n###\n#P#\n###\n\n", DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	if state.Height() != 3 {
		t.Errorf("Expected height 3, got %d", state.Height())
	}
	if state.Agent != (Position{Row: 1, Col: 1}) {
		t.Errorf("Expected agent at (1,1), got %+v", state.Agent)
	}
}

func TestParseLevel_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"no agent", "#####\n#...#\n#####"},
		{"two agents", "#####\n#P.P#\n#####"},
		{"empty", ""},
		{"whitespace only", "   \n\t\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseLevel(test.template, DefaultRules())
			if err == nil {
				t.Fatal("Expected configuration error")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Expected ErrConfiguration, got: %v", err)
			}
		})
	}
}

func TestParseLevel_UnknownCharactersAreFloor(t *testing.T) {
	state, err := ParseLevel("xPz", DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	if len(state.LegalMoves(state.Agent)) != 2 {
		t.Errorf("Expected both neighbours open, got %v", state.LegalMoves(state.Agent))
	}
}

func TestParseLevel_MultibyteCharactersAreOneCell(t *testing.T) {
	state, err := ParseLevel("Pé.\n###", DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	if state.Width() != 3 {
		t.Errorf("Expected width 3, got %d", state.Width())
	}
	items := state.Items()
	if len(items) != 1 || items[0] != (Position{Row: 0, Col: 2}) {
		t.Errorf("Expected one item at (0,2), got %v", items)
	}
	if moves := state.LegalMoves(state.Agent); len(moves) != 1 || moves[0] != Right {
		t.Errorf("Expected only right open, got %v", moves)
	}
}

func TestParseLevel_ZeroRulesGetDefaults(t *testing.T) {
	state, err := ParseLevel(simpleLevel, RuleConfig{})
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	if state.Config.MaxSteps != DefaultMaxSteps {
		t.Errorf("Expected max steps %d, got %d", DefaultMaxSteps, state.Config.MaxSteps)
	}
}

func TestLoadLevel(t *testing.T) {
	state, err := LoadLevel(DefaultLevelName)
	if err != nil {
		t.Fatalf("LoadLevel(default) failed: %v", err)
	}
	if state.Width() != 19 || state.Height() != 11 {
		t.Errorf("Expected 19x11 default level, got %dx%d", state.Width(), state.Height())
	}
	if len(state.Pursuers) != 2 {
		t.Errorf("Expected 2 pursuers, got %d", len(state.Pursuers))
	}

	_, err = LoadLevel("castle")
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for unknown level, got: %v", err)
	}
}

func TestDefaultGameConfig_IsValid(t *testing.T) {
	config := DefaultGameConfig()
	if err := ValidateGameConfig(config); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if len(config.Layout) != 11 {
		t.Errorf("Expected 11 layout rows, got %d", len(config.Layout))
	}
}
