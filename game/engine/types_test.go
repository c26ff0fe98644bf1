package engine

import (
	"encoding/json"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		token    string
		expected Direction
		ok       bool
	}{
		{"up", Up, true},
		{"DOWN", Down, true},
		{" Left ", Left, true},
		{"right", Right, true},
		{"stay", Stay, true},
		{"north", Stay, false},
		{"", Stay, false},
	}

	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			d, ok := ParseDirection(test.token)
			if ok != test.ok {
				t.Errorf("ParseDirection(%q): expected ok=%v, got %v", test.token, test.ok, ok)
			}
			if d != test.expected {
				t.Errorf("ParseDirection(%q): expected %s, got %s", test.token, test.expected, d)
			}
		})
	}
}

func TestApplyDirection(t *testing.T) {
	origin := Position{Row: 3, Col: 3}
	tests := []struct {
		direction Direction
		expected  Position
	}{
		{Up, Position{Row: 2, Col: 3}},
		{Down, Position{Row: 4, Col: 3}},
		{Left, Position{Row: 3, Col: 2}},
		{Right, Position{Row: 3, Col: 4}},
		{Stay, Position{Row: 3, Col: 3}},
		{Direction("bogus"), Position{Row: 3, Col: 3}},
	}

	for _, test := range tests {
		t.Run(string(test.direction), func(t *testing.T) {
			got := ApplyDirection(origin, test.direction)
			if got != test.expected {
				t.Errorf("Expected %+v, got %+v", test.expected, got)
			}
		})
	}
}

func TestPositionLess(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Position
		expected bool
	}{
		{"smaller row", Position{0, 5}, Position{1, 0}, true},
		{"larger row", Position{2, 0}, Position{1, 9}, false},
		{"same row smaller col", Position{1, 1}, Position{1, 2}, true},
		{"equal", Position{1, 1}, Position{1, 1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.a.Less(test.b); got != test.expected {
				t.Errorf("%+v.Less(%+v): expected %v, got %v", test.a, test.b, test.expected, got)
			}
		})
	}
}

func TestCardinalDirectionOrder(t *testing.T) {
	expected := []Direction{Up, Down, Left, Right}
	for i, d := range CardinalDirections {
		if d != expected[i] {
			t.Errorf("CardinalDirections[%d]: expected %s, got %s", i, expected[i], d)
		}
	}
}

func TestGameConfigRulesDefaults(t *testing.T) {
	var nilConfig *GameConfig
	rules := nilConfig.Rules()
	if rules.MaxSteps != DefaultMaxSteps {
		t.Errorf("Expected default max steps %d, got %d", DefaultMaxSteps, rules.MaxSteps)
	}

	config := &GameConfig{MaxSteps: 42, PursuerAggressiveness: 0.25}
	rules = config.Rules()
	if rules.MaxSteps != 42 {
		t.Errorf("Expected max steps 42, got %d", rules.MaxSteps)
	}
	if rules.PursuerAggressiveness != 0.25 {
		t.Errorf("Expected aggressiveness 0.25, got %g", rules.PursuerAggressiveness)
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	state, err := ParseLevel(simpleLevel, DefaultRules())
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	data, err := json.Marshal(state.Snapshot())
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}

	if decoded.Agent != state.Agent {
		t.Errorf("Expected agent %+v, got %+v", state.Agent, decoded.Agent)
	}
	if len(decoded.Items) != state.ItemCount() {
		t.Errorf("Expected %d items, got %d", state.ItemCount(), len(decoded.Items))
	}
	if decoded.Width != 5 || decoded.Height != 5 {
		t.Errorf("Expected 5x5, got %dx%d", decoded.Width, decoded.Height)
	}
}
