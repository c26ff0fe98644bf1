package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ValidateGameConfig validates a level configuration for correctness. Every
// failure wraps ErrConfiguration.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrConfiguration)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrConfiguration)
	}

	// Validate rule values
	if config.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must be positive, got %d", ErrConfiguration, config.MaxSteps)
	}
	if config.PursuerAggressiveness < 0 || config.PursuerAggressiveness > 1 {
		return fmt.Errorf("%w: pursuer_aggressiveness must be between 0 and 1, got %g",
			ErrConfiguration, config.PursuerAggressiveness)
	}

	// Validate layout
	rows := 0
	width := 0
	agents := 0
	for _, row := range config.Layout {
		if strings.TrimSpace(row) == "" {
			continue
		}
		rows++
		if n := utf8.RuneCountInString(row); n > width {
			width = n
		}
		agents += strings.Count(row, string(AgentChar))
	}

	if rows == 0 {
		return fmt.Errorf("%w: layout is required", ErrConfiguration)
	}
	if rows > MaxLevelHeight {
		return fmt.Errorf("%w: layout must have at most %d rows, got %d", ErrConfiguration, MaxLevelHeight, rows)
	}
	if width > MaxLevelWidth {
		return fmt.Errorf("%w: layout rows must be at most %d characters, got %d", ErrConfiguration, MaxLevelWidth, width)
	}
	if agents != 1 {
		return fmt.Errorf("%w: layout must contain exactly one agent start 'P', got %d", ErrConfiguration, agents)
	}

	return nil
}

// NewGameStateFromConfig parses the config's layout with its rules applied
func NewGameStateFromConfig(config *GameConfig) (*GameState, error) {
	if config == nil {
		config = DefaultGameConfig()
	}
	return ParseLayout(config.Layout, config.Rules())
}

// LoadGameConfig loads a level configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filepath.Base(filename), err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
