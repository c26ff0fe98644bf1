package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
	"github.com/wricardo/mcp-training/pursuitgame/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrReadOnly       = errors.New("no config directory configured")
)

// Manager handles level configuration loading and caching. Levels are JSON files in
// configDir; the bundled default level is always available as "default" unless a
// default.json file overrides it.
type Manager struct {
	configDir     string
	defaultName   string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager. An empty configDir serves the
// bundled level only.
func NewManager(configDir string) (*Manager, error) {
	if configDir != "" {
		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("config directory does not exist: %s", configDir)
		}
	}

	m := &Manager{
		configDir:   configDir,
		defaultName: engine.DefaultLevelName,
		configs:     make(map[string]*engine.GameConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name. Names never leave configDir.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	name = strings.TrimSuffix(name, ".json")
	if err := validName(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if errors.Is(err, ErrConfigNotFound) && name == engine.DefaultLevelName {
		config, err = engine.DefaultGameConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// readConfig reads and validates configDir/name.json
func (m *Manager) readConfig(name string) (*engine.GameConfig, error) {
	if m.configDir == "" {
		return nil, fmt.Errorf("%w: '%s'", ErrConfigNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: '%s'", ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s.json: %v", ErrInvalidConfig, name, err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &config, nil
}

// ListConfigs returns information about all available configurations. Files that
// fail validation are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	var configs []*service.ConfigInfo
	hasDefaultFile := false

	if m.configDir != "" {
		entries, err := os.ReadDir(m.configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read config directory: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}

			name := strings.TrimSuffix(entry.Name(), ".json")
			config, err := m.LoadConfig(name)
			if err != nil {
				continue
			}
			if name == engine.DefaultLevelName {
				hasDefaultFile = true
			}
			configs = append(configs, service.NewConfigInfo(name, entry.Name(), config))
		}
	}

	if !hasDefaultFile {
		info := service.NewConfigInfo(engine.DefaultLevelName, "", engine.DefaultGameConfig())
		info.BuiltIn = true
		configs = append([]*service.ConfigInfo{info}, configs...)
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	name = strings.TrimSuffix(name, ".json")
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = name
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and reloads the default, so
// files edited on disk are picked up
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig loads the default level, falling back to the bundled one
func (m *Manager) loadDefaultConfig() error {
	m.mu.RLock()
	name := m.defaultName
	m.mu.RUnlock()

	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// validName rejects names that would resolve outside configDir
func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name || name == ".." {
		return fmt.Errorf("%w: %w: invalid config name '%s'", ErrInvalidConfig, engine.ErrConfiguration, name)
	}
	return nil
}

// SaveConfig validates a configuration and writes it to configDir/name.json
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if m.configDir == "" {
		return ErrReadOnly
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	name = strings.TrimSuffix(name, ".json")
	if err := validName(name); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	if name == m.defaultName {
		m.defaultConfig = config
	}
	m.mu.Unlock()

	return nil
}
