package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Layout: []string{
			"#####",
			"#P..#",
			"#...#",
			"#..G#",
			"#####",
		},
		MaxSteps: 100,
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	writeRaw(t, dir, name+".json", string(data))
}

func writeRaw(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != engine.DefaultLevelName {
			t.Errorf("Expected bundled default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path"); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("no directory", func(t *testing.T) {
		manager, err := NewManager("")
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		configs, err := manager.ListConfigs()
		if err != nil {
			t.Fatalf("ListConfigs failed: %v", err)
		}
		if len(configs) != 1 || !configs[0].BuiltIn {
			t.Errorf("Expected only the built-in level, got %+v", configs)
		}
	})

	t.Run("default file overrides bundled level", func(t *testing.T) {
		dir := t.TempDir()
		override := createValidConfig()
		override.Name = "My Default"
		writeConfigFile(t, dir, "default", override)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "My Default" {
			t.Errorf("Expected default.json to win, got %s", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig())
	writeRaw(t, dir, "malformed.json", `{"name": `)
	writeRaw(t, dir, "noagent.json", `{"name": "x", "layout": ["#...#"]}`)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("small")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Test Config" {
			t.Errorf("Expected name 'Test Config', got '%s'", config.Name)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("small.json")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Test Config" {
			t.Errorf("Expected name 'Test Config', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		first, _ := manager.LoadConfig("small")
		second, _ := manager.LoadConfig("small")
		if first != second {
			t.Error("Expected cached config pointer")
		}
	})

	t.Run("load bundled default", func(t *testing.T) {
		config, err := manager.LoadConfig(engine.DefaultLevelName)
		if err != nil {
			t.Fatalf("Failed to load default: %v", err)
		}
		if len(config.Layout) != 11 {
			t.Errorf("Expected bundled 11-row layout, got %d rows", len(config.Layout))
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		_, err := manager.LoadConfig("noagent")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
		if !errors.Is(err, engine.ErrConfiguration) {
			t.Errorf("Expected error to wrap ErrConfiguration, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		_, err := manager.LoadConfig("malformed")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "alpha", createValidConfig())
	beta := createValidConfig()
	beta.Name = "Beta"
	writeConfigFile(t, dir, "beta", beta)
	writeRaw(t, dir, "broken.json", `{"name": "broken"}`)
	writeRaw(t, dir, "notes.txt", "not a level")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}

	expected := []string{engine.DefaultLevelName, "alpha", "beta"}
	if len(configs) != len(expected) {
		t.Fatalf("Expected %d configs, got %d", len(expected), len(configs))
	}
	for i, id := range expected {
		if configs[i].ConfigID != id {
			t.Errorf("Config %d: expected %s, got %s", i, id, configs[i].ConfigID)
		}
	}

	alpha := configs[1]
	if alpha.Filename != "alpha.json" {
		t.Errorf("Expected filename alpha.json, got %s", alpha.Filename)
	}
	if alpha.Width != 5 || alpha.Height != 5 || alpha.Items != 7 || alpha.Pursuers != 1 {
		t.Errorf("Unexpected summary: %+v", alpha)
	}
	if alpha.MaxSteps != 100 {
		t.Errorf("Expected max steps 100, got %d", alpha.MaxSteps)
	}
	if !configs[0].BuiltIn || configs[0].Width != 19 {
		t.Errorf("Expected built-in 19-wide default first, got %+v", configs[0])
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig()
	config.Name = "Saved"
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	// A fresh manager reads it back from disk
	other, _ := NewManager(dir)
	loaded, err := other.LoadConfig("saved")
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if loaded.Name != "Saved" {
		t.Errorf("Expected name Saved, got %s", loaded.Name)
	}

	invalid := createValidConfig()
	invalid.Layout = nil
	if err := manager.SaveConfig("invalid", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, engine.ErrConfiguration) {
		t.Errorf("Expected configuration error for path name, got %v", err)
	}

	readOnly, _ := NewManager("")
	if err := readOnly.SaveConfig("x", createValidConfig()); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("small"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "Test Config" {
		t.Errorf("Expected new default, got %s", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	// Edit on disk, then refresh
	changed := createValidConfig()
	changed.Name = "Changed"
	writeConfigFile(t, dir, "small", changed)

	cached, _ := manager.LoadConfig("small")
	if cached.Name != "Test Config" {
		t.Errorf("Expected cached name before refresh, got %s", cached.Name)
	}
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
	refreshed, _ := manager.LoadConfig("small")
	if refreshed.Name != "Changed" {
		t.Errorf("Expected refreshed name, got %s", refreshed.Name)
	}
	if manager.GetDefault().Name != "Changed" {
		t.Errorf("Expected refresh to reload the chosen default, got %s", manager.GetDefault().Name)
	}

	// Saving over the default level replaces it
	saved := createValidConfig()
	saved.Name = "Saved Default"
	if err := manager.SaveConfig("small", saved); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if manager.GetDefault().Name != "Saved Default" {
		t.Errorf("Expected saved default, got %s", manager.GetDefault().Name)
	}
}

func TestManager_LoadConfigStaysInConfigDir(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "configs")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	writeConfigFile(t, parent, "outside", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	names := []string{
		"../outside",
		"../outside.json",
		"..",
		`..\outside`,
		"sub/outside",
		filepath.Join(parent, "outside"),
		"",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			config, err := manager.LoadConfig(name)
			if config != nil {
				t.Fatalf("Expected no config for %q, got %s", name, config.Name)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if !errors.Is(err, engine.ErrConfiguration) {
				t.Errorf("Expected error to wrap ErrConfiguration, got %v", err)
			}
		})
	}

	if err := manager.SetDefault("../outside"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected SetDefault to reject escaping name, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("small"); err != nil {
				errs <- err
			}
			if _, err := manager.ListConfigs(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error: %v", err)
	}
}
