// Package config loads level configurations for the pursuit game.
//
// Level configurations are JSON files in a config directory:
//
//	{
//	  "name": "Corridor",
//	  "description": "One row, one pursuer",
//	  "layout": ["#######", "#P...G#", "#######"],
//	  "max_steps": 50,
//	  "pursuer_aggressiveness": 0.7
//	}
//
// The layout uses the level template characters: '#' wall, '.' item, 'P' agent
// start, 'G' pursuer start. The file name without ".json" is the config ID used
// when creating sessions. The bundled maze is always available as "default".
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("corridor")
//	configs, err := manager.ListConfigs()
//
// Every file is validated with engine.ValidateGameConfig before it is cached.
package config
