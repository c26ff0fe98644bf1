// Package service provides the business logic layer for the pursuit game.
//
// The service package implements:
//   - Multi-session game management
//   - Level configuration loading
//   - Manual ticks and policy-driven auto play
//   - Path planning previews
//   - Move history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages level configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP and the
// terminal UI) and the game engine. Each session owns its own engine and a
// default search algorithm for auto play.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
//		ConfigID:  "default",
//		Algorithm: "astar",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "right", false)
//	auto, err := gameService.Auto(ctx, info.ID, "", 10)
//
// Errors:
//
// Unknown sessions and levels wrap ErrSessionNotFound and ErrConfigNotFound.
// Bad directions, algorithms and step budgets wrap engine.ErrConfiguration.
package service
