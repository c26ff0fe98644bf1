// Package mcp exposes the pursuit game to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the api package, and the JSON reply is rendered as plain text for the model.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state, describe_cell
//   - move: one tick, with an intent explanation
//   - auto_step: let a search algorithm play N ticks
//   - plan_path: preview the policy's target and path
//   - reset_game, move_history
//   - list_configs, list_algorithms, game_instructions
//
// Transport Modes:
//
//	// Stdio
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP, mounted by the serve command at /mcp
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
