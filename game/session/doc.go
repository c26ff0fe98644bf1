// Package session provides in-memory session management for the pursuit game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short session IDs derived from random UUIDs
//   - Session lifecycle management and expiry
//
// Each session owns its own engine.GameEngine, so sessions never share world
// state. Nothing is written to disk: sessions end with the process.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session (IDs are case-insensitive)
//	sess, err = manager.Get(sessionID)
package session
