// Package websocket pushes live game frames to browser and terminal watchers.
//
// A central Hub owns every connection. Clients join a session with
// /ws?session=<id> and receive one JSON Message per state change:
//
//	{"session_id": "3f2a9c1b", "event": "state_update", "snapshot": {...}, "frame": "#####\n#P..#..."}
//
// The event is "game_over" when the snapshot is terminal, with the outcome in
// data. The hub's client map is only touched by Run, so broadcasts are safe from
// any goroutine.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.BroadcastToSession(sessionID, snapshot)
package websocket
