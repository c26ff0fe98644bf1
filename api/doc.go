// Package api provides the HTTP REST API for the pursuit game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session {config_id, algorithm, max_steps}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session with its snapshot and frame
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Snapshot, ASCII frame and status
//   - POST /api/sessions/{id}/move - One tick {direction, reset}
//   - POST /api/sessions/{id}/auto - Let the policy play {ticks, algorithm}
//   - GET /api/sessions/{id}/plan - Preview the next decision (?algorithm=)
//   - POST /api/sessions/{id}/reset - Restore the initial state
//   - GET /api/sessions/{id}/history - Paginated moves (?page=&limit=&order=)
//
// Configuration:
//   - GET /api/configs - List levels
//   - POST /api/configs - Save a level
//   - GET /api/configs/{name} - Get one level
//   - GET /api/algorithms - List search algorithms
//
// Every state change is pushed to /ws?session=<id> watchers through the
// websocket hub.
//
// Error Handling:
//
// Errors are returned as JSON {"error": "..."}. Unknown sessions and levels are
// 404, bad directions, algorithms and layouts are 400, anything else is 500.
package api
