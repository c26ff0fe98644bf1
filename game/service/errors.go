package service

import "errors"

// Lookup failures shared by the session and config managers. Transports map them to
// 404; anything wrapping engine.ErrConfiguration maps to 400.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)
