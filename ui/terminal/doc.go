// Package terminal is a tcell front end for playing a level locally.
//
// The board is drawn with the level template characters, coloured by cell kind.
// Arrow keys, wasd or hjkl move the agent; p toggles auto play, where the search
// policy picks a move on every tick of the configured interval.
package terminal
