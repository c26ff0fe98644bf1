package engine

// GameState is the mutable world: items, agent, pursuers, score and terminal flags.
// It is owned by a single caller and mutated in place once per tick.
type GameState struct {
	grid  *Grid
	items map[Position]struct{}

	Agent     Position
	Pursuers  []Position
	Score     int
	StepCount int
	IsWin     bool
	IsLose    bool
	Config    RuleConfig
}

// Grid returns the immutable layout
func (gs *GameState) Grid() *Grid {
	return gs.grid
}

// Width returns the level width
func (gs *GameState) Width() int {
	return gs.grid.Width()
}

// Height returns the level height
func (gs *GameState) Height() int {
	return gs.grid.Height()
}

// IsTerminal reports whether the episode has ended
func (gs *GameState) IsTerminal() bool {
	return gs.IsWin || gs.IsLose
}

// LegalMoves returns the legal directions out of p
func (gs *GameState) LegalMoves(p Position) []Direction {
	return gs.grid.LegalMoves(p)
}

// Successors exposes the grid adjacency so the state can be searched directly
func (gs *GameState) Successors(p Position) []Successor {
	return gs.grid.Successors(p)
}

// HasItem reports whether an item remains at p
func (gs *GameState) HasItem(p Position) bool {
	_, ok := gs.items[p]
	return ok
}

// ItemCount returns the number of items left
func (gs *GameState) ItemCount() int {
	return len(gs.items)
}

// Items returns the remaining items in row-major order
func (gs *GameState) Items() []Position {
	return sortedPositions(gs.items)
}

// HasPursuerAt reports whether any pursuer occupies p
func (gs *GameState) HasPursuerAt(p Position) bool {
	for _, g := range gs.Pursuers {
		if g == p {
			return true
		}
	}
	return false
}

// Clone returns a detached copy. The grid is shared since it never changes.
func (gs *GameState) Clone() *GameState {
	items := make(map[Position]struct{}, len(gs.items))
	for p := range gs.items {
		items[p] = struct{}{}
	}
	pursuers := make([]Position, len(gs.Pursuers))
	copy(pursuers, gs.Pursuers)

	clone := *gs
	clone.items = items
	clone.Pursuers = pursuers
	return &clone
}
