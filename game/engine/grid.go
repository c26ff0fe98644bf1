package engine

import "sort"

// Grid is the immutable layout of a level: walls and dimensions. Items live on
// GameState because they are consumed during play.
type Grid struct {
	walls  map[Position]struct{}
	width  int
	height int
}

// NewGrid builds a grid, dropping walls outside [0,height)x[0,width)
func NewGrid(width, height int, walls []Position) *Grid {
	g := &Grid{
		walls:  make(map[Position]struct{}, len(walls)),
		width:  width,
		height: height,
	}
	for _, w := range walls {
		if g.InBounds(w) {
			g.walls[w] = struct{}{}
		}
	}
	return g
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// InBounds checks 0 <= row < height and 0 <= col < width
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// IsWall reports whether p is a wall cell
func (g *Grid) IsWall(p Position) bool {
	_, ok := g.walls[p]
	return ok
}

// IsOpen reports whether p is an in-bounds, non-wall cell
func (g *Grid) IsOpen(p Position) bool {
	return g.InBounds(p) && !g.IsWall(p)
}

// Walls returns the wall cells in row-major order
func (g *Grid) Walls() []Position {
	return sortedPositions(g.walls)
}

// LegalMoves returns the cardinal directions out of p whose destination is open,
// in the fixed order up, down, left, right. Stay is never included.
func (g *Grid) LegalMoves(p Position) []Direction {
	moves := make([]Direction, 0, len(CardinalDirections))
	for _, d := range CardinalDirections {
		if g.IsOpen(ApplyDirection(p, d)) {
			moves = append(moves, d)
		}
	}
	return moves
}

// IsLegal reports whether d is a legal move out of p
func (g *Grid) IsLegal(p Position, d Direction) bool {
	if d == Stay || !d.Valid() {
		return false
	}
	return g.IsOpen(ApplyDirection(p, d))
}

// Successors returns each legal move out of p with the cell it reaches
func (g *Grid) Successors(p Position) []Successor {
	out := make([]Successor, 0, len(CardinalDirections))
	for _, d := range CardinalDirections {
		next := ApplyDirection(p, d)
		if g.IsOpen(next) {
			out = append(out, Successor{Direction: d, Position: next})
		}
	}
	return out
}

// ApplyDirection returns p displaced by d. Unknown directions act as Stay.
func ApplyDirection(p Position, d Direction) Position {
	dl := directionDeltas[d]
	return Position{Row: p.Row + dl.dRow, Col: p.Col + dl.dCol}
}

func sortedPositions(set map[Position]struct{}) []Position {
	out := make([]Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
