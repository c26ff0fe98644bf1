package search

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/pursuitgame/game/engine"
)

// ErrUnknownAlgorithm is returned for algorithm names outside the registry
var ErrUnknownAlgorithm = fmt.Errorf("%w: unknown algorithm", engine.ErrConfiguration)

// Algorithm names a search strategy
type Algorithm string

const (
	BFS         Algorithm = "bfs"
	DFS         Algorithm = "dfs"
	UCS         Algorithm = "ucs"
	AStarSearch Algorithm = "astar"
	Greedy      Algorithm = "greedy"
)

// DefaultAlgorithm is used when a caller does not pick one
const DefaultAlgorithm = AStarSearch

// Solver is the signature every strategy shares
type Solver func(g Graph, start, target engine.Position) Result

type registration struct {
	name        Algorithm
	description string
	solve       Solver
}

var registry = [...]registration{
	{BFS, "Breadth-first search, shortest path in moves", BreadthFirst},
	{DFS, "Depth-first search, any path", DepthFirst},
	{UCS, "Uniform-cost search, shortest path", UniformCost},
	{AStarSearch, "A* with Manhattan heuristic, shortest path", AStar},
	{Greedy, "Greedy best-first on Manhattan distance, any path", GreedyBestFirst},
}

// Info describes a registered algorithm
type Info struct {
	Name        Algorithm `json:"name"`
	Description string    `json:"description"`
	Optimal     bool      `json:"optimal"`
}

// Algorithms returns every registered algorithm in a stable order
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(registry))
	for i, r := range registry {
		out[i] = r.name
	}
	return out
}

// Describe returns the registry entries with descriptions
func Describe() []Info {
	out := make([]Info, len(registry))
	for i, r := range registry {
		out[i] = Info{Name: r.name, Description: r.description, Optimal: r.name.Optimal()}
	}
	return out
}

// Optimal reports whether the algorithm always returns a shortest path
func (a Algorithm) Optimal() bool {
	return a == BFS || a == UCS || a == AStarSearch
}

// ParseAlgorithm resolves a case-insensitive name. An empty name is the default.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultAlgorithm, nil
	}
	for _, r := range registry {
		if string(r.name) == name {
			return r.name, nil
		}
	}
	return "", fmt.Errorf("%w '%s'", ErrUnknownAlgorithm, name)
}

// Lookup returns the solver for a registered algorithm
func Lookup(a Algorithm) (Solver, error) {
	for _, r := range registry {
		if r.name == a {
			return r.solve, nil
		}
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownAlgorithm, a)
}

// Solve runs the named algorithm from start to target
func Solve(a Algorithm, g Graph, start, target engine.Position) (Result, error) {
	solve, err := Lookup(a)
	if err != nil {
		return Result{}, err
	}
	return solve(g, start, target), nil
}
