package pathfind

import (
	"fmt"
	"strings"
	"time"
)

// Algorithm names a search strategy.
type Algorithm string

const (
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "astar"
	BFS      Algorithm = "bfs"
	DFS      Algorithm = "dfs"
)

var searches = map[Algorithm]func(*Grid, *recorder) bool{
	Dijkstra: dijkstra,
	AStar:    astar,
	BFS:      bfs,
	DFS:      dfs,
}

var titles = map[Algorithm]string{
	Dijkstra: "Dijkstra",
	AStar:    "A*",
	BFS:      "BFS",
	DFS:      "DFS",
}

// Algorithms lists every supported algorithm in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{Dijkstra, AStar, BFS, DFS}
}

// Title returns the display name of a.
func (a Algorithm) Title() string {
	if t, ok := titles[a]; ok {
		return t
	}
	return string(a)
}

// ParseAlgorithm accepts an algorithm name case-insensitively. "a*" and
// "a-star" are aliases of AStar.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "a*", "a-star", "a_star":
		return AStar, nil
	default:
		if _, ok := searches[Algorithm(n)]; ok {
			return Algorithm(n), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

type options struct {
	snapshots bool
}

// Option tunes a run.
type Option func(*options)

// WithoutDistances drops the per-step distance snapshots, which dominate the
// memory of a step log on large grids.
func WithoutDistances() Option {
	return func(o *options) { o.snapshots = false }
}

// Run searches g from its start to its end with algorithm a. A missing path
// is reported through Result.Success, never as an error. The grid's search
// state is reset first and left holding this run's state.
func Run(a Algorithm, g *Grid, opts ...Option) (Result, error) {
	search, ok := searches[a]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
	}
	o := options{snapshots: true}
	for _, opt := range opts {
		opt(&o)
	}

	began := time.Now()
	g.Reset()
	rec := newRecorder(g, o.snapshots)
	rec.record(fmt.Sprintf("Starting %s from %v to %v", a.Title(), g.Start(), g.End()), -1, []int{g.start})

	res := Result{Algorithm: a}
	res.Success = search(g, rec)
	res.CellsExplored = len(rec.visited)

	if res.Success {
		res.Path = g.pathTo(g.end)
		res.PathLength = len(res.Path) - 1
		rec.finish(fmt.Sprintf("Path found: %d moves, %d cells explored", res.PathLength, res.CellsExplored), res.Path)
		if res.CellsExplored > 0 {
			res.Efficiency = float64(res.PathLength) / float64(res.CellsExplored)
		}
	} else {
		rec.finish(fmt.Sprintf("No path to %v: %d cells explored", g.End(), res.CellsExplored), nil)
	}

	res.Steps = rec.steps
	res.Duration = time.Since(began)
	return res, nil
}

// RunFrom places the endpoints and then runs a. Its error covers only an
// unknown algorithm or invalid endpoints.
func RunFrom(a Algorithm, g *Grid, start, end Position, opts ...Option) (Result, error) {
	if _, ok := searches[a]; !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
	}
	if err := g.SetEndpoints(start, end); err != nil {
		return Result{}, err
	}
	return Run(a, g, opts...)
}
