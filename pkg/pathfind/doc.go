// Package pathfind runs shortest path searches over a rectangular occupancy
// grid and records every decision as a replayable step log.
//
// The grid is a flat row-major arena of cells. Exactly one cell is the start
// and one is the end; walls block movement and every other cell costs 1 to
// enter. Movement is 4-directional and neighbours are always visited in the
// order up, down, left, right.
//
// Four searches are available:
//
//   - Dijkstra selects the unvisited cell of smallest distance by linear scan,
//     preferring the lowest row-major index on ties.
//   - A* orders its open set by f = g + h with the Manhattan heuristic.
//   - BFS expands a FIFO queue and marks cells when they are enqueued.
//   - DFS expands a LIFO stack; its path is valid but not necessarily shortest.
//
// A run mutates the grid's per-cell search state in place, so a Grid must not
// be searched by two goroutines at once. Compare clones the grid for each
// algorithm and runs them concurrently.
//
//	g, _ := pathfind.ParseGrid([]string{
//		"S..#....",
//		".#.#.##.",
//		".#...#.E",
//	})
//	res, _ := pathfind.Run(pathfind.AStar, g)
//	fmt.Println(res.Success, res.PathLength, len(res.Steps))
//
// Replaying res.Steps in order reproduces the whole search. Result.Digest
// hashes the log so two runs can be checked for identical behaviour.
package pathfind
