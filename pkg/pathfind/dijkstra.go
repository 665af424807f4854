package pathfind

import "fmt"

// dijkstra expands the unvisited open cell of minimum distance. The linear
// scan keeps the first minimum it meets, so ties go to the lowest index.
func dijkstra(g *Grid, rec *recorder) bool {
	var buf []int
	for {
		cur, best := -1, Infinity
		for i := range g.cells {
			c := &g.cells[i]
			if c.Kind == Wall || c.Visited {
				continue
			}
			if c.Distance < best {
				cur, best = i, c.Distance
			}
		}
		if cur < 0 {
			return false
		}

		c := &g.cells[cur]
		c.Visited = true
		rec.visit(cur)
		if cur == g.end {
			rec.record(fmt.Sprintf("Reached end %v at distance %d", c.Position, c.Distance), cur, nil)
			return true
		}

		var frontier []int
		buf = g.neighbors(cur, buf)
		for _, n := range buf {
			nc := &g.cells[n]
			if nc.Visited {
				continue
			}
			if d := c.Distance + 1; d < nc.Distance {
				nc.Distance = d
				nc.Prev = cur
				frontier = append(frontier, n)
			}
		}
		rec.record(fmt.Sprintf("Visiting %v at distance %d", c.Position, c.Distance), cur, frontier)
	}
}
