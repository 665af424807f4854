package pathfind

import "fmt"

// astar orders the open set by f = g + h, breaking ties on the smaller
// heuristic and then on insertion order. The Manhattan heuristic is
// consistent on a unit cost 4-connected grid, so closed cells are final.
func astar(g *Grid, rec *recorder) bool {
	goal := g.End()
	inOpen := make([]bool, len(g.cells))

	s := &g.cells[g.start]
	s.Heuristic = s.Manhattan(goal)
	s.Score = s.Distance + s.Heuristic
	open := []int{g.start}
	inOpen[g.start] = true

	var buf []int
	for len(open) > 0 {
		bi := 0
		for k := 1; k < len(open); k++ {
			a, b := &g.cells[open[k]], &g.cells[open[bi]]
			if a.Score < b.Score || (a.Score == b.Score && a.Heuristic < b.Heuristic) {
				bi = k
			}
		}
		cur := open[bi]
		open = append(open[:bi], open[bi+1:]...)
		inOpen[cur] = false

		c := &g.cells[cur]
		c.Visited = true
		rec.visit(cur)
		if cur == g.end {
			rec.record(fmt.Sprintf("Reached end %v with g=%d", c.Position, c.Distance), cur, nil)
			return true
		}

		var frontier []int
		buf = g.neighbors(cur, buf)
		for _, n := range buf {
			nc := &g.cells[n]
			if nc.Visited {
				continue
			}
			tentative := c.Distance + 1
			switch {
			case !inOpen[n]:
				nc.Heuristic = nc.Manhattan(goal)
				open = append(open, n)
				inOpen[n] = true
			case tentative >= nc.Distance:
				continue
			}
			nc.Distance = tentative
			nc.Score = tentative + nc.Heuristic
			nc.Prev = cur
			frontier = append(frontier, n)
		}
		rec.record(fmt.Sprintf("Expanding %v with g=%d h=%d f=%d", c.Position, c.Distance, c.Heuristic, c.Score), cur, frontier)
	}
	return false
}
