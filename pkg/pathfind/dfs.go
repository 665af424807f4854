package pathfind

import "fmt"

type frame struct {
	cell, parent int
}

// dfs pops a stack of (cell, parent) frames. Neighbours are pushed in
// reverse so the first neighbour in up, down, left, right order is explored
// first. Stale frames of already visited cells are skipped.
func dfs(g *Grid, rec *recorder) bool {
	stack := []frame{{cell: g.start, parent: -1}}

	var buf []int
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := &g.cells[f.cell]
		if c.Visited {
			continue
		}
		c.Visited = true
		c.Prev = f.parent
		if f.parent >= 0 {
			c.Distance = g.cells[f.parent].Distance + 1
		}
		rec.visit(f.cell)
		if f.cell == g.end {
			rec.record(fmt.Sprintf("Reached end %v at depth %d", c.Position, c.Distance), f.cell, nil)
			return true
		}

		var frontier []int
		buf = g.neighbors(f.cell, buf)
		for _, n := range buf {
			if !g.cells[n].Visited {
				frontier = append(frontier, n)
			}
		}
		for k := len(frontier) - 1; k >= 0; k-- {
			stack = append(stack, frame{cell: frontier[k], parent: f.cell})
		}
		rec.record(fmt.Sprintf("Exploring %v at depth %d, stack size %d", c.Position, c.Distance, len(stack)), f.cell, frontier)
	}
	return false
}
