package pathfind

import "fmt"

// bfs marks cells discovered when they are enqueued so each cell enters
// the queue once.
func bfs(g *Grid, rec *recorder) bool {
	discovered := make([]bool, len(g.cells))
	queue := []int{g.start}
	discovered[g.start] = true

	var buf []int
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		c := &g.cells[cur]
		c.Visited = true
		rec.visit(cur)
		if cur == g.end {
			rec.record(fmt.Sprintf("Dequeued end %v at depth %d", c.Position, c.Distance), cur, nil)
			return true
		}

		var frontier []int
		buf = g.neighbors(cur, buf)
		for _, n := range buf {
			if discovered[n] {
				continue
			}
			discovered[n] = true
			g.cells[n].Distance = c.Distance + 1
			g.cells[n].Prev = cur
			queue = append(queue, n)
			frontier = append(frontier, n)
		}
		rec.record(fmt.Sprintf("Dequeued %v at depth %d, %d queued", c.Position, c.Distance, len(queue)-head-1), cur, frontier)
	}
	return false
}
