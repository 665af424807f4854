package pathfind

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
)

// offsets lists neighbour directions as (dRow, dCol): up, down, left, right.
var offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is a rows x cols arena of cells with one start and one end.
type Grid struct {
	rows, cols int
	cells      []Cell
	start, end int
}

// NewGrid creates an empty grid. The start is placed a quarter of the way
// across the middle row and the end three quarters of the way.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 || rows*cols < 2 {
		return nil, ErrEmptyGrid
	}

	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
	for i := range g.cells {
		g.cells[i].Position = g.position(i)
	}

	start := g.index(Position{rows / 2, cols / 4})
	end := g.index(Position{rows / 2, cols * 3 / 4})
	if start == end {
		start, end = 0, len(g.cells)-1
	}
	g.start, g.end = start, end
	g.cells[start].Kind = Start
	g.cells[end].Kind = End
	g.Reset()
	return g, nil
}

// ParseGrid builds a grid from text rows using '.' for empty cells, '#' for
// walls, 'S' for the start and 'E' for the end.
func ParseGrid(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyGrid
	}
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(strings.TrimRight(line, "\r"))
		if len(rows[i]) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, i, len(rows[i]), len(rows[0]))
		}
	}
	if len(rows[0]) == 0 || len(rows)*len(rows[0]) < 2 {
		return nil, ErrEmptyGrid
	}

	g := &Grid{rows: len(rows), cols: len(rows[0]), cells: make([]Cell, len(rows)*len(rows[0])), start: -1, end: -1}
	for r, row := range rows {
		for c, ch := range row {
			i := r*g.cols + c
			g.cells[i].Position = Position{r, c}
			switch ch {
			case '.', ' ':
				g.cells[i].Kind = Empty
			case '#':
				g.cells[i].Kind = Wall
			case 'S', 's':
				if g.start >= 0 {
					return nil, fmt.Errorf("%w: second start at %v", ErrMissingEndpoint, Position{r, c})
				}
				g.start = i
				g.cells[i].Kind = Start
			case 'E', 'e':
				if g.end >= 0 {
					return nil, fmt.Errorf("%w: second end at %v", ErrMissingEndpoint, Position{r, c})
				}
				g.end = i
				g.cells[i].Kind = End
			default:
				return nil, fmt.Errorf("%w: %q at %v", ErrInvalidCell, ch, Position{r, c})
			}
		}
	}
	if g.start < 0 || g.end < 0 {
		return nil, ErrMissingEndpoint
	}
	g.Reset()
	return g, nil
}

// ReadGrid parses a grid from r. Blank lines are skipped; other lines are
// kept whole so that leading or trailing ' ' cells survive.
func ReadGrid(r io.Reader) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParseGrid(lines)
}

// String renders the durable cell kinds, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for i := range g.cells {
		if i > 0 && i%g.cols == 0 {
			b.WriteByte('\n')
		}
		b.WriteRune(g.cells[i].Kind.Rune())
	}
	return b.String()
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Start returns the start position.
func (g *Grid) Start() Position { return g.cells[g.start].Position }

// End returns the end position.
func (g *Grid) End() Position { return g.cells[g.end].Position }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Cell returns a copy of the cell at p including its search state.
func (g *Grid) Cell(p Position) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	return g.cells[g.index(p)], true
}

// Walls counts wall cells.
func (g *Grid) Walls() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Kind == Wall {
			n++
		}
	}
	return n
}

// SetStart moves the start to p.
func (g *Grid) SetStart(p Position) error {
	return g.SetEndpoints(p, g.End())
}

// SetEnd moves the end to p.
func (g *Grid) SetEnd(p Position) error {
	return g.SetEndpoints(g.Start(), p)
}

// SetEndpoints moves start and end together, which also allows swapping them.
// Both must be in bounds, distinct and not walls.
func (g *Grid) SetEndpoints(start, end Position) error {
	for _, p := range []Position{start, end} {
		if !g.InBounds(p) {
			return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
		}
		if g.cells[g.index(p)].Kind == Wall {
			return fmt.Errorf("%w: wall at %v", ErrOccupied, p)
		}
	}
	if start == end {
		return fmt.Errorf("%w: start and end both at %v", ErrOccupied, start)
	}

	g.cells[g.start].Kind = Empty
	g.cells[g.end].Kind = Empty
	g.start, g.end = g.index(start), g.index(end)
	g.cells[g.start].Kind = Start
	g.cells[g.end].Kind = End
	return nil
}

// SetWall places or removes a wall at p. The start and end cannot become walls.
func (g *Grid) SetWall(p Position, wall bool) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	i := g.index(p)
	if i == g.start || i == g.end {
		return fmt.Errorf("%w: endpoint at %v", ErrOccupied, p)
	}
	if wall {
		g.cells[i].Kind = Wall
	} else {
		g.cells[i].Kind = Empty
	}
	return nil
}

// ToggleWall flips the wall state of p and returns the new state.
func (g *Grid) ToggleWall(p Position) (bool, error) {
	cell, ok := g.Cell(p)
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	wall := cell.Kind != Wall
	return wall, g.SetWall(p, wall)
}

// ClearWalls turns every wall into an empty cell.
func (g *Grid) ClearWalls() {
	for i := range g.cells {
		if g.cells[i].Kind == Wall {
			g.cells[i].Kind = Empty
		}
	}
}

// Scatter replaces the walls with random ones, each non-endpoint cell
// becoming a wall with probability density. It returns the wall count.
func (g *Grid) Scatter(density float64, rng *rand.Rand) int {
	placed := 0
	for i := range g.cells {
		if i == g.start || i == g.end {
			continue
		}
		if rng.Float64() < density {
			g.cells[i].Kind = Wall
			placed++
		} else {
			g.cells[i].Kind = Empty
		}
	}
	return placed
}

// Reset clears the search state of every cell. The start gets distance 0.
func (g *Grid) Reset() {
	for i := range g.cells {
		c := &g.cells[i]
		c.Distance = Infinity
		c.Heuristic = 0
		c.Score = Infinity
		c.Prev = -1
		c.Visited = false
	}
	g.cells[g.start].Distance = 0
	g.cells[g.start].Score = 0
}

// Clone returns an independent copy of the grid and its search state.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells, start: g.start, end: g.end}
}

// Paint overlays a step on the durable kinds for rendering. Start and end
// always keep their own kind.
func (g *Grid) Paint(step Step) []CellKind {
	kinds := make([]CellKind, len(g.cells))
	for i := range g.cells {
		kinds[i] = g.cells[i].Kind
	}
	paint := func(ps []Position, k CellKind) {
		for _, p := range ps {
			if !g.InBounds(p) {
				continue
			}
			i := g.index(p)
			if i != g.start && i != g.end {
				kinds[i] = k
			}
		}
	}
	paint(step.Visited, Visited)
	paint(step.Frontier, Frontier)
	if step.Current != nil {
		paint([]Position{*step.Current}, Current)
	}
	paint(step.Path, Path)
	return kinds
}

func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

func (g *Grid) position(i int) Position {
	return Position{Row: i / g.cols, Col: i % g.cols}
}

// neighbors appends the open neighbours of cell i to buf in the order
// up, down, left, right.
func (g *Grid) neighbors(i int, buf []int) []int {
	buf = buf[:0]
	p := g.position(i)
	for _, off := range offsets {
		q := Position{p.Row + off[0], p.Col + off[1]}
		if !g.InBounds(q) {
			continue
		}
		j := g.index(q)
		if g.cells[j].Kind == Wall {
			continue
		}
		buf = append(buf, j)
	}
	return buf
}

// pathTo walks predecessors back from i and returns the path from the start.
func (g *Grid) pathTo(i int) []Position {
	var path []Position
	for at := i; at != -1; at = g.cells[at].Prev {
		path = append(path, g.cells[at].Position)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
