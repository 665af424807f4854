package pathfind

// recorder accumulates the step log of one run.
type recorder struct {
	g         *Grid
	steps     []Step
	visited   []Position
	snapshots bool
}

func newRecorder(g *Grid, snapshots bool) *recorder {
	return &recorder{g: g, snapshots: snapshots}
}

// visit marks cell i as processed.
func (r *recorder) visit(i int) {
	r.visited = append(r.visited, r.g.cells[i].Position)
}

// record appends a step. current is -1 when no cell is being processed.
func (r *recorder) record(desc string, current int, frontier []int) {
	step := Step{
		Description: desc,
		Visited:     append([]Position(nil), r.visited...),
	}
	if current >= 0 {
		p := r.g.cells[current].Position
		step.Current = &p
	}
	if len(frontier) > 0 {
		step.Frontier = make([]Position, len(frontier))
		for k, i := range frontier {
			step.Frontier[k] = r.g.cells[i].Position
		}
	}
	if r.snapshots {
		step.Distances = r.distances()
	}
	r.steps = append(r.steps, step)
}

// finish appends the terminal step carrying path, which may be nil.
func (r *recorder) finish(desc string, path []Position) {
	r.record(desc, -1, nil)
	r.steps[len(r.steps)-1].Path = path
}

func (r *recorder) distances() []int {
	d := make([]int, len(r.g.cells))
	for i := range r.g.cells {
		d[i] = r.g.cells[i].Distance
	}
	return d
}
