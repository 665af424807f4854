package pathfind

import (
	"fmt"
	"math"
	"time"
)

// Infinity is the distance of a cell no search has reached.
const Infinity = math.MaxInt32

// Position addresses a cell by row and column.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Manhattan returns |dr| + |dc| between p and q.
func (p Position) Manhattan(q Position) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CellKind classifies a cell. Empty, Wall, Start and End are stored on the
// grid; the remaining kinds only exist in a Paint of a step.
type CellKind uint8

const (
	Empty CellKind = iota
	Wall
	Start
	End
	Visited
	Frontier
	Current
	Path
)

var kindNames = [...]string{"empty", "wall", "start", "end", "visited", "frontier", "current", "path"}

// kindRunes are the characters used by Grid.String and ParseGrid,
// plus the transient kinds for rendering.
var kindRunes = [...]rune{'.', '#', 'S', 'E', 'v', 'f', '@', '*'}

func (k CellKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("CellKind(%d)", k)
}

// Rune returns the single character form of k.
func (k CellKind) Rune() rune {
	if int(k) < len(kindRunes) {
		return kindRunes[k]
	}
	return '?'
}

// Cell holds a grid cell and the search state of the current run.
// Prev is the flat index of the predecessor, or -1.
type Cell struct {
	Position
	Kind      CellKind
	Distance  int
	Heuristic int
	Score     int
	Prev      int
	Visited   bool
}

// Step is one entry of the replay log.
type Step struct {
	Description string
	// Current is the cell processed in this step, nil for the first and the
	// last step.
	Current *Position
	// Visited is every cell processed so far, in processing order.
	Visited []Position
	// Frontier lists the cells discovered or improved in this step.
	Frontier []Position
	// Path is set only on the final step of a successful search.
	Path []Position
	// Distances is a row-major snapshot of tentative distances, Infinity
	// for unreached cells. It is nil when snapshots are disabled.
	Distances []int
}

// Result is the outcome of one search.
type Result struct {
	Algorithm     Algorithm
	Steps         []Step
	Path          []Position
	PathLength    int
	CellsExplored int
	Success       bool
	Duration      time.Duration
	// Efficiency is PathLength / CellsExplored, 0 when there is no path.
	Efficiency float64
}
