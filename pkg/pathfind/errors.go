package pathfind

import "errors"

var (
	// ErrEmptyGrid indicates a grid without rows or columns, or too small to
	// hold distinct start and end cells.
	ErrEmptyGrid = errors.New("pathfind: grid must have at least two cells")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("pathfind: all rows must have the same length")
	// ErrOutOfBounds indicates a position outside the grid.
	ErrOutOfBounds = errors.New("pathfind: position out of bounds")
	// ErrOccupied indicates a placement onto the start, the end or a wall.
	ErrOccupied = errors.New("pathfind: cell is occupied")
	// ErrInvalidCell indicates an unknown character in a textual grid.
	ErrInvalidCell = errors.New("pathfind: invalid cell character")
	// ErrMissingEndpoint indicates a textual grid without exactly one start and one end.
	ErrMissingEndpoint = errors.New("pathfind: grid needs exactly one start and one end")
	// ErrUnknownAlgorithm indicates an unsupported algorithm name.
	ErrUnknownAlgorithm = errors.New("pathfind: unknown algorithm")
)
