package blast

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// DefaultGridSize is the side of the classic board.
const DefaultGridSize = 10

// ErrOutOfBounds is returned when a cell index or coordinate lies outside the grid.
var ErrOutOfBounds = errors.New("blast: cell out of bounds")

// Cell is one board position. Color is meaningful only when Filled is true.
type Cell struct {
	Filled bool       `json:"filled"`
	Color  core.Color `json:"color,omitempty"`
}

// Board is a square grid of cells stored in row-major order: index = row*size + col.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		size = DefaultGridSize
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns the side length of the grid.
func (b *Board) Size() int {
	return b.size
}

// Len returns the number of cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// Index converts (row, col) to a cell index. The result is only meaningful
// when InBounds(row, col) holds.
func (b *Board) Index(row, col int) int {
	return row*b.size + col
}

// RowCol converts a cell index to (row, col).
func (b *Board) RowCol(idx int) (row, col int) {
	return idx / b.size, idx % b.size
}

// InBounds reports whether (row, col) lies on the grid.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// ValidIndex reports whether idx addresses a cell.
func (b *Board) ValidIndex(idx int) bool {
	return idx >= 0 && idx < len(b.cells)
}

func (b *Board) outOfBounds(idx int) error {
	return fmt.Errorf("%w: index %d (grid %dx%d)", ErrOutOfBounds, idx, b.size, b.size)
}

// IsOccupied reports whether the cell holds a block.
func (b *Board) IsOccupied(idx int) (bool, error) {
	if !b.ValidIndex(idx) {
		return false, b.outOfBounds(idx)
	}
	return b.cells[idx].Filled, nil
}

// IsOccupiedAt is IsOccupied addressed by coordinates.
func (b *Board) IsOccupiedAt(row, col int) (bool, error) {
	if !b.InBounds(row, col) {
		return false, fmt.Errorf("%w: (%d,%d) (grid %dx%d)", ErrOutOfBounds, row, col, b.size, b.size)
	}
	return b.cells[b.Index(row, col)].Filled, nil
}

// Cell returns the cell at idx.
func (b *Board) Cell(idx int) (Cell, error) {
	if !b.ValidIndex(idx) {
		return Cell{}, b.outOfBounds(idx)
	}
	return b.cells[idx], nil
}

// filled is the unchecked fast path used by the scanners in this package.
func (b *Board) filled(row, col int) bool {
	return b.cells[row*b.size+col].Filled
}

// Occupy fills a cell with a color. No validation: placing is the committer's job.
// Out-of-range indices are ignored.
func (b *Board) Occupy(idx int, color core.Color) {
	if b.ValidIndex(idx) {
		b.cells[idx] = Cell{Filled: true, Color: color}
	}
}

// Clear empties a cell and discards its color.
func (b *Board) Clear(idx int) {
	if b.ValidIndex(idx) {
		b.cells[idx] = Cell{}
	}
}

// Reset empties every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

// RowFull reports whether every cell of row r is occupied.
func (b *Board) RowFull(r int) bool {
	if r < 0 || r >= b.size {
		return false
	}
	for c := range b.size {
		if !b.filled(r, c) {
			return false
		}
	}
	return true
}

// ColFull reports whether every cell of column c is occupied.
func (b *Board) ColFull(c int) bool {
	if c < 0 || c >= b.size {
		return false
	}
	for r := range b.size {
		if !b.filled(r, c) {
			return false
		}
	}
	return true
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Cells returns a copy of the cells in row-major order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: b.Cells()}
}

// Equal reports whether two boards have the same size and identical cells.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}
