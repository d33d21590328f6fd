package blast

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// PointsPerCell is the score awarded per cell of every cleared line.
const PointsPerCell = 10

// ClearResult describes one clearing pass.
type ClearResult struct {
	Rows  []int // Full rows, ascending
	Cols  []int // Full columns, ascending
	Cells []int // Distinct cleared cell indices, ascending
	Delta int   // Score awarded
}

// Lines returns the number of full rows plus full columns.
func (r ClearResult) Lines() int {
	return len(r.Rows) + len(r.Cols)
}

// Empty reports whether nothing was cleared.
func (r ClearResult) Empty() bool {
	return r.Lines() == 0
}

// LineScore is the score for clearing lines on a grid of the given size.
// Each line counts in full, so a cell shared by a full row and a full
// column contributes twice.
func LineScore(lines, size int) int {
	return lines * size * PointsPerCell
}

// ClearLines finds every full row and column, empties their cells and
// returns what was cleared. Rows and columns are detected on the same
// snapshot before anything is removed, so a cross of a full row and a full
// column clears both. With no full line the board is not touched.
func ClearLines(b *Board) ClearResult {
	var res ClearResult
	for r := range b.size {
		if b.RowFull(r) {
			res.Rows = append(res.Rows, r)
		}
	}
	for c := range b.size {
		if b.ColFull(c) {
			res.Cols = append(res.Cols, c)
		}
	}
	if res.Empty() {
		return res
	}

	seen := intmap.New[int, struct{}](res.Lines() * b.size)
	collect := func(idx int) {
		if _, ok := seen.Get(idx); ok {
			return
		}
		seen.Put(idx, struct{}{})
		res.Cells = append(res.Cells, idx)
	}
	for _, r := range res.Rows {
		for c := range b.size {
			collect(b.Index(r, c))
		}
	}
	for _, c := range res.Cols {
		for r := range b.size {
			collect(b.Index(r, c))
		}
	}
	slices.Sort(res.Cells)

	for _, idx := range res.Cells {
		b.Clear(idx)
	}
	res.Delta = LineScore(res.Lines(), b.size)
	return res
}
