package blast

import "github.com/vovakirdan/tui-blast/internal/core"

// Footprint computes the absolute cells shape s would fill when dropped on
// anchor. The shape is aligned so its top-most row and left-most column of
// occupied sub-cells land on the anchor's row and column. ok is false when
// any target cell is off the grid or already occupied, when the anchor is
// not a cell, or when the shape is empty. The board is never modified.
func Footprint(b *Board, s Shape, anchor int) (cells []int, ok bool) {
	if !b.ValidIndex(anchor) || s.Empty() {
		return nil, false
	}

	anchorRow, anchorCol := b.RowCol(anchor)
	top, left := s.Offset()
	baseRow := anchorRow - top
	baseCol := anchorCol - left

	cells = make([]int, 0, s.Area())
	for r := range ShapeSize {
		for c := range ShapeSize {
			if !s.Cells[r][c] {
				continue
			}
			row, col := baseRow+r, baseCol+c
			if !b.InBounds(row, col) {
				return nil, false
			}
			if b.filled(row, col) {
				return nil, false
			}
			cells = append(cells, b.Index(row, col))
		}
	}
	return cells, true
}

// CanPlace is the check-only validator.
func CanPlace(b *Board, s Shape, anchor int) bool {
	_, ok := Footprint(b, s, anchor)
	return ok
}

// Commit validates and, only if every target cell passes, fills all of them
// with color. It returns the filled indices in row-major order. A rejected
// commit leaves the board untouched.
func Commit(b *Board, s Shape, anchor int, color core.Color) ([]int, bool) {
	cells, ok := Footprint(b, s, anchor)
	if !ok {
		return nil, false
	}
	for _, idx := range cells {
		b.Occupy(idx, color)
	}
	return cells, true
}
