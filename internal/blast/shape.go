// Package blast implements the placement-and-clearing engine of the block
// puzzle: shapes, the board, placement validation, line clearing, the
// game-over oracle and the single-level undo. It has no UI dependencies.
package blast

import (
	"fmt"
	"strings"
)

// ShapeSize is the side of the square frame every shape is drawn in.
const ShapeSize = 3

// Shape is an immutable 3x3 occupancy matrix. Shapes are passed by value so a
// caller can never mutate a catalog entry.
type Shape struct {
	Name  string
	Cells [ShapeSize][ShapeSize]bool
}

// Occupied reports whether sub-cell (r, c) of the frame is filled.
// Coordinates outside the frame are never occupied.
func (s Shape) Occupied(r, c int) bool {
	if r < 0 || r >= ShapeSize || c < 0 || c >= ShapeSize {
		return false
	}
	return s.Cells[r][c]
}

// Offset returns the bounding offset: the minimum occupied row and column.
// An empty shape yields (ShapeSize, ShapeSize).
func (s Shape) Offset() (top, left int) {
	top, left = ShapeSize, ShapeSize
	for r := range ShapeSize {
		for c := range ShapeSize {
			if !s.Cells[r][c] {
				continue
			}
			if r < top {
				top = r
			}
			if c < left {
				left = c
			}
		}
	}
	return top, left
}

// Bounds returns the height and width of the occupied bounding box.
func (s Shape) Bounds() (h, w int) {
	top, left := s.Offset()
	if s.Empty() {
		return 0, 0
	}
	bottom, right := top, left
	for r := range ShapeSize {
		for c := range ShapeSize {
			if s.Cells[r][c] {
				bottom = max(bottom, r)
				right = max(right, c)
			}
		}
	}
	return bottom - top + 1, right - left + 1
}

// Area returns the number of occupied sub-cells.
func (s Shape) Area() int {
	n := 0
	for r := range ShapeSize {
		for c := range ShapeSize {
			if s.Cells[r][c] {
				n++
			}
		}
	}
	return n
}

// Empty reports whether the shape has no occupied sub-cell.
func (s Shape) Empty() bool {
	return s.Area() == 0
}

// Rows renders the frame as '#'/'.' rows, the same notation ParseShape accepts.
func (s Shape) Rows() []string {
	rows := make([]string, ShapeSize)
	for r := range ShapeSize {
		var sb strings.Builder
		for c := range ShapeSize {
			if s.Cells[r][c] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// String returns the name followed by the frame rows.
func (s Shape) String() string {
	return fmt.Sprintf("%s[%s]", s.Name, strings.Join(s.Rows(), "/"))
}

// ParseShape builds a shape from up to three rows of '#' (filled) and '.' or
// ' ' (empty). Missing rows and trailing columns are empty.
func ParseShape(name string, rows []string) (Shape, error) {
	s := Shape{Name: name}
	if len(rows) > ShapeSize {
		return Shape{}, fmt.Errorf("shape %q: %d rows, at most %d allowed", name, len(rows), ShapeSize)
	}
	for r, row := range rows {
		if len(row) > ShapeSize {
			return Shape{}, fmt.Errorf("shape %q: row %d is %d wide, at most %d allowed", name, r, len(row), ShapeSize)
		}
		for c, ch := range row {
			switch ch {
			case '#', 'X', 'x':
				s.Cells[r][c] = true
			case '.', ' ':
			default:
				return Shape{}, fmt.Errorf("shape %q: unexpected %q at row %d col %d", name, ch, r, c)
			}
		}
	}
	if s.Empty() {
		return Shape{}, fmt.Errorf("shape %q: no occupied cells", name)
	}
	return s, nil
}

// MustParseShape is ParseShape for static tables; it panics on error.
func MustParseShape(name string, rows ...string) Shape {
	s, err := ParseShape(name, rows)
	if err != nil {
		panic(err)
	}
	return s
}
