package blast

// MoveTracker keeps the cells filled by the most recent placement, one level deep.
type MoveTracker struct {
	cells []int
	ok    bool
}

// Record replaces any previous record with a copy of cells.
func (t *MoveTracker) Record(cells []int) {
	t.cells = append(t.cells[:0], cells...)
	t.ok = true
}

// Last returns a copy of the recorded cells.
func (t *MoveTracker) Last() ([]int, bool) {
	if !t.ok {
		return nil, false
	}
	return append([]int(nil), t.cells...), true
}

// Has reports whether a move is recorded.
func (t *MoveTracker) Has() bool {
	return t.ok
}

// Undo empties every recorded cell on b and drops the record.
// Returns false, doing nothing, when no move is recorded.
func (t *MoveTracker) Undo(b *Board) bool {
	if !t.ok {
		return false
	}
	for _, idx := range t.cells {
		b.Clear(idx)
	}
	t.Reset()
	return true
}

// Reset drops the record without touching any board.
func (t *MoveTracker) Reset() {
	t.cells = t.cells[:0]
	t.ok = false
}
