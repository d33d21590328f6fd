package blast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blast/internal/core"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(Options{Seed: seed})
	require.NoError(t, err)
	return s
}

func mustPlace(t *testing.T, s *Session, shape Shape, anchor int) {
	t.Helper()
	ok, err := s.PlaceAt(shape, anchor, core.ColorCyan)
	require.NoError(t, err)
	require.True(t, ok, "placing %s at %d", shape.Name, anchor)
}

func TestNewSessionDealsFullHand(t *testing.T) {
	s := newTestSession(t, 1)

	assert.Equal(t, 10, s.GridSize())
	assert.Zero(t, s.Score())
	assert.False(t, s.GameOver())
	assert.False(t, s.CanUndo())
	for i, p := range s.Hand() {
		assert.False(t, p.Shape.Empty(), "slot %d", i)
		_, ok := s.Catalog().Lookup(p.Shape.Name)
		assert.True(t, ok, "slot %d holds %q which is not in the catalog", i, p.Shape.Name)
	}
}

func TestNewSessionRejectsBadOptions(t *testing.T) {
	_, err := NewSession(Options{GridSize: 2})
	assert.Error(t, err)

	_, err = NewSession(Options{Catalog: Catalog{{Name: "blank"}}})
	assert.Error(t, err)
}

func TestSessionRowClearScenario(t *testing.T) {
	s := newTestSession(t, 3)
	line := MustParseShape("Line", "###")
	vertical := MustParseShape("Vertical Line", "#", "#", "#")

	mustPlace(t, s, line, 0)
	mustPlace(t, s, line, 3)
	mustPlace(t, s, line, 6)
	assert.Zero(t, s.Score())

	mustPlace(t, s, vertical, 9)

	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, 4, s.Moves())

	board := s.Board()
	assert.Equal(t, 2, board.FilledCount())
	for _, idx := range []int{19, 29} {
		occupied, err := s.IsOccupied(idx)
		require.NoError(t, err)
		assert.True(t, occupied, "cell %d", idx)
	}
	for c := range 10 {
		occupied, _ := s.IsOccupied(c)
		assert.False(t, occupied, "row 0 cell %d", c)
	}
}

func TestSessionUndo(t *testing.T) {
	s := newTestSession(t, 5)
	line := MustParseShape("Line", "###")

	assert.False(t, s.Undo(), "nothing to undo on a fresh game")

	mustPlace(t, s, line, 42)
	cells, ok := s.LastMove()
	require.True(t, ok)
	assert.Equal(t, []int{42, 43, 44}, cells)
	assert.True(t, s.CanUndo())

	assert.True(t, s.Undo())
	assert.Equal(t, 0, s.Board().FilledCount())
	assert.False(t, s.CanUndo())

	assert.False(t, s.Undo(), "only one level of undo")
}

func TestSessionUndoRestoresBoardExactly(t *testing.T) {
	s := newTestSession(t, 5)
	s.board.Occupy(0, core.ColorRed)
	s.board.Occupy(11, core.ColorGreen)
	s.board.Occupy(57, core.ColorPink)
	s.board.Occupy(99, core.ColorYellow)
	before := s.Board()

	mustPlace(t, s, MustParseShape("T", "###", ".#."), 42)
	require.False(t, before.Equal(s.Board()))

	require.True(t, s.Undo())
	assert.True(t, before.Equal(s.Board()), "undo must restore every cell and color")
	assert.False(t, s.Undo())
	assert.True(t, before.Equal(s.Board()), "a second undo changes nothing")
}

func TestSessionCatalogIsACopy(t *testing.T) {
	s := newTestSession(t, 3)
	cat := s.Catalog()
	require.NotEmpty(t, cat)

	cat[0] = MustParseShape("Dot", "#")
	cat[1].Cells[0][0] = !cat[1].Cells[0][0]

	assert.Equal(t, DefaultCatalog(), s.Catalog())
}

func TestSessionUndoKeepsScore(t *testing.T) {
	s := newTestSession(t, 9)
	line := MustParseShape("Line", "###")
	vertical := MustParseShape("Vertical Line", "#", "#", "#")

	mustPlace(t, s, line, 0)
	mustPlace(t, s, line, 3)
	mustPlace(t, s, line, 6)
	mustPlace(t, s, vertical, 9)
	require.Equal(t, 100, s.Score())

	require.True(t, s.Undo())

	assert.Equal(t, 100, s.Score(), "undo does not refund points")
	assert.Equal(t, 0, s.Board().FilledCount(), "the vertical line's surviving cells are removed")
}

func TestSessionEventOrder(t *testing.T) {
	s := newTestSession(t, 11)
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	for c := range 7 {
		s.board.Occupy(c, core.ColorRed)
	}
	mustPlace(t, s, MustParseShape("Line", "###"), 7)

	require.Len(t, events, 3)

	cleared, ok := events[0].(LinesClearedEvent)
	require.True(t, ok, "first event is %T", events[0])
	assert.Equal(t, []int{0}, cleared.Rows)
	assert.Empty(t, cleared.Cols)
	assert.Equal(t, 100, cleared.Delta)
	assert.Len(t, cleared.Cells, 10)

	score, ok := events[1].(ScoreChangedEvent)
	require.True(t, ok, "second event is %T", events[1])
	assert.Equal(t, ScoreChangedEvent{Score: 100, Delta: 100}, score)

	dealt, ok := events[2].(DealtEvent)
	require.True(t, ok, "third event is %T", events[2])
	assert.Equal(t, s.Hand(), dealt.Hand)
}

func TestSessionPlacementWithoutClearOnlyDeals(t *testing.T) {
	s := newTestSession(t, 12)
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	mustPlace(t, s, MustParseShape("Square", "##", "##"), 55)

	require.Len(t, events, 1)
	assert.IsType(t, DealtEvent{}, events[0])
}

func TestSessionRejectedPlacementChangesNothing(t *testing.T) {
	s := newTestSession(t, 13)
	mustPlace(t, s, MustParseShape("Square", "##", "##"), 0)
	snap := s.Snapshot()

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	ok, err := s.PlaceAt(MustParseShape("Line", "###"), 10, core.ColorRed)
	require.NoError(t, err)
	assert.False(t, ok, "collides with the square")

	ok, err = s.PlaceAt(MustParseShape("Line", "###"), 98, core.ColorRed)
	require.NoError(t, err)
	assert.False(t, ok, "runs off the right edge")

	assert.Equal(t, snap, s.Snapshot())
	assert.Empty(t, events)
}

func TestSessionPlaceErrors(t *testing.T) {
	s := newTestSession(t, 14)
	line := MustParseShape("Line", "###")

	for _, anchor := range []int{-1, 100, 1000} {
		ok, err := s.PlaceAt(line, anchor, core.ColorRed)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrOutOfBounds, "anchor %d", anchor)
		assert.False(t, s.CanPlace(line, anchor))
	}

	for _, slot := range []int{-1, HandSize} {
		ok, err := s.PlaceSlot(slot, 0)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrInvalidSlot, "slot %d", slot)
		assert.False(t, s.CanPlaceSlot(slot))
	}

	_, err := s.Cell(100)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSessionPlaceSlotUsesDealtPiece(t *testing.T) {
	s := newTestSession(t, 15)
	p, err := s.Piece(1)
	require.NoError(t, err)

	ok, err := s.PlaceSlot(1, 44)
	require.NoError(t, err)
	require.True(t, ok, "every catalog shape fits at 44 on an empty board")

	cells, _ := s.LastMove()
	for _, idx := range cells {
		cell, err := s.Cell(idx)
		require.NoError(t, err)
		assert.Equal(t, Cell{Filled: true, Color: p.Color}, cell)
	}
	assert.Equal(t, p.Shape.Area(), len(cells))
}

func TestSessionGameOverIsTerminal(t *testing.T) {
	s := newTestSession(t, 21)
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	s.board = fullBoardExcept(10, 0, 22)
	s.deal()

	require.True(t, s.GameOver())
	require.NotEmpty(t, events)
	assert.Equal(t, GameOverEvent{Score: 0}, events[len(events)-1])
	for slot := range HandSize {
		assert.False(t, s.CanPlaceSlot(slot))
	}

	events = nil
	ok, err := s.PlaceAt(MustParseShape("Dot", "#"), 0, core.ColorRed)
	require.NoError(t, err)
	assert.False(t, ok, "placement is refused after game over even when it fits")
	assert.False(t, s.Undo())
	assert.False(t, s.CanUndo())
	assert.Empty(t, events)

	s.Restart()
	assert.False(t, s.GameOver())
	assert.Equal(t, 0, s.Board().FilledCount())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Moves())
}

func TestSessionRestartResetsScore(t *testing.T) {
	s := newTestSession(t, 22)
	line := MustParseShape("Line", "###")
	vertical := MustParseShape("Vertical Line", "#", "#", "#")
	mustPlace(t, s, line, 0)
	mustPlace(t, s, line, 3)
	mustPlace(t, s, line, 6)
	mustPlace(t, s, vertical, 9)

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })
	s.Restart()

	require.Len(t, events, 2)
	assert.Equal(t, ScoreChangedEvent{Score: 0, Delta: -100}, events[0])
	assert.IsType(t, DealtEvent{}, events[1])
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Lines())
	assert.False(t, s.CanUndo())
}

func TestSessionDeterministicBySeed(t *testing.T) {
	play := func(seed int64) []Snapshot {
		s := newTestSession(t, seed)
		out := []Snapshot{s.Snapshot()}
		for _, anchor := range []int{0, 44, 77, 5, 50} {
			for slot := range HandSize {
				if ok, _ := s.PlaceSlot(slot, anchor); ok {
					break
				}
			}
			out = append(out, s.Snapshot())
		}
		return out
	}

	assert.Equal(t, play(99), play(99))
	assert.NotEqual(t, play(99)[0].Hand, play(100)[0].Hand)
}

func TestSessionSnapshot(t *testing.T) {
	s, err := NewSession(Options{GridSize: 8, Seed: 4})
	require.NoError(t, err)
	mustPlace(t, s, MustParseShape("Square", "##", "##"), 0)

	snap := s.Snapshot()

	assert.Equal(t, 8, snap.GridSize)
	assert.Len(t, snap.Cells, 64)
	assert.True(t, snap.Cells[0].Filled)
	assert.Equal(t, core.ColorCyan, snap.Cells[9].Color)
	assert.False(t, snap.Cells[2].Filled)
	assert.Equal(t, 1, snap.Moves)
	assert.True(t, snap.CanUndo)
	assert.False(t, snap.GameOver)
	require.Len(t, snap.Hand, HandSize)
	for i, p := range snap.Hand {
		assert.True(t, p.Placeable, "slot %d", i)
		assert.Len(t, p.Rows, ShapeSize)
	}
}
