package blast

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// ErrInvalidSlot is returned when a hand slot outside [0, HandSize) is addressed.
var ErrInvalidSlot = errors.New("blast: invalid hand slot")

// Options configures a Session. Zero values select the defaults.
type Options struct {
	GridSize int          // Board side, default DefaultGridSize
	Seed     int64        // Dealer seed
	Catalog  Catalog      // Shapes to deal from, default DefaultCatalog()
	Palette  []core.Color // Piece colors, default DefaultPalette()
}

// Session owns the board, score, hand and undo record of one game.
// It is not safe for concurrent use; every front end drives it from a
// single goroutine.
type Session struct {
	board     *Board
	catalog   Catalog
	dealer    *Dealer
	tracker   MoveTracker
	hand      Hand
	score     int
	lines     int
	moves     int
	gameOver  bool
	listeners []Listener
}

// NewSession creates a session and deals the first hand.
func NewSession(opts Options) (*Session, error) {
	if opts.GridSize == 0 {
		opts.GridSize = DefaultGridSize
	}
	if opts.GridSize < ShapeSize {
		return nil, fmt.Errorf("blast: grid size %d is smaller than a shape frame", opts.GridSize)
	}
	if len(opts.Catalog) == 0 {
		opts.Catalog = DefaultCatalog()
	}
	if err := opts.Catalog.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		board:   NewBoard(opts.GridSize),
		catalog: opts.Catalog,
		dealer:  NewDealer(opts.Catalog, opts.Palette, opts.Seed),
	}
	s.deal()
	return s, nil
}

// Subscribe registers a listener for subsequent events.
func (s *Session) Subscribe(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Session) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

// PlaceAt drops shape on anchor. On success the cells are filled, full lines
// are cleared and scored, a new hand is dealt and the game-over oracle runs.
// An illegal placement, or any placement after game over, returns false and
// changes nothing. An anchor off the grid is a caller error.
func (s *Session) PlaceAt(shape Shape, anchor int, color core.Color) (bool, error) {
	if !s.board.ValidIndex(anchor) {
		return false, s.board.outOfBounds(anchor)
	}
	if s.gameOver {
		return false, nil
	}

	cells, ok := Commit(s.board, shape, anchor, color)
	if !ok {
		return false, nil
	}
	s.tracker.Record(cells)
	s.moves++

	if res := ClearLines(s.board); !res.Empty() {
		s.lines += res.Lines()
		s.emit(LinesClearedEvent{Rows: res.Rows, Cols: res.Cols, Cells: res.Cells, Delta: res.Delta})
		s.score += res.Delta
		s.emit(ScoreChangedEvent{Score: s.score, Delta: res.Delta})
	}

	s.deal()
	return true, nil
}

// PlaceSlot places the dealt piece in the given hand slot.
func (s *Session) PlaceSlot(slot, anchor int) (bool, error) {
	p, err := s.Piece(slot)
	if err != nil {
		return false, err
	}
	return s.PlaceAt(p.Shape, anchor, p.Color)
}

// CanPlace is the check-only validator against the current board.
func (s *Session) CanPlace(shape Shape, anchor int) bool {
	return CanPlace(s.board, shape, anchor)
}

// CanPlaceAnywhere reports whether shape fits somewhere on the current board.
func (s *Session) CanPlaceAnywhere(shape Shape) bool {
	return CanPlaceAnywhere(s.board, shape)
}

// CanPlaceSlot reports whether the piece in slot fits somewhere.
func (s *Session) CanPlaceSlot(slot int) bool {
	p, err := s.Piece(slot)
	if err != nil {
		return false
	}
	return s.CanPlaceAnywhere(p.Shape)
}

// LegalAnchors lists the anchors at which shape can be placed.
func (s *Session) LegalAnchors(shape Shape) []int {
	return LegalAnchors(s.board, shape)
}

// Undo empties the cells of the last placement and deals a fresh hand.
// The score and the hand that existed before the move are not restored.
// Returns false when there is nothing to undo or the game is over.
func (s *Session) Undo() bool {
	if s.gameOver {
		return false
	}
	if !s.tracker.Undo(s.board) {
		return false
	}
	s.deal()
	return true
}

// Restart clears the board, score and undo record and deals a new hand.
func (s *Session) Restart() {
	s.board.Reset()
	s.tracker.Reset()
	s.gameOver = false
	s.lines = 0
	s.moves = 0
	if s.score != 0 {
		old := s.score
		s.score = 0
		s.emit(ScoreChangedEvent{Score: 0, Delta: -old})
	}
	s.deal()
}

// deal replaces the hand and runs the game-over oracle against it.
func (s *Session) deal() {
	s.hand = s.dealer.Deal()
	s.emit(DealtEvent{Hand: s.hand})

	if Exhausted(s.board, s.hand.Shapes()...) {
		s.gameOver = true
		s.emit(GameOverEvent{Score: s.score})
	}
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// GameOver reports whether no dealt piece can be placed.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Hand returns the dealt pieces.
func (s *Session) Hand() Hand {
	return s.hand
}

// Piece returns the dealt piece in slot.
func (s *Session) Piece(slot int) (Piece, error) {
	if slot < 0 || slot >= HandSize {
		return Piece{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return s.hand[slot], nil
}

// GridSize returns the board side.
func (s *Session) GridSize() int {
	return s.board.Size()
}

// Cell returns the occupancy and color of one cell.
func (s *Session) Cell(idx int) (Cell, error) {
	return s.board.Cell(idx)
}

// IsOccupied reports whether a cell holds a block.
func (s *Session) IsOccupied(idx int) (bool, error) {
	return s.board.IsOccupied(idx)
}

// Board returns a copy of the board.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

// Catalog returns a copy of the shapes this session deals from.
func (s *Session) Catalog() Catalog {
	return slices.Clone(s.catalog)
}

// LastMove returns the cells of the undoable placement, if any.
func (s *Session) LastMove() ([]int, bool) {
	return s.tracker.Last()
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool {
	return !s.gameOver && s.tracker.Has()
}

// Lines returns the number of rows and columns cleared this game.
func (s *Session) Lines() int {
	return s.lines
}

// Moves returns the number of successful placements this game.
func (s *Session) Moves() int {
	return s.moves
}
