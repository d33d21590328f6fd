package blast

import "github.com/vovakirdan/tui-blast/internal/core"

// PieceView is the serializable form of a dealt piece.
type PieceView struct {
	Shape     string     `json:"shape"`
	Rows      []string   `json:"rows"`
	Color     core.Color `json:"color"`
	Placeable bool       `json:"placeable"`
}

// Snapshot captures the complete observable session state.
type Snapshot struct {
	GridSize int         `json:"grid_size"`
	Cells    []Cell      `json:"cells"`
	Hand     []PieceView `json:"hand"`
	Score    int         `json:"score"`
	Lines    int         `json:"lines"`
	Moves    int         `json:"moves"`
	CanUndo  bool        `json:"can_undo"`
	GameOver bool        `json:"game_over"`
}

// Snapshot returns the current state for serialization and determinism checks.
func (s *Session) Snapshot() Snapshot {
	hand := make([]PieceView, 0, HandSize)
	for _, p := range s.hand {
		hand = append(hand, PieceView{
			Shape:     p.Shape.Name,
			Rows:      p.Shape.Rows(),
			Color:     p.Color,
			Placeable: s.CanPlaceAnywhere(p.Shape),
		})
	}
	return Snapshot{
		GridSize: s.board.Size(),
		Cells:    s.board.Cells(),
		Hand:     hand,
		Score:    s.score,
		Lines:    s.lines,
		Moves:    s.moves,
		CanUndo:  s.CanUndo(),
		GameOver: s.gameOver,
	}
}
