package blockblast

import "github.com/vovakirdan/tui-blast/internal/blast"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the front-end and engine state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      string
	CursorRow int
	CursorCol int
	Slot      int
	Best      int
	Flashing  bool
	State     GameStateType
	Engine    blast.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		CursorRow: g.cursorRow,
		CursorCol: g.cursorCol,
		Slot:      g.slot,
		Best:      g.best,
		Flashing:  g.flashTicks > 0,
		State:     state,
		Engine:    g.session.Snapshot(),
	}
}
