package blast

// Event is a notification emitted by a Session for the presentation layer.
type Event interface {
	blastEvent()
}

// Listener receives session events synchronously, in emission order.
type Listener func(Event)

// LinesClearedEvent is emitted when a placement completes rows or columns.
// Cells lists the cleared indices for animation; they are already empty.
type LinesClearedEvent struct {
	Rows  []int
	Cols  []int
	Cells []int
	Delta int
}

func (LinesClearedEvent) blastEvent() {}

// ScoreChangedEvent carries the new total after a clear or a restart.
type ScoreChangedEvent struct {
	Score int
	Delta int
}

func (ScoreChangedEvent) blastEvent() {}

// DealtEvent is emitted whenever a new hand replaces the previous one.
type DealtEvent struct {
	Hand Hand
}

func (DealtEvent) blastEvent() {}

// GameOverEvent is emitted once when no dealt piece fits anywhere.
type GameOverEvent struct {
	Score int
}

func (GameOverEvent) blastEvent() {}
