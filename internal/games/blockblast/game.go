// Package blockblast implements the Block Blast puzzle as a registry game.
// The player drops dealt pieces onto the board with a cursor; full rows and
// columns vanish for points and the game ends when no dealt piece fits.
package blockblast

import (
	"github.com/vovakirdan/tui-blast/internal/blast"
	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

// Mode selects the board the game is played on.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeMini    Mode = "mini"
)

// Mode IDs as registered and stored in the score table.
const (
	IDClassic = "blockblast"
	IDMini    = "blockblast_mini"
)

// Package-level variables for config
var (
	configPath string
)

// SetConfigPath sets a custom config file path used by subsequent Resets.
func SetConfigPath(path string) {
	configPath = path
}

// LoadConfig loads the configuration from the path set with SetConfigPath,
// falling back to the defaults when it cannot be read.
func LoadConfig() config.BlockBlastConfig {
	cfg, err := config.LoadBlockBlast(configPath)
	if err != nil {
		return config.DefaultBlockBlastConfig()
	}
	return cfg
}

// Game drives a blast.Session from platform input.
type Game struct {
	mode    Mode
	cfg     config.BlockBlastConfig
	session *blast.Session
	tick    uint64

	cursorRow int
	cursorCol int
	slot      int // Selected hand slot

	best       int   // Best score across restarts of this instance
	flash      []int // Cells cleared by the last placement
	flashTicks int   // Remaining ticks of the clear flash
	flashLen   int   // Flash duration in ticks

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a classic-board game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewMini creates a compact-board game.
func NewMini() *Game {
	return &Game{mode: ModeMini}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDMini, func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMini {
		return IDMini
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMini {
		return "Block Blast (Mini)"
	}
	return "Block Blast"
}

// Description returns the menu blurb.
func (g *Game) Description() string {
	if g.mode == ModeMini {
		return "Compact board, same pieces. Short games."
	}
	return "Fill rows and columns to blast them away."
}

// Reset starts a new game with fresh configuration and seed.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = LoadConfig()
	g.tick = 0
	g.paused = false
	g.flash = nil
	g.flashTicks = 0
	g.flashLen = rc.TicksFor(g.cfg.Animation.ClearFlashMS)

	g.session = newSession(g.cfg, g.gridSize(), rc.Seed)
	g.session.Subscribe(g.onEvent)

	g.centerCursor()
	g.selectPlaceable()
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// newSession builds a session from cfg. Configuration is validated on load,
// so the fallback only triggers for hand-built configs.
func newSession(cfg config.BlockBlastConfig, size int, seed int64) *blast.Session {
	opts := blast.Options{GridSize: size, Seed: seed}
	if cat, err := cfg.Catalog(); err == nil {
		opts.Catalog = cat
	}
	if pal, err := cfg.Palette(); err == nil {
		opts.Palette = pal
	}
	s, err := blast.NewSession(opts)
	if err != nil {
		s, _ = blast.NewSession(blast.Options{GridSize: blast.DefaultGridSize, Seed: seed})
	}
	return s
}

func (g *Game) gridSize() int {
	if g.mode == ModeMini {
		return g.cfg.Board.MiniGridSize
	}
	return g.cfg.Board.GridSize
}

// onEvent feeds engine notifications into the presentation state.
func (g *Game) onEvent(e blast.Event) {
	switch e := e.(type) {
	case blast.LinesClearedEvent:
		g.flash = e.Cells
		g.flashTicks = g.flashLen
	case blast.ScoreChangedEvent:
		g.best = max(g.best, e.Score)
	case blast.GameOverEvent:
		g.best = max(g.best, e.Score)
	}
}

// Resize updates the screen dimensions without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minSize()
	g.tooSmall = w < minW || h < minH
}

// Step applies one tick of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// The flash is cosmetic; the board is already cleared.
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flash = nil
		}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.session.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.handleMovement(in)
	g.handleSlots(in)

	switch {
	case in.Has(core.ActionUndo):
		if g.session.Undo() {
			g.selectPlaceable()
		}
	case in.Has(core.ActionPlace):
		g.place()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleMovement(in core.InputFrame) {
	n := g.session.GridSize()
	switch {
	case in.Has(core.ActionUp):
		g.cursorRow--
	case in.Has(core.ActionDown):
		g.cursorRow++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursorCol--
	case in.Has(core.ActionRight):
		g.cursorCol++
	}
	g.cursorRow = core.Clamp(g.cursorRow, 0, n-1)
	g.cursorCol = core.Clamp(g.cursorCol, 0, n-1)
}

func (g *Game) handleSlots(in core.InputFrame) {
	for slot := range blast.HandSize {
		if in.Has(core.SlotAction(slot)) {
			g.slot = slot
		}
	}
	if in.Has(core.ActionNextSlot) {
		g.slot = core.Wrap(g.slot+1, blast.HandSize)
	}
}

func (g *Game) place() {
	ok, err := g.session.PlaceSlot(g.slot, g.anchor())
	if err != nil || !ok {
		return
	}
	g.selectPlaceable()
}

func (g *Game) restart() {
	g.session.Restart()
	g.paused = false
	g.flash = nil
	g.flashTicks = 0
	g.centerCursor()
	g.selectPlaceable()
}

// anchor is the board index under the cursor.
func (g *Game) anchor() int {
	return g.cursorRow*g.session.GridSize() + g.cursorCol
}

func (g *Game) centerCursor() {
	mid := g.session.GridSize() / 2
	g.cursorRow, g.cursorCol = mid-1, mid-1
}

// selectPlaceable moves the selection to the first slot that fits somewhere.
func (g *Game) selectPlaceable() {
	for slot := range blast.HandSize {
		if g.session.CanPlaceSlot(slot) {
			g.slot = slot
			return
		}
	}
	g.slot = 0
}

// Session exposes the engine session for tests and alternative front ends.
func (g *Game) Session() *blast.Session {
	return g.session
}

// Stats returns lines cleared and pieces placed this game.
func (g *Game) Stats() (lines, moves int) {
	return g.session.Lines(), g.session.Moves()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | 1-3/Tab: Piece | Space: Place | U: Undo | P: Pause | R: Restart | Q: Quit"
}
