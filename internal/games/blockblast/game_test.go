package blockblast

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blast/internal/blast"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed}
}

// newTestGame isolates the config search path and starts a game.
func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	g.Reset(testConfig(seed))
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func repeat(g *Game, n int, a core.Action) {
	for range n {
		press(g, a)
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{IDClassic, IDMini} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestResetGridSizes(t *testing.T) {
	classic := newTestGame(t, New(), 1)
	if got := classic.Session().GridSize(); got != 10 {
		t.Errorf("classic grid = %d, want 10", got)
	}
	mini := newTestGame(t, NewMini(), 1)
	if got := mini.Session().GridSize(); got != 8 {
		t.Errorf("mini grid = %d, want 8", got)
	}
}

func TestResetUsesConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	body := "board:\n  grid_size: 6\npieces:\n  palette: [red]\n  shapes:\n    - {name: Dot, rows: [\"#\"]}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testConfig(1))

	if got := g.Session().GridSize(); got != 6 {
		t.Errorf("grid = %d, want 6", got)
	}
	for _, p := range g.Session().Hand() {
		if p.Shape.Name != "Dot" || p.Color != core.ColorRed {
			t.Errorf("dealt %s/%s, want Dot/red", p.Shape.Name, p.Color)
		}
	}
}

func TestCursorMovesAndClamps(t *testing.T) {
	g := newTestGame(t, New(), 2)
	startRow, startCol := g.cursorRow, g.cursorCol

	press(g, core.ActionRight)
	press(g, core.ActionDown)
	if g.cursorRow != startRow+1 || g.cursorCol != startCol+1 {
		t.Errorf("cursor = (%d,%d), want (%d,%d)", g.cursorRow, g.cursorCol, startRow+1, startCol+1)
	}

	repeat(g, 20, core.ActionLeft)
	repeat(g, 20, core.ActionUp)
	if g.cursorRow != 0 || g.cursorCol != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", g.cursorRow, g.cursorCol)
	}

	repeat(g, 20, core.ActionRight)
	repeat(g, 20, core.ActionDown)
	if g.cursorRow != 9 || g.cursorCol != 9 {
		t.Errorf("cursor = (%d,%d), want (9,9)", g.cursorRow, g.cursorCol)
	}
}

func TestSlotSelection(t *testing.T) {
	g := newTestGame(t, New(), 3)

	press(g, core.ActionSlot3)
	if g.slot != 2 {
		t.Errorf("slot = %d, want 2", g.slot)
	}
	press(g, core.ActionNextSlot)
	if g.slot != 0 {
		t.Errorf("slot after Tab = %d, want 0", g.slot)
	}
	press(g, core.ActionSlot2)
	if g.slot != 1 {
		t.Errorf("slot = %d, want 1", g.slot)
	}
}

func TestPlaceAtCursor(t *testing.T) {
	g := newTestGame(t, New(), 4)
	repeat(g, 10, core.ActionUp)
	repeat(g, 10, core.ActionLeft)
	press(g, core.ActionSlot1)
	piece := g.Session().Hand()[0]

	press(g, core.ActionPlace)

	s := g.Session()
	if s.Moves() != 1 {
		t.Fatalf("moves = %d, want 1", s.Moves())
	}
	if got := s.Board().FilledCount(); got != piece.Shape.Area() {
		t.Errorf("filled = %d, want %d", got, piece.Shape.Area())
	}
	cells, _ := s.LastMove()
	for _, idx := range cells {
		c, _ := s.Cell(idx)
		if c.Color != piece.Color {
			t.Errorf("cell %d color = %s, want %s", idx, c.Color, piece.Color)
		}
	}
}

func TestPlaceOffBoardIgnored(t *testing.T) {
	g := newTestGame(t, New(), 5)
	// Every built-in shape spans at least two cells in some direction.
	repeat(g, 10, core.ActionDown)
	repeat(g, 10, core.ActionRight)
	before := g.Session().Snapshot()

	for slot := range blast.HandSize {
		press(g, core.SlotAction(slot))
		press(g, core.ActionPlace)
	}

	after := g.Session().Snapshot()
	if after.Moves != 0 || after.Score != before.Score {
		t.Errorf("illegal drop changed the game: %+v", after)
	}
}

func TestUndoViaInput(t *testing.T) {
	g := newTestGame(t, New(), 6)
	press(g, core.ActionPlace)
	if g.Session().Moves() != 1 {
		t.Fatal("initial placement at board center failed")
	}

	press(g, core.ActionUndo)
	if got := g.Session().Board().FilledCount(); got != 0 {
		t.Errorf("filled after undo = %d, want 0", got)
	}
	if g.Session().CanUndo() {
		t.Error("second undo should not be available")
	}
}

func TestClearFlashIsCosmetic(t *testing.T) {
	g := newTestGame(t, New(), 7)
	s := g.Session()
	line := blast.MustParseShape("Line", "###")
	vertical := blast.MustParseShape("Vertical Line", "#", "#", "#")

	for _, anchor := range []int{0, 3, 6} {
		if ok, _ := s.PlaceAt(line, anchor, core.ColorCyan); !ok {
			t.Fatalf("place line at %d failed", anchor)
		}
	}
	if ok, _ := s.PlaceAt(vertical, 9, core.ColorCyan); !ok {
		t.Fatal("place vertical failed")
	}

	if !g.Snapshot().Flashing {
		t.Fatal("clear should start the flash")
	}
	if s.Score() != 100 {
		t.Errorf("score = %d, want 100 before the flash ends", s.Score())
	}
	if occupied, _ := s.IsOccupied(0); occupied {
		t.Error("cleared cell still occupied during flash")
	}

	// 400ms at 60 ticks per second.
	repeat(g, 23, core.ActionNone)
	if !g.Snapshot().Flashing {
		t.Error("flash ended early")
	}
	press(g)
	if g.Snapshot().Flashing {
		t.Error("flash still running after 24 ticks")
	}
	if g.Snapshot().Best != 100 {
		t.Errorf("best = %d, want 100", g.Snapshot().Best)
	}
}

// fillAllButDiagonal drops single cells everywhere except the main diagonal.
// No row or column ever completes, and no straight three-cell run stays free.
func fillAllButDiagonal(s *blast.Session) {
	dot := blast.MustParseShape("Dot", "#")
	n := s.GridSize()
	for r := range n {
		for c := range n {
			if r != c {
				s.PlaceAt(dot, r*n+c, core.ColorGray) //nolint:errcheck // anchors are in range
			}
		}
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, New(), 8)
	fillAllButDiagonal(g.Session())

	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("snapshot state = %s", g.Snapshot().State)
	}

	filled := g.Session().Board().FilledCount()
	press(g, core.ActionPlace)
	press(g, core.ActionUndo)
	if g.Session().Board().FilledCount() != filled {
		t.Error("input after game over changed the board")
	}

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay not rendered")
	}

	press(g, core.ActionRestart)
	if g.State().GameOver {
		t.Error("restart should clear game over")
	}
	if g.Session().Board().FilledCount() != 0 || g.State().Score != 0 {
		t.Error("restart should clear board and score")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, New(), 9)
	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	row, col := g.cursorRow, g.cursorCol
	press(g, core.ActionLeft)
	press(g, core.ActionPlace)
	if g.cursorRow != row || g.cursorCol != col || g.Session().Moves() != 0 {
		t.Error("input processed while paused")
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestTooSmallWindow(t *testing.T) {
	g := New()
	t.Setenv("HOME", t.TempDir())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause")
	}
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("too small message not rendered")
	}

	g.Resize(80, 30)
	if g.State().Paused {
		t.Error("resize should resume")
	}
}

func TestRenderLayout(t *testing.T) {
	g := newTestGame(t, New(), 10)
	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Block Blast", "Score: 0", "Lines: 0", "A", "J", "10", "▶1"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, ghostRune) {
		t.Error("ghost preview not rendered")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	play := func() Snapshot {
		g := newTestGame(t, New(), 42)
		moves := []core.Action{
			core.ActionPlace, core.ActionLeft, core.ActionLeft, core.ActionLeft,
			core.ActionPlace, core.ActionDown, core.ActionDown, core.ActionDown,
			core.ActionNextSlot, core.ActionPlace, core.ActionUndo, core.ActionPlace,
		}
		for _, a := range moves {
			press(g, a)
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if a.Tick != b.Tick || a.Slot != b.Slot || a.Engine.Score != b.Engine.Score || a.Engine.Moves != b.Engine.Moves {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
	for i := range a.Engine.Cells {
		if a.Engine.Cells[i] != b.Engine.Cells[i] {
			t.Fatalf("cell %d differs", i)
		}
	}
}
