package blockblast

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-blast/internal/blast"
	"github.com/vovakirdan/tui-blast/internal/core"
)

const (
	cellWidth  = 2 // Terminal columns per board cell
	labelWidth = 3 // Row number gutter
	slotWidth  = blast.ShapeSize*cellWidth + 4
	hudHeight  = 3
	minHUDW    = 30
)

// Glyphs, each drawn twice per cell.
const (
	blockRune = '█'
	ghostRune = '▓'
	flashRune = '░'
	emptyRune = '·'
)

// minSize returns the smallest screen the layout fits on.
func (g *Game) minSize() (w, h int) {
	n := g.session.GridSize()
	w = max(boardWidth(n), blast.HandSize*slotWidth, minHUDW)
	// HUD, column labels, board with border, gap, hand header, hand, gap, controls
	h = hudHeight + 1 + n + 2 + 1 + 1 + blast.ShapeSize + 1 + 1
	return w, h
}

func boardWidth(n int) int {
	return labelWidth + 2 + n*cellWidth
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.session.GridSize()
	boardW := boardWidth(n)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderHand(dst, boardY+n+3)
	dst.DrawTextCentered(boardY+n+4+blast.ShapeSize+1, "1-3 piece  space place  u undo  p pause  r restart")

	box := core.Rect{X: boardX + labelWidth, Y: boardY, W: n*cellWidth + 2, H: n + 2}
	g.renderOverlays(dst, box)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.minSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws the title and counters.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.Title())
	dst.DrawTextCentered(1, fmt.Sprintf("Score: %-6d Best: %d", g.session.Score(), g.best))
	dst.DrawTextCentered(2, fmt.Sprintf("Lines: %-6d Moves: %d", g.session.Lines(), g.session.Moves()))
}

// renderBoard draws labels, border, blocks, the clear flash and the ghost piece.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.session.GridSize()
	gridX := boardX + labelWidth + 1
	gridY := boardY + 1

	dst.DrawBox(core.Rect{X: boardX + labelWidth, Y: boardY, W: n*cellWidth + 2, H: n + 2}, core.ColorGray)

	for c := range n {
		color := core.ColorGray
		if c == g.cursorCol {
			color = core.ColorBrightYellow
		}
		dst.SetColored(gridX+c*cellWidth, boardY-1, rune('A'+c), color)
	}
	for r := range n {
		color := core.ColorGray
		if r == g.cursorRow {
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(boardX, gridY+r, fmt.Sprintf("%2d", r+1), color)
	}

	board := g.session.Board()
	for idx, cell := range board.Cells() {
		r, c := board.RowCol(idx)
		if cell.Filled {
			drawCell(dst, gridX, gridY, r, c, blockRune, cell.Color)
		} else {
			drawCell(dst, gridX, gridY, r, c, emptyRune, core.ColorGray)
		}
	}

	if g.flashTicks > 0 {
		for _, idx := range g.flash {
			r, c := board.RowCol(idx)
			drawCell(dst, gridX, gridY, r, c, flashRune, core.ColorBrightWhite)
		}
	}

	if !g.session.GameOver() {
		g.renderGhost(dst, board, gridX, gridY)
	}
}

// renderGhost previews the selected piece at the cursor, green when the drop
// is legal and red otherwise. Sub-cells that fall off the board are skipped.
func (g *Game) renderGhost(dst *core.Screen, board *blast.Board, gridX, gridY int) {
	p, err := g.session.Piece(g.slot)
	if err != nil {
		return
	}
	color := core.ColorRed
	if g.session.CanPlace(p.Shape, g.anchor()) {
		color = core.ColorBrightGreen
	}

	top, left := p.Shape.Offset()
	for r := range blast.ShapeSize {
		for c := range blast.ShapeSize {
			if !p.Shape.Occupied(r, c) {
				continue
			}
			row := g.cursorRow - top + r
			col := g.cursorCol - left + c
			if !board.InBounds(row, col) {
				continue
			}
			drawCell(dst, gridX, gridY, row, col, ghostRune, color)
		}
	}
}

func drawCell(dst *core.Screen, gridX, gridY, row, col int, glyph rune, color core.Color) {
	x := gridX + col*cellWidth
	y := gridY + row
	dst.SetColored(x, y, glyph, color)
	if glyph == emptyRune {
		dst.Set(x+1, y, ' ')
		return
	}
	dst.SetColored(x+1, y, glyph, color)
}

// renderHand draws the three dealt pieces with the selected one marked.
// With hints on, pieces that fit nowhere are dimmed.
func (g *Game) renderHand(dst *core.Screen, y int) {
	handW := blast.HandSize * slotWidth
	x0 := (g.screenW - handW) / 2

	for slot, p := range g.session.Hand() {
		x := x0 + slot*slotWidth
		color := p.Color
		if g.cfg.Hints.Enabled && !g.session.CanPlaceSlot(slot) {
			color = core.ColorGray
		}

		label := fmt.Sprintf("%d %s", slot+1, p.Shape.Name)
		if utf8.RuneCountInString(label) > slotWidth-2 {
			label = string([]rune(label)[:slotWidth-2])
		}
		marker := " "
		labelColor := core.ColorGray
		if slot == g.slot {
			marker = "▶"
			labelColor = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, y, marker, core.ColorBrightYellow)
		dst.DrawTextColored(x+1, y, label, labelColor)

		for r := range blast.ShapeSize {
			for c := range blast.ShapeSize {
				if p.Shape.Occupied(r, c) {
					drawCell(dst, x+2, y+1, r, c, blockRune, color)
				}
			}
		}
	}
}

// renderOverlays draws pause and game over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, box core.Rect) {
	centerX := box.X + box.W/2
	centerY := box.Y + box.H/2

	switch {
	case g.session.GameOver():
		score := fmt.Sprintf("Score: %d", g.session.Score())
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightRed, "GAME OVER", score, "No piece fits", "Press R to restart")
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightCyan, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	r := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	r.X = centerX - r.W/2
	r.Y = centerY - r.H/2

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, color)
	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColored(x, r.Y+1+i, line, color)
	}
}
