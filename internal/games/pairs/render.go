package pairs

import (
	"fmt"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

const (
	cardWidth    = 5 // Card box width
	cardHeight   = 3 // Card box height
	cardGapX     = 1
	cardGapY     = 0
	hudHeight    = 3
	footerHeight = 2
)

// boardSize returns the width and height of the card grid for the current level.
func (g *Game) boardSize() (w, h int) {
	if g.ctrl == nil || g.ctrl.round == nil {
		return 0, 0
	}
	cols := g.columns()
	rows := (len(g.ctrl.round.Cards) + cols - 1) / cols
	w = cols*cardWidth + (cols-1)*cardGapX
	h = rows*cardHeight + (rows-1)*cardGapY
	return w, h
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	if g.status != "" {
		dst.DrawTextCentered(boardY+boardH+1, g.status, core.ColorGray)
	}
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

// renderHUD draws the level title and the move counters.
func (g *Game) renderHUD(dst *core.Screen) {
	r := g.ctrl.round

	title := "PAIRS · Classic"
	if g.mode == ModeLevels {
		title = fmt.Sprintf("PAIRS · Level %d/%d · %s", r.Level.Ordinal, g.catalog.MaxOrdinal(), r.Level.Name)
	}
	dst.DrawTextCentered(0, title, core.ColorBrightWhite)

	var counters string
	if r.Level.Unlimited() {
		counters = fmt.Sprintf("Moves: %d   Pairs: %d/%d", r.MovesUsed, r.MatchedPairs, r.Level.PairCount)
	} else {
		counters = fmt.Sprintf("Moves: %d   Left: %d   Pairs: %d/%d",
			r.MovesUsed, r.MovesRemaining, r.MatchedPairs, r.Level.PairCount)
	}
	color := core.ColorDefault
	if !r.Level.Unlimited() && r.MovesRemaining <= 2 && !r.Terminal() {
		color = core.ColorRed
	}
	dst.DrawTextCentered(1, counters, color)
}

// renderBoard draws every card as a small box. Hidden cards show a
// pattern, revealed and matched cards show their glyph.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	cols := g.columns()
	for i, card := range g.ctrl.round.Cards {
		x := boardX + (i%cols)*(cardWidth+cardGapX)
		y := boardY + (i/cols)*(cardHeight+cardGapY)
		rect := core.NewRect(x, y, cardWidth, cardHeight)

		border := core.ColorGray
		face := core.ColorBlue
		glyph := '░'
		switch card.Visibility {
		case Revealed:
			border = core.ColorYellow
			face = core.ColorYellow
			glyph = g.catalog.Glyph(card.Symbol)
		case Matched:
			border = core.ColorGreen
			face = core.ColorGreen
			glyph = g.catalog.Glyph(card.Symbol)
		}
		if i == g.cursor && !g.ctrl.round.Terminal() {
			border = core.ColorCyan
		}

		dst.DrawBox(rect, border)
		if card.Visibility == Hidden {
			dst.DrawRect(core.NewRect(x+1, y+1, cardWidth-2, 1), glyph, face)
		} else {
			dst.SetColor(x+cardWidth/2, y+1, glyph, face)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2
	r := g.ctrl.round

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, core.ColorDefault, "PAUSED", "Press P to resume")
		return
	}

	switch r.Outcome {
	case Won:
		moves := fmt.Sprintf("Cleared in %d moves", r.MovesUsed)
		switch {
		case g.mode == ModeClassic:
			g.drawOverlay(dst, centerX, centerY, core.ColorGreen, "BOARD CLEARED!", moves, "R: play again | B: menu")
		case g.catalog.IsFinal(r.Level):
			g.drawOverlay(dst, centerX, centerY, core.ColorGreen, "ALL LEVELS CLEARED!", moves, "R: replay | B: menu")
		default:
			g.drawOverlay(dst, centerX, centerY, core.ColorGreen, "LEVEL CLEARED!", moves, "N: next level | R: retry | B: menu")
		}
	case Lost:
		pairs := fmt.Sprintf("Pairs found: %d/%d", r.MatchedPairs, r.Level.PairCount)
		g.drawOverlay(dst, centerX, centerY, core.ColorRed, "OUT OF MOVES", pairs, "R: retry | B: menu")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColor(x, box.Y+1+i, line, c)
	}
}
