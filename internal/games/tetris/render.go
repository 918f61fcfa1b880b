package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout constants. Each board cell is drawn two screen columns wide so
// blocks look square in a terminal.
const (
	cellW      = 2
	panelGap   = 2
	panelW     = 18
	blockRune  = '█'
	ghostRune  = '░'
	emptyRune  = '·'
	previewGap = 3 // rows per preview entry
)

// layout positions the well and side panel on a screen.
type layout struct {
	well  core.Rect // border included
	panel core.Rect
}

func (g *Game) layout(dst *core.Screen) (layout, bool) {
	wellW := g.board.Width()*cellW + 2
	wellH := g.board.Height() + 2
	totalW := wellW + panelGap + panelW

	if totalW > dst.Width() || wellH > dst.Height() {
		return layout{}, false
	}

	x := (dst.Width() - totalW) / 2
	y := (dst.Height() - wellH) / 2
	return layout{
		well:  core.NewRect(x, y, wellW, wellH),
		panel: core.NewRect(x+wellW+panelGap, y, panelW, wellH),
	}, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}

	l, ok := g.layout(dst)
	if !ok {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", g.board.Width()*cellW+2+panelGap+panelW, g.board.Height()+2))
		return
	}

	dst.DrawBox(l.well, core.ColorGray)
	g.renderBoard(dst, l.well.X+1, l.well.Y+1)
	g.renderPanel(dst, l.panel)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - R to restart", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderBoard draws settled cells, the ghost and the active piece with the
// well's inner top-left corner at (ox, oy).
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	for y := 0; y < g.board.Height(); y++ {
		for x := 0; x < g.board.Width(); x++ {
			k := g.board.At(x, y)
			if k == KindNone {
				dst.SetColored(ox+x*cellW+1, oy+y, emptyRune, core.ColorGray)
				continue
			}
			drawCell(dst, ox, oy, core.Pt(x, y), blockRune, k.Color())
		}
	}

	// A game-over spawn overlaps the stack; it is not shown.
	if g.gameOver {
		return
	}

	ghost := g.Ghost()
	if ghost.Y != g.active.Y {
		for _, c := range ghost.Cells() {
			drawCell(dst, ox, oy, c, ghostRune, ghost.Color())
		}
	}

	for _, c := range g.active.Cells() {
		if g.board.InBounds(c.X, c.Y) {
			drawCell(dst, ox, oy, c, blockRune, g.active.Color())
		}
	}
}

func drawCell(dst *core.Screen, ox, oy int, c core.Point, r rune, color core.Color) {
	for i := 0; i < cellW; i++ {
		dst.SetColored(ox+c.X*cellW+i, oy+c.Y, r, color)
	}
}

// renderPanel draws the score block, the look-ahead queue and controls.
func (g *Game) renderPanel(dst *core.Screen, p core.Rect) {
	y := p.Y
	dst.DrawTextColored(p.X, y, g.opts.Title, core.ColorBrightWhite)
	y += 2

	for _, stat := range []struct {
		label string
		value int
	}{
		{"SCORE", g.score},
		{"LINES", g.lines},
		{"PIECES", g.pieces},
	} {
		dst.DrawTextColored(p.X, y, stat.label, core.ColorGray)
		dst.DrawText(p.X+8, y, fmt.Sprintf("%d", stat.value))
		y++
	}
	y++

	if upcoming := g.queue.Peek(); len(upcoming) > 0 {
		dst.DrawTextColored(p.X, y, "NEXT", core.ColorGray)
		y++
		for _, k := range upcoming {
			if y+2 > p.Bottom() {
				break
			}
			renderPreview(dst, p.X+1, y, k)
			y += previewGap
		}
	}

	controls := []string{
		"←/→ move  ↑ rotate",
		"↓ soft  spc drop",
		"p pause   q quit",
	}
	cy := p.Bottom() - len(controls)
	if cy <= y {
		return
	}
	for i, line := range controls {
		dst.DrawTextColored(p.X, cy+i, line, core.ColorGray)
	}
}

// renderPreview draws the spawn orientation of k in a 4x2 box. Every
// rotation-0 mask fits in its top two rows.
func renderPreview(dst *core.Screen, x, y int, k Kind) {
	m := Shape(k, 0)
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			if m.Has(col, row) {
				drawCell(dst, x, y, core.Pt(col, row), blockRune, k.Color())
			}
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect((w-maxLen-4)/2, (h-5)/2, maxLen+4, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// Damage returns the areas of dst that can differ from the previous render
// after res: the well columns crossed by the piece before and after the
// tick (its ghost stays in the same columns), the board rows touched by a
// lock, and the side panel. ok is false when the whole screen must be
// redrawn, such as when an overlay is shown.
func (g *Game) Damage(dst *core.Screen, res core.StepResult) (rects []core.Rect, ok bool) {
	l, fits := g.layout(dst)
	if !fits || res.State.GameOver || res.State.Paused {
		return nil, false
	}
	inner := core.NewRect(l.well.X+1, l.well.Y+1, g.board.Width()*cellW, g.board.Height())

	for _, cells := range [][]core.Point{res.Erase, res.Draw} {
		for _, c := range cells {
			rects = append(rects, core.NewRect(inner.X+c.X*cellW, inner.Y, cellW, inner.H))
		}
	}

	if top, bottom, dirty := res.DirtyRows(); dirty {
		rects = append(rects, core.NewRect(inner.X, inner.Y+top, inner.W, bottom-top+1))
	}
	return append(rects, l.panel), true
}
