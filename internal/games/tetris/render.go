package tetris

import (
	"strconv"

	"github.com/vovakirdan/touchtris/internal/core"
)

// DisplaySink receives drawing commands in panel pixels. Rectangles are
// inclusive of both corners.
type DisplaySink interface {
	Clear(c core.Color)
	FillRect(x1, y1, x2, y2 int, c core.Color)
	DrawGlyph(x, y int, r rune, c core.Color)
}

// glyphAdvance is the horizontal pitch of the panel font.
const glyphAdvance = 20

// Results screen rows, panel y of each label line.
var resultRows = []struct {
	label  string
	y      int
	bucket int
}{
	{"SINGLES", 181, BucketSingle},
	{"DOUBLES", 201, BucketDouble},
	{"TRIPLES", 221, BucketTriple},
	{"TETRIS!", 241, BucketTetris},
}

// Render repaints the whole panel for the current phase.
func (g *Game) Render(dst DisplaySink) {
	switch g.Phase() {
	case PhaseMainMenu:
		g.renderMenu(dst)
	case PhasePlaying:
		DrawGrid(dst, g.engine.Composite())
	case PhaseResults:
		g.renderResults(dst)
	}
}

// DrawGrid paints one filled rectangle per cell, row by row.
func DrawGrid(dst DisplaySink, grid Grid) {
	for y := range GridHeight {
		for x := range GridWidth {
			c := core.ColorBlack
			if grid[y][x].Occupied {
				c = grid[y][x].Color
			}
			dst.FillRect(x*CellSize, y*CellSize, (x+1)*CellSize-1, (y+1)*CellSize-1, c)
		}
	}
}

// DrawText writes s one glyph per advance starting at (x, y).
func DrawText(dst DisplaySink, x, y int, s string, c core.Color) {
	for _, r := range s {
		dst.DrawGlyph(x, y, r, c)
		x += glyphAdvance
	}
}

func (g *Game) renderMenu(dst DisplaySink) {
	DrawGrid(dst, g.engine.Composite())

	// Start button backdrop
	dst.FillRect(20, 200, 219, 299, core.ColorBlack)

	DrawText(dst, 62, 21, "TETRIS", core.ColorWhite)
	DrawText(dst, 102, 241, "GO", core.ColorGreen)
}

func (g *Game) renderResults(dst DisplaySink) {
	dst.Clear(core.ColorBlack)

	DrawText(dst, 72, 61, "TOTAL", core.ColorWhite)
	DrawText(dst, 52, 81, "TIME MS", core.ColorWhite)
	DrawText(dst, 80, 121, strconv.FormatUint(uint64(g.elapsed), 10), core.ColorWhite)

	score := g.engine.Score()
	for _, row := range resultRows {
		DrawText(dst, 32, row.y, row.label, core.ColorWhite)
		DrawText(dst, 192, row.y, strconv.Itoa(score[row.bucket]), core.ColorWhite)
	}

	if g.hasBest {
		DrawText(dst, 32, 281, "BEST", core.ColorYellow)
		DrawText(dst, 192, 281, strconv.Itoa(g.best), core.ColorYellow)
	}
}
