package tui

import (
	"github.com/vovakirdan/touchtris/internal/core"
	"github.com/vovakirdan/touchtris/internal/games/tetris"
)

// Console geometry at scale 1: one terminal column is 10 panel pixels wide
// and one row is 20 pixels high, so a grid cell is two columns by one row.
const (
	pixelsPerCol = 10
	pixelsPerRow = 20
	ConsoleCols  = tetris.PanelWidth / pixelsPerCol  // 24
	ConsoleRows  = tetris.PanelHeight / pixelsPerRow // 16
	maxScale     = 2
)

// Console is a DisplaySink that lands panel pixels on a character screen.
type Console struct {
	screen *core.Screen
	scale  int
}

// NewConsole creates a console at the given scale (1 or 2).
func NewConsole(scale int) *Console {
	scale = core.Clamp(scale, 1, maxScale)
	return &Console{
		screen: core.NewScreen(ConsoleCols*scale, ConsoleRows*scale),
		scale:  scale,
	}
}

// FitScale returns the largest scale whose panel fits in a terminal of
// w by h cells with reserve rows left over.
func FitScale(w, h, reserve int) int {
	for s := maxScale; s > 1; s-- {
		if ConsoleCols*s <= w && ConsoleRows*s+reserve <= h {
			return s
		}
	}
	return 1
}

// Scale returns the current scale.
func (c *Console) Scale() int {
	return c.scale
}

// SetScale resizes the console.
func (c *Console) SetScale(scale int) {
	scale = core.Clamp(scale, 1, maxScale)
	if scale == c.scale {
		return
	}
	c.scale = scale
	c.screen.Resize(ConsoleCols*scale, ConsoleRows*scale)
}

// Screen returns the character buffer.
func (c *Console) Screen() *core.Screen {
	return c.screen
}

func (c *Console) col(px int) int { return px * c.scale / pixelsPerCol }
func (c *Console) row(py int) int { return py * c.scale / pixelsPerRow }

// Clear implements tetris.DisplaySink.
func (c *Console) Clear(color core.Color) {
	c.screen.Fill(color)
}

// FillRect implements tetris.DisplaySink. Corners are inclusive.
func (c *Console) FillRect(x1, y1, x2, y2 int, color core.Color) {
	r := core.Rect{
		X: c.col(x1),
		Y: c.row(y1),
		W: c.col(x2) - c.col(x1) + 1,
		H: c.row(y2) - c.row(y1) + 1,
	}
	c.screen.FillRect(r, color)
}

// DrawGlyph implements tetris.DisplaySink.
func (c *Console) DrawGlyph(x, y int, r rune, color core.Color) {
	c.screen.DrawText(c.col(x), c.row(y), string(r), color)
}

// PanelPoint maps a terminal cell to the panel pixel at its center.
// ok is false outside the panel.
func (c *Console) PanelPoint(col, row int) (px, py int, ok bool) {
	if col < 0 || row < 0 || col >= c.screen.Width() || row >= c.screen.Height() {
		return 0, 0, false
	}
	px = (2*col + 1) * pixelsPerCol / (2 * c.scale)
	py = (2*row + 1) * pixelsPerRow / (2 * c.scale)
	return px, py, true
}
