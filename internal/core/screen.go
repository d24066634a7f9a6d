package core

import "strings"

// Cell is one character position of a Screen.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

var blankCell = Cell{Rune: ' ', FG: ColorWhite, BG: ColorBlack}

// Screen is a colored character buffer. The engine's display sink paints
// into it and the platform turns it into styled terminal text.
//
// Cells are stored row-major in one slice.
type Screen struct {
	width, height int
	cells         []Cell
}

func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions and blanks the buffer. Panel frames are
// always fully repainted, so old content is not carried over.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width*height != len(s.cells) {
		s.cells = make([]Cell, width*height)
	}
	s.width, s.height = width, height
	s.Clear()
}

// Clear resets every cell to a blank on black.
func (s *Screen) Clear() {
	s.Fill(ColorBlack)
}

// Fill blanks the whole screen with the given background.
func (s *Screen) Fill(bg Color) {
	c := blankCell
	c.BG = bg
	for i := range s.cells {
		s.cells[i] = c
	}
}

// SetCell replaces one cell. Out-of-bounds writes are ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = c
	}
}

// GetCell returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes text left to right from (x, y) in fg, keeping each
// cell's background. Runes past the edge are clipped.
func (s *Screen) DrawText(x, y int, text string, fg Color) {
	for _, r := range text {
		if i, ok := s.index(x, y); ok {
			s.cells[i].Rune = r
			s.cells[i].FG = fg
		}
		x++
	}
}

// FillRect blanks r with background bg.
func (s *Screen) FillRect(r Rect, bg Color) {
	for y := max(r.Y, 0); y < min(r.Bottom(), s.height); y++ {
		for x := max(r.X, 0); x < min(r.Right(), s.width); x++ {
			i := y*s.width + x
			s.cells[i] = Cell{Rune: ' ', FG: s.cells[i].FG, BG: bg}
		}
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Row returns row y as plain text; out-of-range rows are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
