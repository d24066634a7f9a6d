package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/touchtris/internal/core"
)

// styleKey identifies a foreground/background pair.
type styleKey struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style for a pair, caching it in cache.
func styleFor(cache map[styleKey]lipgloss.Style, k styleKey) lipgloss.Style {
	if st, ok := cache[k]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(k.fg.Hex())).
		Background(lipgloss.Color(k.bg.Hex()))
	cache[k] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	cache := make(map[styleKey]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			k := styleKey{start.FG, start.BG}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != k.fg || cell.BG != k.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(cache, k).Render(run.String()))
		}
	}
	return sb.String()
}
