package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/touchtris/internal/games/tetris"
)

var flagRotations bool

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "Show the piece catalog",
	Long: `Shows the seven pieces as they spawn, with their panel colors.

Examples:
  touchtris pieces
  touchtris pieces --rotations`,
	Args: cobra.NoArgs,
	Run:  runPieces,
}

func init() {
	piecesCmd.Flags().BoolVar(&flagRotations, "rotations", false, "Also show the three right turns of each piece")
}

func runPieces(_ *cobra.Command, _ []string) {
	turns := 1
	if flagRotations {
		turns = 4
	}

	for _, t := range tetris.Catalog() {
		block := lipgloss.NewStyle().Background(lipgloss.Color(t.Color.Hex())).Render("  ")

		shapes := make([]string, 0, turns)
		s := t.Shape
		for range turns {
			shapes = append(shapes, drawShape(s, block))
			s = tetris.RotateShape(s, tetris.RotateRight)
		}

		fmt.Printf("%s  id %d  color %#04x\n", t.Name, t.ID, uint16(t.Color))
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, spaced(shapes)...))
	}
}

// drawShape renders a 4x4 shape, two columns per cell.
func drawShape(s tetris.Shape, block string) string {
	var b strings.Builder
	for y := range tetris.BlockSize {
		if y > 0 {
			b.WriteRune('\n')
		}
		for x := range tetris.BlockSize {
			if s[y][x] {
				b.WriteString(block)
			} else {
				b.WriteString(" .")
			}
		}
	}
	return b.String()
}

func spaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, "   ")
		}
		out = append(out, p)
	}
	return out
}
