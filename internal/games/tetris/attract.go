package tetris

// attractPlacement is one piece of the main menu backdrop.
type attractPlacement struct {
	Piece PieceID
	Turns []Rotation
	Moves string // L, R, D per step
}

// attractLayout stacks one of each piece at the bottom of the menu screen.
var attractLayout = []attractPlacement{
	{Piece: PieceT, Turns: []Rotation{RotateLeft}, Moves: "RRRRDDDDDDD"},
	{Piece: PieceS, Turns: []Rotation{RotateRight}, Moves: "LLLLLDDDDD"},
	{Piece: PieceL, Turns: []Rotation{RotateRight}, Moves: "LLDDDDD"},
	{Piece: PieceO, Moves: "RDDDD"},
	{Piece: PieceJ, Turns: []Rotation{RotateRight}, Moves: "RRRRDD"},
	{Piece: PieceZ, Moves: "LLLLDDD"},
	{Piece: PieceI, Moves: "DDR"},
}

// arrangeAttract fills the settled grid with the menu backdrop. Moves that
// are blocked are skipped, as they would be for a player.
func (e *Engine) arrangeAttract() {
	for _, p := range attractLayout {
		e.GenerateBlock(p.Piece)
		for _, r := range p.Turns {
			e.RotateCurrentBlock(r)
		}
		for _, m := range p.Moves {
			switch m {
			case 'L':
				e.MoveCurrentBlock(DirLeft)
			case 'R':
				e.MoveCurrentBlock(DirRight)
			case 'D':
				e.MoveCurrentBlock(DirDown)
			}
		}
		e.PlaceCurrentBlock()
	}
	e.ResetScore()
}
