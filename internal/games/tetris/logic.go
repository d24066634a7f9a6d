package tetris

import "github.com/vovakirdan/touchtris/internal/core"

// Grid dimensions in cells.
const (
	GridWidth  = 12
	GridHeight = 16
)

// Spawn anchor for new pieces.
const (
	SpawnX = 4
	SpawnY = 0
)

// TopOutRows is how many rows from the top must stay clear of settled cells.
const TopOutRows = 4

// Cell is one grid position. The zero value is empty.
type Cell struct {
	Occupied bool
	Color    core.Color
}

// Filled returns an occupied cell of the given color.
func Filled(c core.Color) Cell {
	return Cell{Occupied: true, Color: c}
}

// Grid is a fixed-size matrix indexed [row][col].
type Grid [GridHeight][GridWidth]Cell

// InBounds reports whether (x, y) is a valid grid coordinate.
func InBounds(x, y int) bool {
	return x >= 0 && x < GridWidth && y >= 0 && y < GridHeight
}

// RowFull reports whether every column of row y is occupied.
func (g Grid) RowFull(y int) bool {
	for x := range GridWidth {
		if !g[y][x].Occupied {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for y := range GridHeight {
		for x := range GridWidth {
			if g[y][x].Occupied {
				n++
			}
		}
	}
	return n
}

// Direction is a one-cell move of the active piece.
type Direction uint8

const (
	DirDown Direction = iota
	DirLeft
	DirRight
	DirUp
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// MoveOutcome is the result of MoveCurrentBlock.
type MoveOutcome uint8

const (
	// Moved means the shift was committed.
	Moved MoveOutcome = iota
	// Blocked means a sideways move was rejected; nothing changed.
	Blocked
	// ShouldSettle means a vertical move hit the floor or the stack; the
	// piece did not move and should now be placed.
	ShouldSettle
)

// String returns the outcome name.
func (o MoveOutcome) String() string {
	switch o {
	case Moved:
		return "Moved"
	case Blocked:
		return "Blocked"
	case ShouldSettle:
		return "ShouldSettle"
	default:
		return "Unknown"
	}
}

// Rotation is a quarter turn of the active piece's window.
type Rotation uint8

const (
	RotateLeft Rotation = iota
	RotateRight
)

// String returns the rotation name.
func (r Rotation) String() string {
	if r == RotateRight {
		return "Right"
	}
	return "Left"
}

// RotationPolicy controls whether rotations are checked before commit.
type RotationPolicy uint8

const (
	// RotationValidated rejects a rotation whose cells would leave the grid
	// or overlap settled cells.
	RotationValidated RotationPolicy = iota
	// RotationUnchecked writes the rotated window back unconditionally.
	// Cells that land outside the grid are lost and settled cells may be
	// overlapped until placement overwrites them.
	RotationUnchecked
)

// rotateWindow turns a 4x4 window a quarter turn.
func rotateWindow(w [BlockSize][BlockSize]Cell, r Rotation) [BlockSize][BlockSize]Cell {
	var out [BlockSize][BlockSize]Cell
	for y := range BlockSize {
		for x := range BlockSize {
			if r == RotateRight {
				out[x][BlockSize-1-y] = w[y][x]
			} else {
				out[BlockSize-1-x][y] = w[y][x]
			}
		}
	}
	return out
}

// RotateShape turns a template shape a quarter turn.
func RotateShape(s Shape, r Rotation) Shape {
	var out Shape
	for y := range BlockSize {
		for x := range BlockSize {
			if r == RotateRight {
				out[x][BlockSize-1-y] = s[y][x]
			} else {
				out[BlockSize-1-x][y] = s[y][x]
			}
		}
	}
	return out
}
