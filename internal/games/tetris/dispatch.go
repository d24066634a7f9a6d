package tetris

import "github.com/vovakirdan/touchtris/internal/core"

// Panel geometry in pixels. The grid fills the whole portrait panel.
const (
	CellSize    = 20
	PanelWidth  = GridWidth * CellSize  // 240
	PanelHeight = GridHeight * CellSize // 320
)

// TouchPoint is a coordinate as reported by the touch digitizer.
type TouchPoint struct {
	X, Y int
}

// Orientation describes how digitizer axes relate to panel pixels.
type Orientation string

const (
	// OrientationPortrait: touch and panel axes agree.
	OrientationPortrait Orientation = "portrait"
	// OrientationPortrait2: the digitizer's y axis runs bottom to top.
	OrientationPortrait2 Orientation = "portrait2"
)

// TouchLayout maps touch coordinates to controls.
type TouchLayout struct {
	Orientation Orientation
	StartButton core.Rect // Start hit box, touch coordinates
	SplitX      int       // x <= SplitX is the left half
	SplitY      int       // y > SplitY is the rotate row
}

// DefaultTouchLayout returns the layout of the reference hardware.
func DefaultTouchLayout() TouchLayout {
	return TouchLayout{
		Orientation: OrientationPortrait2,
		StartButton: core.NewRect(20, 20, 200, 120),
		SplitX:      119,
		SplitY:      159,
	}
}

// FromPanel converts a panel pixel to the digitizer's coordinate system.
func (l TouchLayout) FromPanel(px, py int) TouchPoint {
	if l.Orientation == OrientationPortrait2 {
		return TouchPoint{X: px, Y: PanelHeight - 1 - py}
	}
	return TouchPoint{X: px, Y: py}
}

// ToPanel converts a touch coordinate back to a panel pixel.
func (l TouchLayout) ToPanel(p TouchPoint) (int, int) {
	if l.Orientation == OrientationPortrait2 {
		return p.X, PanelHeight - 1 - p.Y
	}
	return p.X, p.Y
}

// Command is what a touch asks the controller to do.
type Command uint8

const (
	CommandNone Command = iota
	CommandStartGame
	CommandMoveLeft
	CommandRotateLeft
	CommandMoveRight
	CommandRotateRight
	CommandReturnToMenu
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandStartGame:
		return "StartGame"
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandRotateLeft:
		return "RotateLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandRotateRight:
		return "RotateRight"
	case CommandReturnToMenu:
		return "ReturnToMenu"
	default:
		return "Unknown"
	}
}

// Dispatch decides what a touch at p means in the given phase.
//
// In MainMenu only the start button responds. While playing, the panel is
// split into four quadrants:
//
//	            x <= SplitX   x > SplitX
//	y >  SplitY RotateLeft    RotateRight
//	y <= SplitY MoveLeft      MoveRight
//
// On the results screen any touch returns to the menu.
func (l TouchLayout) Dispatch(phase Phase, p TouchPoint) Command {
	switch phase {
	case PhaseMainMenu:
		if l.StartButton.Contains(p.X, p.Y) {
			return CommandStartGame
		}
	case PhasePlaying:
		left := p.X <= l.SplitX
		rotate := p.Y > l.SplitY
		switch {
		case left && rotate:
			return CommandRotateLeft
		case left:
			return CommandMoveLeft
		case rotate:
			return CommandRotateRight
		default:
			return CommandMoveRight
		}
	case PhaseResults:
		return CommandReturnToMenu
	}
	return CommandNone
}

// TouchFor returns a touch point that Dispatch maps to cmd, for input
// devices that synthesize touches (keyboards, tests).
func (l TouchLayout) TouchFor(cmd Command) (TouchPoint, bool) {
	switch cmd {
	case CommandStartGame:
		x, y := l.StartButton.Center()
		return TouchPoint{X: x, Y: y}, true
	case CommandMoveLeft:
		return TouchPoint{X: l.SplitX / 2, Y: l.SplitY / 2}, true
	case CommandRotateLeft:
		return TouchPoint{X: l.SplitX / 2, Y: l.SplitY + 1 + (PanelHeight-l.SplitY)/2}, true
	case CommandMoveRight:
		return TouchPoint{X: l.SplitX + 1 + (PanelWidth-l.SplitX)/2, Y: l.SplitY / 2}, true
	case CommandRotateRight:
		return TouchPoint{X: l.SplitX + 1 + (PanelWidth-l.SplitX)/2, Y: l.SplitY + 1 + (PanelHeight-l.SplitY)/2}, true
	case CommandReturnToMenu:
		return TouchPoint{X: PanelWidth / 2, Y: PanelHeight / 2}, true
	}
	return TouchPoint{}, false
}
