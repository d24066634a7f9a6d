package tetris

import "testing"

func TestDispatch(t *testing.T) {
	layout := DefaultTouchLayout()

	tests := []struct {
		name  string
		phase Phase
		p     TouchPoint
		want  Command
	}{
		{"start top-left", PhaseMainMenu, TouchPoint{20, 20}, CommandStartGame},
		{"start bottom-right", PhaseMainMenu, TouchPoint{219, 139}, CommandStartGame},
		{"menu left of start", PhaseMainMenu, TouchPoint{19, 50}, CommandNone},
		{"menu right of start", PhaseMainMenu, TouchPoint{220, 50}, CommandNone},
		{"menu below start", PhaseMainMenu, TouchPoint{100, 140}, CommandNone},
		{"menu above start", PhaseMainMenu, TouchPoint{100, 19}, CommandNone},
		{"origin", PhasePlaying, TouchPoint{0, 0}, CommandMoveLeft},
		{"left split corner", PhasePlaying, TouchPoint{119, 159}, CommandMoveLeft},
		{"left rotate edge", PhasePlaying, TouchPoint{119, 160}, CommandRotateLeft},
		{"right move edge", PhasePlaying, TouchPoint{120, 159}, CommandMoveRight},
		{"right rotate edge", PhasePlaying, TouchPoint{120, 160}, CommandRotateRight},
		{"far corner", PhasePlaying, TouchPoint{239, 319}, CommandRotateRight},
		{"results anywhere", PhaseResults, TouchPoint{5, 300}, CommandReturnToMenu},
		{"unknown phase", Phase(9), TouchPoint{50, 50}, CommandNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := layout.Dispatch(tc.phase, tc.p); got != tc.want {
				t.Errorf("Dispatch(%v, %v) = %v, want %v", tc.phase, tc.p, got, tc.want)
			}
		})
	}
}

func TestTouchForRoundTrip(t *testing.T) {
	layout := DefaultTouchLayout()

	tests := []struct {
		phase Phase
		cmd   Command
	}{
		{PhaseMainMenu, CommandStartGame},
		{PhasePlaying, CommandMoveLeft},
		{PhasePlaying, CommandRotateLeft},
		{PhasePlaying, CommandMoveRight},
		{PhasePlaying, CommandRotateRight},
		{PhaseResults, CommandReturnToMenu},
	}

	for _, tc := range tests {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			p, ok := layout.TouchFor(tc.cmd)
			if !ok {
				t.Fatalf("TouchFor(%v) not available", tc.cmd)
			}
			if p.X < 0 || p.X >= PanelWidth || p.Y < 0 || p.Y >= PanelHeight {
				t.Fatalf("TouchFor(%v) = %v is off the panel", tc.cmd, p)
			}
			if got := layout.Dispatch(tc.phase, p); got != tc.cmd {
				t.Errorf("Dispatch(TouchFor(%v)) = %v", tc.cmd, got)
			}
		})
	}

	if _, ok := layout.TouchFor(CommandNone); ok {
		t.Error("TouchFor(CommandNone) should not be available")
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		orientation Orientation
		px, py      int
		want        TouchPoint
	}{
		{OrientationPortrait2, 100, 250, TouchPoint{100, 69}},
		{OrientationPortrait2, 0, 0, TouchPoint{0, 319}},
		{OrientationPortrait2, 239, 319, TouchPoint{239, 0}},
		{OrientationPortrait, 100, 250, TouchPoint{100, 250}},
	}

	for _, tc := range tests {
		t.Run(string(tc.orientation), func(t *testing.T) {
			layout := DefaultTouchLayout()
			layout.Orientation = tc.orientation

			got := layout.FromPanel(tc.px, tc.py)
			if got != tc.want {
				t.Errorf("FromPanel(%d, %d) = %v, want %v", tc.px, tc.py, got, tc.want)
			}
			if x, y := layout.ToPanel(got); x != tc.px || y != tc.py {
				t.Errorf("ToPanel(%v) = (%d, %d), want (%d, %d)", got, x, y, tc.px, tc.py)
			}
		})
	}
}

func TestPortrait2StartButtonOnPanel(t *testing.T) {
	layout := DefaultTouchLayout()

	// The start hit box sits in the lower part of the panel, where the menu
	// draws its button.
	if got := layout.Dispatch(PhaseMainMenu, layout.FromPanel(120, 250)); got != CommandStartGame {
		t.Errorf("press on the GO button = %v, want StartGame", got)
	}
	if got := layout.Dispatch(PhaseMainMenu, layout.FromPanel(120, 40)); got != CommandNone {
		t.Errorf("press on the title = %v, want None", got)
	}
}
