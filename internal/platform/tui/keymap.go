package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/touchtris/internal/games/tetris"
)

// KeyMap defines the console key bindings. Game keys stand in for touches
// on the panel and for the drop button.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Drop        key.Binding
	Confirm     key.Binding
	Ledger      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateRight, k.Drop, k.Confirm, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.RotateLeft, k.RotateRight},
		{k.Drop, k.Confirm, k.Ledger},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rotate left"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("up", "x", "w"),
			key.WithHelp("↑/x", "rotate"),
		),
		Drop: key.NewBinding(
			key.WithKeys(" ", "down", "s"),
			key.WithHelp("space", "drop"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Ledger: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "results"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// EventForKey translates a game key into the input event the panel would
// have produced. ok is false for keys that are not game input.
func (k KeyMap) EventForKey(msg tea.KeyMsg, phase tetris.Phase, layout tetris.TouchLayout) (tetris.Event, bool) {
	var cmd tetris.Command
	switch {
	case key.Matches(msg, k.Drop):
		return tetris.ButtonEvent{}, true
	case key.Matches(msg, k.Left):
		cmd = tetris.CommandMoveLeft
	case key.Matches(msg, k.Right):
		cmd = tetris.CommandMoveRight
	case key.Matches(msg, k.RotateLeft):
		cmd = tetris.CommandRotateLeft
	case key.Matches(msg, k.RotateRight):
		cmd = tetris.CommandRotateRight
	case key.Matches(msg, k.Confirm):
		switch phase {
		case tetris.PhaseMainMenu:
			cmd = tetris.CommandStartGame
		case tetris.PhaseResults:
			cmd = tetris.CommandReturnToMenu
		}
	}

	// Quadrant commands only mean something while playing; elsewhere a
	// touch there would start or leave a game by accident.
	if cmd != tetris.CommandStartGame && cmd != tetris.CommandReturnToMenu && phase != tetris.PhasePlaying {
		return nil, false
	}

	p, ok := layout.TouchFor(cmd)
	if !ok {
		return nil, false
	}
	return tetris.TouchEvent{Point: p}, true
}
