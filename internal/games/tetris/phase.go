package tetris

import (
	"errors"
	"fmt"
)

// Phase is the top-level game state. Exactly one phase is active.
type Phase uint8

const (
	PhaseMainMenu Phase = iota
	PhasePlaying
	PhaseResults
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMainMenu:
		return "MainMenu"
	case PhasePlaying:
		return "Playing"
	case PhaseResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// ErrIllegalTransition is returned when a phase change is not in the
// transition table.
var ErrIllegalTransition = errors.New("illegal phase transition")

// transitions lists the legal next phase for each phase.
var transitions = map[Phase]Phase{
	PhaseMainMenu: PhasePlaying,
	PhasePlaying:  PhaseResults,
	PhaseResults:  PhaseMainMenu,
}

// Scheduler tracks the current phase. The zero value is in MainMenu.
type Scheduler struct {
	phase Phase
}

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Is reports whether p is the current phase.
func (s *Scheduler) Is(p Phase) bool {
	return s.phase == p
}

// InMenu reports whether the main menu is active.
func (s *Scheduler) InMenu() bool { return s.phase == PhaseMainMenu }

// Playing reports whether a game is in progress.
func (s *Scheduler) Playing() bool { return s.phase == PhasePlaying }

// InResults reports whether the results screen is active.
func (s *Scheduler) InResults() bool { return s.phase == PhaseResults }

// Transition moves to phase to. Only MainMenu->Playing, Playing->Results
// and Results->MainMenu are accepted; anything else leaves the phase
// unchanged and returns ErrIllegalTransition.
func (s *Scheduler) Transition(to Phase) error {
	if next, ok := transitions[s.phase]; !ok || next != to {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.phase, to)
	}
	s.phase = to
	return nil
}

// Reset forces the scheduler back to MainMenu. Used at power-on.
func (s *Scheduler) Reset() {
	s.phase = PhaseMainMenu
}
