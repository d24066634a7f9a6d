package tetris

import "github.com/vovakirdan/touchtris/internal/core"

// Snapshot captures the complete controller state for tests and replay.
type Snapshot struct {
	Phase     Phase
	Piece     PieceID
	Anchor    core.Point
	Score     Score
	Settled   Grid
	Overlay   Grid
	ElapsedMs uint32
	Best      int
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase:     g.Phase(),
		Piece:     g.engine.Current(),
		Anchor:    g.engine.Anchor(),
		Score:     g.engine.Score(),
		Settled:   g.engine.Settled(),
		Overlay:   g.engine.Overlay(),
		ElapsedMs: g.elapsed,
		Best:      g.best,
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s == o
}
