package tetris

import "github.com/vovakirdan/touchtris/internal/core"

// Engine is the complete game state: settled grid, falling-piece overlay,
// anchor, score counters, forced-drop flag and phase. It is owned by one
// controller and is not safe for concurrent use.
type Engine struct {
	settled Grid
	overlay Grid

	// Anchor is the top-left of the piece's 4x4 window. It may sit outside
	// the grid when the window's empty columns or rows hang off an edge.
	anchorX int
	anchorY int
	current PieceID

	score      Score
	forcedDrop bool
	policy     RotationPolicy
	sched      Scheduler
	rng        RandomSource
}

// Placement describes what PlaceCurrentBlock did.
type Placement struct {
	Lines  int  // Rows cleared by this placement
	Bucket int  // Score bucket bumped, -1 if none
	Ended  bool // The placement moved the game to Results
}

// NewEngine creates an engine in MainMenu with an empty grid.
func NewEngine(rng RandomSource) *Engine {
	return &Engine{rng: rng}
}

// SetRotationPolicy selects whether rotations are validated.
func (e *Engine) SetRotationPolicy(p RotationPolicy) {
	e.policy = p
}

// RotationPolicy returns the active rotation policy.
func (e *Engine) RotationPolicy() RotationPolicy {
	return e.policy
}

// Scheduler exposes the phase state.
func (e *Engine) Scheduler() *Scheduler {
	return &e.sched
}

// InitGrid empties the settled grid.
func (e *Engine) InitGrid() {
	e.settled = Grid{}
}

// ClearPiece removes the falling piece.
func (e *Engine) ClearPiece() {
	e.overlay = Grid{}
	e.current = PieceRandom
}

// GenerateBlock spawns a new falling piece at the spawn anchor.
// PieceRandom draws from the random source. It returns the piece spawned.
func (e *Engine) GenerateBlock(id PieceID) PieceID {
	if id == PieceRandom {
		id = RandomPiece(e.rng)
	}
	t, ok := Lookup(id)
	if !ok {
		return PieceRandom
	}
	e.spawnAt(t, SpawnX, SpawnY)
	return id
}

// spawnAt replaces the overlay with template t anchored at (ax, ay).
func (e *Engine) spawnAt(t Template, ax, ay int) {
	e.overlay = Grid{}
	e.anchorX = ax
	e.anchorY = ay
	e.current = t.ID
	for y := range BlockSize {
		for x := range BlockSize {
			if t.Shape[y][x] && InBounds(ax+x, ay+y) {
				e.overlay[ay+y][ax+x] = Filled(t.Color)
			}
		}
	}
}

// MoveCurrentBlock shifts the falling piece one cell. The shift is built in
// a scratch grid and committed only if every cell can move.
//
// Down and Up report ShouldSettle when the piece touches the floor (or
// ceiling) or the settled stack. Left and Right report Blocked at a wall or
// the stack. In both cases the piece is left where it was.
func (e *Engine) MoveCurrentBlock(dir Direction) MoveOutcome {
	var shifted Grid

	switch dir {
	case DirDown:
		for y := GridHeight - 1; y > 0; y-- {
			for x := range GridWidth {
				if y == GridHeight-1 && e.overlay[y][x].Occupied {
					return ShouldSettle
				}
				if e.overlay[y-1][x].Occupied && e.settled[y][x].Occupied {
					return ShouldSettle
				}
				shifted[y][x] = e.overlay[y-1][x]
			}
		}
		e.anchorY++

	case DirUp:
		for y := 0; y < GridHeight-1; y++ {
			for x := range GridWidth {
				if y == 0 && e.overlay[y][x].Occupied {
					return ShouldSettle
				}
				if e.overlay[y+1][x].Occupied && e.settled[y][x].Occupied {
					return ShouldSettle
				}
				shifted[y][x] = e.overlay[y+1][x]
			}
		}
		e.anchorY--

	case DirLeft:
		for y := range GridHeight {
			for x := 0; x < GridWidth-1; x++ {
				if x == 0 && e.overlay[y][x].Occupied {
					return Blocked
				}
				if e.overlay[y][x+1].Occupied && e.settled[y][x].Occupied {
					return Blocked
				}
				shifted[y][x] = e.overlay[y][x+1]
			}
		}
		e.anchorX--

	case DirRight:
		for y := range GridHeight {
			for x := GridWidth - 1; x > 0; x-- {
				if x == GridWidth-1 && e.overlay[y][x].Occupied {
					return Blocked
				}
				if e.overlay[y][x-1].Occupied && e.settled[y][x].Occupied {
					return Blocked
				}
				shifted[y][x] = e.overlay[y][x-1]
			}
		}
		e.anchorX++

	default:
		return Blocked
	}

	e.overlay = shifted
	return Moved
}

// RotateCurrentBlock turns the piece's 4x4 window a quarter turn around the
// current anchor. Under RotationValidated a rotation that would leave the
// grid or overlap the stack is rejected; under RotationUnchecked it is
// always committed. Reports whether the rotation was committed.
func (e *Engine) RotateCurrentBlock(r Rotation) bool {
	var window [BlockSize][BlockSize]Cell
	for y := range BlockSize {
		for x := range BlockSize {
			gx, gy := e.anchorX+x, e.anchorY+y
			if InBounds(gx, gy) {
				window[y][x] = e.overlay[gy][gx]
			}
		}
	}

	rotated := rotateWindow(window, r)

	if e.policy == RotationValidated {
		for y := range BlockSize {
			for x := range BlockSize {
				if !rotated[y][x].Occupied {
					continue
				}
				gx, gy := e.anchorX+x, e.anchorY+y
				if !InBounds(gx, gy) || e.settled[gy][gx].Occupied {
					return false
				}
			}
		}
	}

	for y := range BlockSize {
		for x := range BlockSize {
			gx, gy := e.anchorX+x, e.anchorY+y
			if InBounds(gx, gy) {
				e.overlay[gy][gx] = rotated[y][x]
			}
		}
	}
	return true
}

// PlaceCurrentBlock merges the falling piece into the settled grid, clears
// complete lines, updates the score, drops the forced-drop request and
// checks for the end of the game.
func (e *Engine) PlaceCurrentBlock() Placement {
	for y := range GridHeight {
		for x := range GridWidth {
			if e.overlay[y][x].Occupied {
				e.settled[y][x] = e.overlay[y][x]
			}
		}
	}
	e.ClearPiece()

	lines := e.ClearCompleteLines()
	p := Placement{
		Lines:  lines,
		Bucket: e.score.Record(lines),
	}
	e.forcedDrop = false
	p.Ended = e.CheckGameEnd()
	return p
}

// ClearCompleteLines removes every full row, compacting the rows above it,
// and returns how many rows were removed. The same row index is examined
// again after each compaction since new content has shifted into it.
func (e *Engine) ClearCompleteLines() int {
	cleared := 0
	for y := GridHeight - 1; y >= 0; {
		if !e.settled.RowFull(y) {
			y--
			continue
		}
		cleared++
		for ty := y; ty > 0; ty-- {
			e.settled[ty] = e.settled[ty-1]
		}
		e.settled[0] = [GridWidth]Cell{}
	}
	return cleared
}

// TopOut reports whether any settled cell sits in the top rows.
func (e *Engine) TopOut() bool {
	for y := range TopOutRows {
		for x := range GridWidth {
			if e.settled[y][x].Occupied {
				return true
			}
		}
	}
	return false
}

// CheckGameEnd moves a game in progress to Results when the stack has
// reached the top rows. Reports whether the transition happened.
func (e *Engine) CheckGameEnd() bool {
	if !e.sched.Playing() || !e.TopOut() {
		return false
	}
	return e.sched.Transition(PhaseResults) == nil
}

// ForceDrop requests gravity steps on every update until the piece lands.
func (e *Engine) ForceDrop() {
	e.forcedDrop = true
}

// ForcedDrop reports whether a forced drop is pending.
func (e *Engine) ForcedDrop() bool {
	return e.forcedDrop
}

// ResetScore zeroes all counters.
func (e *Engine) ResetScore() {
	e.score = Score{}
}

// Score returns the score counters.
func (e *Engine) Score() Score {
	return e.score
}

// Settled returns a copy of the settled grid.
func (e *Engine) Settled() Grid {
	return e.settled
}

// Overlay returns a copy of the falling-piece overlay.
func (e *Engine) Overlay() Grid {
	return e.overlay
}

// Anchor returns the top-left of the falling piece's window.
func (e *Engine) Anchor() core.Point {
	return core.Point{X: e.anchorX, Y: e.anchorY}
}

// Current returns the falling piece, or PieceRandom when there is none.
func (e *Engine) Current() PieceID {
	return e.current
}

// Composite returns the grid as displayed: settled cells with the falling
// piece shown wherever the settled grid is empty.
func (e *Engine) Composite() Grid {
	out := e.settled
	for y := range GridHeight {
		for x := range GridWidth {
			if !out[y][x].Occupied {
				out[y][x] = e.overlay[y][x]
			}
		}
	}
	return out
}

// ResetSession empties the grid, removes the falling piece, zeroes the
// score and cancels any forced drop.
func (e *Engine) ResetSession() {
	e.InitGrid()
	e.ClearPiece()
	e.ResetScore()
	e.forcedDrop = false
}
