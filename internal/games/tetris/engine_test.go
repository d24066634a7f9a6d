package tetris

import (
	"fmt"
	"testing"

	"github.com/vovakirdan/touchtris/internal/core"
)

// fixedRandom replays a list of values forever.
type fixedRandom struct {
	vals []uint32
	i    int
}

func (r *fixedRandom) Uint32() uint32 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func newTestEngine() *Engine {
	return NewEngine(&fixedRandom{vals: []uint32{0}})
}

// fillRow occupies every column of row y except the ones listed.
func fillRow(e *Engine, y int, skip ...int) {
	for x := range GridWidth {
		e.settled[y][x] = Filled(core.ColorGrey)
	}
	for _, x := range skip {
		e.settled[y][x] = Cell{}
	}
}

// dropAndPlace moves the current piece down until it lands, then places it.
func dropAndPlace(t *testing.T, e *Engine) Placement {
	t.Helper()
	for i := 0; i < GridHeight; i++ {
		if e.MoveCurrentBlock(DirDown) == ShouldSettle {
			return e.PlaceCurrentBlock()
		}
	}
	t.Fatal("piece never landed")
	return Placement{}
}

func TestGenerateBlockSpawn(t *testing.T) {
	e := newTestEngine()
	id := e.GenerateBlock(PieceI)

	if id != PieceI {
		t.Fatalf("GenerateBlock(PieceI) = %v, want I", id)
	}
	if a := e.Anchor(); a.X != SpawnX || a.Y != SpawnY {
		t.Errorf("Anchor() = %v, want (%d, %d)", a, SpawnX, SpawnY)
	}

	overlay := e.Overlay()
	if overlay.Count() != 4 {
		t.Errorf("overlay has %d cells, want 4", overlay.Count())
	}
	for x := 4; x <= 7; x++ {
		if overlay[1][x] != Filled(ColorI) {
			t.Errorf("overlay[1][%d] = %+v, want I color", x, overlay[1][x])
		}
	}
}

func TestGenerateBlockRandom(t *testing.T) {
	e := NewEngine(&fixedRandom{vals: []uint32{9, 6, 7}})

	want := []PieceID{PieceT, PieceL, PieceI}
	for i, w := range want {
		if got := e.GenerateBlock(PieceRandom); got != w {
			t.Errorf("draw %d: GenerateBlock(PieceRandom) = %v, want %v", i, got, w)
		}
	}
}

func TestGenerateBlockReplacesOverlay(t *testing.T) {
	e := newTestEngine()
	e.GenerateBlock(PieceI)
	e.MoveCurrentBlock(DirDown)
	e.GenerateBlock(PieceO)

	overlay := e.Overlay()
	if overlay.Count() != 4 {
		t.Fatalf("overlay has %d cells after respawn, want 4", overlay.Count())
	}
	if !overlay[1][5].Occupied || !overlay[2][6].Occupied {
		t.Error("O piece not stamped at spawn")
	}
}

func TestIPieceFallsToFloor(t *testing.T) {
	e := newTestEngine()
	e.GenerateBlock(PieceI)

	for i := 1; i <= 14; i++ {
		if got := e.MoveCurrentBlock(DirDown); got != Moved {
			t.Fatalf("move %d: got %v, want Moved", i, got)
		}
		if e.Anchor().Y != i {
			t.Fatalf("move %d: anchor.y = %d, want %d", i, e.Anchor().Y, i)
		}
	}

	before := e.Overlay()
	if got := e.MoveCurrentBlock(DirDown); got != ShouldSettle {
		t.Fatalf("move 15: got %v, want ShouldSettle", got)
	}
	if e.Overlay() != before || e.Anchor().Y != 14 {
		t.Fatal("piece moved on ShouldSettle")
	}

	p := e.PlaceCurrentBlock()
	if p.Lines != 0 || p.Bucket != -1 {
		t.Errorf("placement = %+v, want no lines", p)
	}

	settled := e.Settled()
	for x := range GridWidth {
		want := Cell{}
		if x >= 4 && x <= 7 {
			want = Filled(ColorI)
		}
		if settled[15][x] != want {
			t.Errorf("settled[15][%d] = %+v, want %+v", x, settled[15][x], want)
		}
	}
	if e.Overlay().Count() != 0 {
		t.Error("overlay not cleared by placement")
	}
	if n := e.ClearCompleteLines(); n != 0 {
		t.Errorf("ClearCompleteLines() = %d, want 0", n)
	}
}

func TestIllegalMovesLeavePieceUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
		dir   Direction
		want  MoveOutcome
	}{
		{
			name: "left wall",
			setup: func(e *Engine) {
				e.GenerateBlock(PieceI)
				for range 4 {
					e.MoveCurrentBlock(DirLeft)
				}
			},
			dir:  DirLeft,
			want: Blocked,
		},
		{
			name: "right wall",
			setup: func(e *Engine) {
				e.GenerateBlock(PieceI)
				for range 4 {
					e.MoveCurrentBlock(DirRight)
				}
			},
			dir:  DirRight,
			want: Blocked,
		},
		{
			name: "left into stack",
			setup: func(e *Engine) {
				e.settled[1][3] = Filled(core.ColorGrey)
				e.GenerateBlock(PieceI)
			},
			dir:  DirLeft,
			want: Blocked,
		},
		{
			name: "right into stack",
			setup: func(e *Engine) {
				e.settled[1][8] = Filled(core.ColorGrey)
				e.GenerateBlock(PieceI)
			},
			dir:  DirRight,
			want: Blocked,
		},
		{
			name: "down onto stack",
			setup: func(e *Engine) {
				e.settled[2][5] = Filled(core.ColorGrey)
				e.GenerateBlock(PieceI)
			},
			dir:  DirDown,
			want: ShouldSettle,
		},
		{
			name: "down on floor",
			setup: func(e *Engine) {
				e.GenerateBlock(PieceI)
				for range 14 {
					e.MoveCurrentBlock(DirDown)
				}
			},
			dir:  DirDown,
			want: ShouldSettle,
		},
		{
			name: "up at ceiling",
			setup: func(e *Engine) {
				e.GenerateBlock(PieceS)
			},
			dir:  DirUp,
			want: ShouldSettle,
		},
		{
			name: "up into stack",
			setup: func(e *Engine) {
				e.settled[0][5] = Filled(core.ColorGrey)
				e.GenerateBlock(PieceI)
			},
			dir:  DirUp,
			want: ShouldSettle,
		},
		{
			name: "unknown direction",
			setup: func(e *Engine) {
				e.GenerateBlock(PieceT)
			},
			dir:  Direction(42),
			want: Blocked,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			tc.setup(e)
			overlay, anchor := e.Overlay(), e.Anchor()

			if got := e.MoveCurrentBlock(tc.dir); got != tc.want {
				t.Errorf("MoveCurrentBlock(%v) = %v, want %v", tc.dir, got, tc.want)
			}
			if e.Overlay() != overlay {
				t.Error("overlay changed by rejected move")
			}
			if e.Anchor() != anchor {
				t.Errorf("anchor changed from %v to %v", anchor, e.Anchor())
			}
		})
	}
}

func TestLegalMovesShiftPiece(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
		{DirUp, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			e := newTestEngine()
			e.GenerateBlock(PieceI) // row 1, so Up has room
			before := e.Overlay()

			if got := e.MoveCurrentBlock(tc.dir); got != Moved {
				t.Fatalf("MoveCurrentBlock(%v) = %v, want Moved", tc.dir, got)
			}
			if a := e.Anchor(); a.X != SpawnX+tc.dx || a.Y != SpawnY+tc.dy {
				t.Errorf("anchor = %v, want (%d, %d)", a, SpawnX+tc.dx, SpawnY+tc.dy)
			}

			after := e.Overlay()
			for y := range GridHeight {
				for x := range GridWidth {
					if !before[y][x].Occupied {
						continue
					}
					if after[y+tc.dy][x+tc.dx] != before[y][x] {
						t.Errorf("cell (%d, %d) did not move to (%d, %d)", x, y, x+tc.dx, y+tc.dy)
					}
				}
			}
			if after.Count() != before.Count() {
				t.Errorf("cell count changed: %d -> %d", before.Count(), after.Count())
			}
		})
	}
}

func TestRotateFourTimesRestoresShape(t *testing.T) {
	policies := []RotationPolicy{RotationValidated, RotationUnchecked}

	for _, policy := range policies {
		for _, tmpl := range Catalog() {
			for ay := 0; ay <= GridHeight-BlockSize; ay++ {
				for ax := 0; ax <= GridWidth-BlockSize; ax++ {
					e := newTestEngine()
					e.SetRotationPolicy(policy)
					e.spawnAt(tmpl, ax, ay)
					before := e.Overlay()

					for i := range 4 {
						if !e.RotateCurrentBlock(RotateRight) {
							t.Fatalf("%s at (%d, %d): rotation %d rejected", tmpl.Name, ax, ay, i+1)
						}
					}
					if e.Overlay() != before {
						t.Fatalf("%s at (%d, %d), policy %d: four right turns changed the piece", tmpl.Name, ax, ay, policy)
					}
				}
			}
		}
	}
}

func TestRotateLeftUndoesRight(t *testing.T) {
	for _, tmpl := range Catalog() {
		e := newTestEngine()
		e.GenerateBlock(tmpl.ID)
		before := e.Overlay()

		e.RotateCurrentBlock(RotateRight)
		e.RotateCurrentBlock(RotateLeft)

		if e.Overlay() != before {
			t.Errorf("%s: right then left changed the piece", tmpl.Name)
		}
	}
}

func TestRotateIPieceRight(t *testing.T) {
	e := newTestEngine()
	e.GenerateBlock(PieceI)
	e.RotateCurrentBlock(RotateRight)

	overlay := e.Overlay()
	for y := range BlockSize {
		if overlay[y][6] != Filled(ColorI) {
			t.Errorf("overlay[%d][6] = %+v, want I color", y, overlay[y][6])
		}
	}
	if overlay.Count() != 4 {
		t.Errorf("overlay has %d cells, want 4", overlay.Count())
	}
}

func TestRotateOffGrid(t *testing.T) {
	setup := func(policy RotationPolicy) *Engine {
		e := newTestEngine()
		e.SetRotationPolicy(policy)
		e.GenerateBlock(PieceI)
		e.RotateCurrentBlock(RotateRight) // vertical in window column 2
		for e.MoveCurrentBlock(DirLeft) == Moved {
		}
		return e
	}

	t.Run("validated", func(t *testing.T) {
		e := setup(RotationValidated)
		if e.Anchor().X != -2 {
			t.Fatalf("anchor.x = %d, want -2", e.Anchor().X)
		}
		before := e.Overlay()

		if e.RotateCurrentBlock(RotateRight) {
			t.Error("rotation off the left edge was accepted")
		}
		if e.Overlay() != before {
			t.Error("rejected rotation changed the overlay")
		}
	})

	t.Run("unchecked", func(t *testing.T) {
		e := setup(RotationUnchecked)

		if !e.RotateCurrentBlock(RotateRight) {
			t.Fatal("unchecked rotation was rejected")
		}
		overlay := e.Overlay()
		if overlay.Count() != 2 {
			t.Errorf("overlay has %d cells, want 2 (the rest fell off the grid)", overlay.Count())
		}
		if !overlay[2][0].Occupied || !overlay[2][1].Occupied {
			t.Error("in-bounds rotated cells not written")
		}
	})
}

func TestRotateIntoStack(t *testing.T) {
	t.Run("validated", func(t *testing.T) {
		e := newTestEngine()
		e.settled[3][6] = Filled(core.ColorGrey)
		e.GenerateBlock(PieceI)
		before := e.Overlay()

		if e.RotateCurrentBlock(RotateRight) {
			t.Error("rotation into the stack was accepted")
		}
		if e.Overlay() != before {
			t.Error("rejected rotation changed the overlay")
		}
	})

	t.Run("unchecked", func(t *testing.T) {
		e := newTestEngine()
		e.SetRotationPolicy(RotationUnchecked)
		e.settled[3][6] = Filled(core.ColorGrey)
		e.GenerateBlock(PieceI)

		if !e.RotateCurrentBlock(RotateRight) {
			t.Fatal("unchecked rotation was rejected")
		}
		if !e.Overlay()[3][6].Occupied {
			t.Error("unchecked rotation should overlap the stack")
		}
	})
}

// markRows gives each row one distinctive cell so shifts are observable.
func markRows(e *Engine, rows ...int) {
	for _, y := range rows {
		e.settled[y][y%GridWidth] = Filled(core.Color(0x1000 + y))
	}
}

func TestClearOneLine(t *testing.T) {
	const r = 10
	e := newTestEngine()
	markRows(e, 0, 3, 5, 9, 11, 14)
	fillRow(e, r)
	before := e.Settled()

	if n := e.ClearCompleteLines(); n != 1 {
		t.Fatalf("ClearCompleteLines() = %d, want 1", n)
	}

	after := e.Settled()
	if after[0] != ([GridWidth]Cell{}) {
		t.Error("row 0 not empty after clear")
	}
	for y := 1; y <= r; y++ {
		if after[y] != before[y-1] {
			t.Errorf("row %d is not old row %d", y, y-1)
		}
	}
	for y := r + 1; y < GridHeight; y++ {
		if after[y] != before[y] {
			t.Errorf("row %d below the clear changed", y)
		}
	}
}

func TestClearTwoLines(t *testing.T) {
	tests := []struct {
		name   string
		r1, r2 int
	}{
		{"apart", 8, 12},
		{"adjacent", 14, 15},
		{"top and bottom", 0, 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			markRows(e, 1, 2, 5, 9, 10, 13)
			fillRow(e, tc.r1)
			fillRow(e, tc.r2)
			before := e.Settled()

			var want Grid
			var kept [][GridWidth]Cell
			for y := range GridHeight {
				if y != tc.r1 && y != tc.r2 {
					kept = append(kept, before[y])
				}
			}
			for i, row := range kept {
				want[2+i] = row
			}

			if n := e.ClearCompleteLines(); n != 2 {
				t.Fatalf("ClearCompleteLines() = %d, want 2", n)
			}
			if e.Settled() != want {
				t.Error("grid after clearing two rows does not match")
			}
		})
	}
}

func TestClearFourStackedLines(t *testing.T) {
	e := newTestEngine()
	for y := 12; y < GridHeight; y++ {
		fillRow(e, y)
	}
	markRows(e, 11)

	if n := e.ClearCompleteLines(); n != 4 {
		t.Fatalf("ClearCompleteLines() = %d, want 4", n)
	}
	settled := e.Settled()
	if settled.Count() != 1 || !settled[15][11].Occupied {
		t.Error("marker row should have dropped to the floor")
	}
}

func TestPlacementScoreBuckets(t *testing.T) {
	tests := []struct {
		lines  int
		bucket int
	}{
		{0, -1},
		{1, BucketSingle},
		{2, BucketDouble},
		{3, BucketTriple},
		{4, BucketTetris},
		{5, BucketTetris},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d lines", tc.lines), func(t *testing.T) {
			e := newTestEngine()
			if tc.lines == 0 {
				e.overlay[15][0] = Filled(ColorI)
			}
			for i := 0; i < tc.lines; i++ {
				y := GridHeight - 1 - i
				fillRow(e, y, 0)
				e.overlay[y][0] = Filled(ColorI)
			}

			p := e.PlaceCurrentBlock()
			if p.Lines != tc.lines {
				t.Errorf("Lines = %d, want %d", p.Lines, tc.lines)
			}
			if p.Bucket != tc.bucket {
				t.Errorf("Bucket = %d, want %d", p.Bucket, tc.bucket)
			}

			var want Score
			if tc.bucket >= 0 {
				want[tc.bucket] = 1
			}
			if e.Score() != want {
				t.Errorf("Score() = %v, want %v", e.Score(), want)
			}
		})
	}
}

func TestPlacementClearsForcedDrop(t *testing.T) {
	e := newTestEngine()
	e.GenerateBlock(PieceO)
	e.ForceDrop()

	dropAndPlace(t, e)

	if e.ForcedDrop() {
		t.Error("forced drop still pending after placement")
	}
}

func TestCheckGameEnd(t *testing.T) {
	tests := []struct {
		name  string
		row   int
		ended bool
	}{
		{"row 0", 0, true},
		{"row 3", 3, true},
		{"row 4", 4, false},
		{"row 15", 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			if err := e.Scheduler().Transition(PhasePlaying); err != nil {
				t.Fatal(err)
			}
			e.settled[tc.row][0] = Filled(core.ColorGrey)
			e.overlay[10][6] = Filled(ColorO)

			p := e.PlaceCurrentBlock()
			if p.Ended != tc.ended {
				t.Errorf("Ended = %v, want %v", p.Ended, tc.ended)
			}
			wantPhase := PhasePlaying
			if tc.ended {
				wantPhase = PhaseResults
			}
			if e.Scheduler().Phase() != wantPhase {
				t.Errorf("phase = %v, want %v", e.Scheduler().Phase(), wantPhase)
			}
		})
	}
}

func TestGameEndOnlyAfterPlacement(t *testing.T) {
	e := newTestEngine()
	if err := e.Scheduler().Transition(PhasePlaying); err != nil {
		t.Fatal(err)
	}
	e.settled[0][0] = Filled(core.ColorGrey)
	e.GenerateBlock(PieceO)

	e.MoveCurrentBlock(DirDown)
	e.MoveCurrentBlock(DirRight)
	e.RotateCurrentBlock(RotateLeft)
	if !e.Scheduler().Playing() {
		t.Fatal("phase changed before any placement")
	}

	dropAndPlace(t, e)
	if !e.Scheduler().InResults() {
		t.Error("placement with a topped-out stack did not end the game")
	}
}

func TestGameEndIgnoredOutsidePlay(t *testing.T) {
	e := newTestEngine()
	e.settled[0][0] = Filled(core.ColorGrey)
	e.overlay[15][0] = Filled(ColorI)

	if p := e.PlaceCurrentBlock(); p.Ended {
		t.Error("placement in the menu ended a game")
	}
	if !e.Scheduler().InMenu() {
		t.Errorf("phase = %v, want MainMenu", e.Scheduler().Phase())
	}
}

func TestBottomRowFilledByFourPlacements(t *testing.T) {
	e := newTestEngine()

	// Columns 0-3
	e.GenerateBlock(PieceI)
	for range 4 {
		e.MoveCurrentBlock(DirLeft)
	}
	if p := dropAndPlace(t, e); p.Lines != 0 {
		t.Fatalf("first placement cleared %d lines", p.Lines)
	}

	// Columns 4-7
	e.GenerateBlock(PieceI)
	if p := dropAndPlace(t, e); p.Lines != 0 {
		t.Fatalf("second placement cleared %d lines", p.Lines)
	}

	// Column 8, standing upright
	e.GenerateBlock(PieceI)
	e.RotateCurrentBlock(RotateRight)
	e.MoveCurrentBlock(DirRight)
	e.MoveCurrentBlock(DirRight)
	if p := dropAndPlace(t, e); p.Lines != 0 {
		t.Fatalf("third placement cleared %d lines", p.Lines)
	}

	settled := e.Settled()
	for x := 0; x <= 8; x++ {
		if !settled[15][x].Occupied {
			t.Fatalf("bottom row column %d empty after three placements", x)
		}
	}

	// Columns 9-11
	e.GenerateBlock(PieceL)
	for range 4 {
		e.MoveCurrentBlock(DirRight)
	}
	p := dropAndPlace(t, e)
	if p.Lines != 1 {
		t.Fatalf("fourth placement cleared %d lines, want 1", p.Lines)
	}

	settled = e.Settled()
	if settled[15][8] != Filled(ColorI) || settled[15][11] != Filled(ColorL) {
		t.Error("rows above the cleared line did not shift down")
	}
	if settled[14][8] != Filled(ColorI) || settled[13][8] != Filled(ColorI) || settled[12][8].Occupied {
		t.Error("upright I piece did not shift down by one")
	}
	for x := range GridWidth {
		want := x == 8 || x == 11
		if settled[15][x].Occupied != want {
			t.Errorf("row 15 column %d occupied = %v, want %v", x, settled[15][x].Occupied, want)
		}
	}
	if settled.Count() != 4 {
		t.Errorf("settled has %d cells, want 4", settled.Count())
	}
	if e.Score().Singles() != 1 {
		t.Errorf("Singles() = %d, want 1", e.Score().Singles())
	}
}

func TestComposite(t *testing.T) {
	e := newTestEngine()
	e.settled[15][0] = Filled(core.ColorGrey)
	e.GenerateBlock(PieceI)

	c := e.Composite()
	if c.Count() != 5 {
		t.Errorf("composite has %d cells, want 5", c.Count())
	}
	if c[15][0].Color != core.ColorGrey || c[1][4].Color != ColorI {
		t.Error("composite missing settled or falling cells")
	}
}
