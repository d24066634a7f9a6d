package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultGravityMs is the interval between gravity steps.
const DefaultGravityMs = 1000

// SessionResult is the outcome of one game, reported when it ends.
type SessionResult struct {
	Player     string
	Score      Score
	DurationMs uint32
}

// ResultSaver records finished games. Implemented by the storage package.
type ResultSaver interface {
	SaveResult(r SessionResult) error
	BestLines() (int, error)
}

// Game is the controller. It exclusively owns the engine and is driven
// either by direct calls from one goroutine or through its event queue.
type Game struct {
	engine *Engine
	layout TouchLayout
	clock  Clock
	rng    RandomSource
	queue  *EventQueue
	logger *log.Logger
	saver  ResultSaver
	player string

	policy    RotationPolicy
	queueSize int
	gravityMs uint32

	lastUpdate uint32
	startTime  uint32
	elapsed    uint32
	best       int
	hasBest    bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithClock sets the millisecond clock.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithRandom sets the piece random source.
func WithRandom(r RandomSource) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed seeds a math/rand source for piece selection.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewSource(seed)) }
}

// WithLayout sets the touch layout.
func WithLayout(l TouchLayout) Option {
	return func(g *Game) { g.layout = l }
}

// WithGravity sets the gravity interval in milliseconds.
func WithGravity(ms uint32) Option {
	return func(g *Game) {
		if ms > 0 {
			g.gravityMs = ms
		}
	}
}

// WithRotationPolicy selects rotation validation.
func WithRotationPolicy(p RotationPolicy) Option {
	return func(g *Game) { g.policy = p }
}

// WithQueueSize sets the event queue capacity.
func WithQueueSize(n int) Option {
	return func(g *Game) { g.queueSize = n }
}

// WithResultSaver records finished games.
func WithResultSaver(s ResultSaver) Option {
	return func(g *Game) { g.saver = s }
}

// WithPlayer names the player in saved results.
func WithPlayer(name string) Option {
	return func(g *Game) { g.player = name }
}

// New creates a controller. Call Init before use.
func New(opts ...Option) *Game {
	g := &Game{
		layout:    DefaultTouchLayout(),
		gravityMs: DefaultGravityMs,
		queueSize: DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.clock == nil {
		g.clock = NewSystemClock()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.queue = NewEventQueue(g.queueSize)
	g.engine = NewEngine(g.rng)
	g.engine.SetRotationPolicy(g.policy)
	return g
}

// Init powers the game on into the main menu.
func (g *Game) Init() {
	g.engine.Scheduler().Reset()
	g.enterMenu()
	g.logger.Debug("initialized", "phase", g.Phase())
}

// enterMenu rebuilds the menu backdrop.
func (g *Game) enterMenu() {
	g.engine.ResetSession()
	g.engine.arrangeAttract()
	g.engine.ClearPiece()
}

// StartSession leaves the menu and begins a new game.
func (g *Game) StartSession() error {
	if err := g.engine.Scheduler().Transition(PhasePlaying); err != nil {
		return err
	}
	g.engine.ResetSession()
	id := g.engine.GenerateBlock(PieceRandom)

	now := g.clock.Millis()
	g.lastUpdate = now
	g.startTime = now
	g.elapsed = 0
	g.logger.Info("game started", "player", g.player, "piece", id)
	return nil
}

// ReturnToMenu leaves the results screen.
func (g *Game) ReturnToMenu() error {
	if err := g.engine.Scheduler().Transition(PhaseMainMenu); err != nil {
		return err
	}
	g.enterMenu()
	g.logger.Debug("back to menu")
	return nil
}

// Enqueue hands an input event to the controller. It never blocks; a full
// queue drops the event and returns ErrQueueFull.
func (g *Game) Enqueue(ev Event) error {
	if err := g.queue.Push(ev); err != nil {
		g.logger.Warn("dropped input event", "event", ev, "error", err)
		return err
	}
	return nil
}

// Update drains the event queue once. It is the body of one loop iteration
// and returns how many events were handled.
func (g *Game) Update() int {
	return g.queue.Drain(g.handleEvent)
}

func (g *Game) handleEvent(ev Event) {
	switch e := ev.(type) {
	case TouchEvent:
		g.HandleTouch(e.Point)
	case ButtonEvent:
		g.PressButton()
	case TickEvent:
		g.Tick(e.Millis)
	}
}

// HandleTouch reacts to a touch at p according to the current phase.
func (g *Game) HandleTouch(p TouchPoint) Command {
	cmd := g.layout.Dispatch(g.Phase(), p)
	g.execute(cmd)
	return cmd
}

func (g *Game) execute(cmd Command) {
	switch cmd {
	case CommandStartGame:
		if err := g.StartSession(); err != nil {
			g.logger.Warn("cannot start game", "error", err)
		}
	case CommandMoveLeft:
		g.move(DirLeft)
	case CommandMoveRight:
		g.move(DirRight)
	case CommandRotateLeft:
		g.rotate(RotateLeft)
	case CommandRotateRight:
		g.rotate(RotateRight)
	case CommandReturnToMenu:
		if err := g.ReturnToMenu(); err != nil {
			g.logger.Warn("cannot return to menu", "error", err)
		}
	}
}

func (g *Game) move(dir Direction) {
	outcome := g.engine.MoveCurrentBlock(dir)
	g.logger.Debug("move", "dir", dir, "outcome", outcome)
	if outcome == ShouldSettle {
		g.settle(g.clock.Millis())
	}
}

func (g *Game) rotate(r Rotation) {
	if !g.engine.RotateCurrentBlock(r) {
		g.logger.Debug("rotation rejected", "rotation", r, "anchor", g.engine.Anchor())
	}
}

// PressButton requests a forced drop of the falling piece.
func (g *Game) PressButton() {
	if !g.engine.Scheduler().Playing() {
		return
	}
	g.engine.ForceDrop()
}

// Tick runs the gravity gate with a clock sample. The piece steps down once
// the interval has passed since the last step, or on every tick while a
// forced drop is pending.
func (g *Game) Tick(now uint32) {
	if !g.engine.Scheduler().Playing() {
		return
	}
	if now-g.lastUpdate < g.gravityMs && !g.engine.ForcedDrop() {
		return
	}
	if g.engine.MoveCurrentBlock(DirDown) == ShouldSettle {
		g.settle(now)
	}
	g.lastUpdate = now
}

// settle places the falling piece and either spawns the next one or ends
// the game.
func (g *Game) settle(now uint32) {
	p := g.engine.PlaceCurrentBlock()
	g.logger.Debug("placed block", "lines", p.Lines, "bucket", p.Bucket)
	if p.Lines > 0 {
		g.logger.Info("lines cleared", "lines", p.Lines, "score", g.engine.Score())
	}
	if p.Ended {
		g.finish(now)
		return
	}
	g.engine.GenerateBlock(PieceRandom)
}

// finish records the result of the game that just ended.
func (g *Game) finish(now uint32) {
	g.elapsed = now - g.startTime
	score := g.engine.Score()
	g.logger.Info("game over", "player", g.player, "duration_ms", g.elapsed, "lines", score.Lines())

	if g.saver == nil {
		return
	}
	result := SessionResult{Player: g.player, Score: score, DurationMs: g.elapsed}
	if err := g.saver.SaveResult(result); err != nil {
		g.logger.Error("could not save result", "error", err)
	}
	best, err := g.saver.BestLines()
	if err != nil {
		g.logger.Error("could not load best result", "error", err)
		g.hasBest = false
		return
	}
	g.best = best
	g.hasBest = true
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.engine.Scheduler().Phase()
}

// InMenu reports whether the main menu is showing.
func (g *Game) InMenu() bool { return g.engine.Scheduler().InMenu() }

// Playing reports whether a game is in progress.
func (g *Game) Playing() bool { return g.engine.Scheduler().Playing() }

// InResults reports whether the results screen is showing.
func (g *Game) InResults() bool { return g.engine.Scheduler().InResults() }

// Layout returns the touch layout in use.
func (g *Game) Layout() TouchLayout {
	return g.layout
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Now samples the controller's clock.
func (g *Game) Now() uint32 {
	return g.clock.Millis()
}

// Elapsed returns the length of the last finished game in milliseconds.
func (g *Game) Elapsed() uint32 {
	return g.elapsed
}
