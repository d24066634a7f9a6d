package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touchtris/internal/games/tetris"
	"github.com/vovakirdan/touchtris/internal/storage"
)

// helpRows is the space reserved below the panel.
const helpRows = 2

// ModelConfig configures the console model.
type ModelConfig struct {
	TickRate int
	Width    int // Terminal size, 0 if unknown
	Height   int
	Logger   *log.Logger
}

// Model is the Bubble Tea model that drives one game controller.
type Model struct {
	game     *tetris.Game
	console  *Console
	store    *storage.Store
	ledger   LedgerView
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	tickRate int

	showLedger bool
	lastPhase  tetris.Phase
	quitting   bool
}

// NewModel creates a console for game. store may be nil.
func NewModel(game *tetris.Game, store *storage.Store, cfg ModelConfig) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	scale := 1
	if cfg.Width > 0 && cfg.Height > 0 {
		scale = FitScale(cfg.Width, cfg.Height, helpRows)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.Width

	return Model{
		game:     game,
		console:  NewConsole(scale),
		store:    store,
		ledger:   NewLedgerView(store, ConsoleRows*scale),
		keys:     DefaultKeyMap(),
		help:     h,
		logger:   logger,
		tickRate: cfg.TickRate,
	}
}

// Init powers the game on and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Init()
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Ledger):
		m.showLedger = !m.showLedger
		if m.showLedger {
			m.refreshLedger()
		}
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if ev, ok := m.keys.EventForKey(msg, m.game.Phase(), m.game.Layout()); ok {
		//nolint:errcheck // A full queue drops the key, like a missed touch
		m.game.Enqueue(ev)
	}
	return m, nil
}

// handleMouse turns a left press on the panel into a touch.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	px, py, ok := m.console.PanelPoint(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	p := m.game.Layout().FromPanel(px, py)
	//nolint:errcheck // A full queue drops the touch
	m.game.Enqueue(tetris.TouchEvent{Point: p})
	return m, nil
}

// handleResize picks the largest panel scale that fits.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.console.SetScale(FitScale(msg.Width, msg.Height, helpRows))
	m.ledger = NewLedgerView(m.store, ConsoleRows*m.console.Scale())
	if m.showLedger {
		m.refreshLedger()
	}
	m.help.Width = msg.Width
	return m, nil
}

// handleTick samples the clock and runs one controller iteration.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	//nolint:errcheck // Ticks are dropped when the queue is full
	m.game.Enqueue(tetris.TickEvent{Millis: m.game.Now()})
	m.game.Update()

	phase := m.game.Phase()
	if phase != m.lastPhase {
		m.logger.Debug("phase changed", "from", m.lastPhase, "to", phase)
		if phase == tetris.PhaseResults && m.showLedger {
			m.refreshLedger()
		}
		m.lastPhase = phase
	}

	return m, tickCmd(m.tickRate)
}

func (m *Model) refreshLedger() {
	if err := m.ledger.Refresh(); err != nil {
		m.logger.Warn("could not load results", "error", err)
	}
}

// saveScreenshot saves the current panel to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.console)

	dir := filepath.Join(os.Getenv("HOME"), ".touchtris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("touchtris_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.console.Screen().String()), 0o600)
}

// View renders the panel and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.console)
	panel := RenderScreen(m.console.Screen())
	if m.showLedger {
		panel = lipgloss.JoinHorizontal(lipgloss.Top, panel, "  ", m.ledger.View())
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return panel + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the controller driven by the model.
func (m Model) Game() *tetris.Game {
	return m.game
}

// Console returns the display the model paints.
func (m Model) Console() *Console {
	return m.console
}

// Run starts the Bubble Tea program for game.
func Run(game *tetris.Game, store *storage.Store, cfg ModelConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse presses are touches
	)

	_, err := p.Run()
	return err
}
