package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/touchtris/internal/config"
	"github.com/vovakirdan/touchtris/internal/games/tetris"
	"github.com/vovakirdan/touchtris/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the remote panel server.
type SSHServerConfig struct {
	// Address is the host:port to listen on.
	Address string

	// HostKeyPath defaults to ~/.touchtris/host_key; wish generates the key
	// on first start.
	HostKeyPath string

	IdleTimeout time.Duration

	// Game is applied to every session's controller.
	Game config.TetrisConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultTetrisConfig(),
	}
}

// SSHServer gives every SSH session its own panel and controller. All
// sessions report into one in-memory results ledger.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32

	// store is set once in NewSSHServer and never reassigned; sessions
	// read it concurrently.
	closeStore sync.Once
}

// NewSSHServer validates the game settings, opens the ledger and prepares
// the listener. Nothing is bound until Serve.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("cannot serve games: %w", err)
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	cfg.HostKeyPath = keyPath

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "touchtris-ssh",
	})
	s := &SSHServer{cfg: cfg, logger: logger}

	// A missing ledger only costs the BEST row and the ledger view.
	if store, openErr := storage.Open(); openErr != nil {
		s.logger.Warn("results ledger unavailable", "error", openErr)
	} else {
		s.store = store
	}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.sessionModel),
			s.trackSession,
		),
	)
	if err != nil {
		s.closeLedger()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// resolveHostKey fills in the default key location and makes sure its
// directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".touchtris", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSessionGame builds the controller for one player.
func (s *SSHServer) newSessionGame(user string) *tetris.Game {
	opts := append(s.cfg.Game.Options(),
		tetris.WithPlayer(user),
		tetris.WithLogger(s.logger.With("user", user)),
	)
	if s.store != nil {
		opts = append(opts, tetris.WithResultSaver(s.store))
	}
	return tetris.New(opts...)
}

func (s *SSHServer) sessionModel(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "touchtris needs a terminal: connect with ssh -t")
		return nil, nil
	}

	m := NewModel(s.newSessionGame(sess.User()), s.store, ModelConfig{
		TickRate: s.cfg.Game.Loop.TickRate,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Logger:   s.logger.With("user", sess.User()),
	})
	return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// trackSession logs each connection with its length and the number of
// panels still open.
func (s *SSHServer) trackSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		n := s.active.Add(1)
		s.logger.Info("panel opened", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", n)

		next(sess)

		n = s.active.Add(-1)
		s.logger.Info("panel closed", "user", sess.User(),
			"duration", time.Since(start).Round(time.Second), "active", n)
	}
}

// Active reports how many sessions are connected.
func (s *SSHServer) Active() int { return int(s.active.Load()) }

// Serve listens until ctx is cancelled, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address, "host_key", s.cfg.HostKeyPath)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeLedger()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "active", s.Active())
	return s.Shutdown()
}

// Shutdown stops accepting sessions and drops the results ledger once the
// server has stopped. Sessions outliving the grace period see a closed
// ledger and their results are not saved.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeLedger()
	return err
}

// closeLedger is safe to call more than once.
func (s *SSHServer) closeLedger() {
	if s.store == nil {
		return
	}
	s.closeStore.Do(func() {
		if n, err := s.store.Count(); err == nil {
			s.logger.Info("discarding results ledger", "games", n)
		}
		s.store.Close()
	})
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
