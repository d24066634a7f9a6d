package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/touchtris/internal/games/tetris"
	"github.com/vovakirdan/touchtris/internal/platform/tui"
	"github.com/vovakirdan/touchtris/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game on a virtual 240x320 touch panel.

Touch controls (mouse):
  Menu       - GO button starts a game
  Playing    - top half rotates, bottom half moves left/right
  Results    - any touch returns to the menu

Keys:
  Left/Right - Move
  Up/X, Z    - Rotate right, rotate left
  Space      - Drop button
  Enter      - Start / back to menu
  Tab        - Results of this run
  Q/Ctrl+C   - Quit

Examples:
  touchtris play
  touchtris play --seed 42
  touchtris play --validate-rotation=false
  touchtris play --log ./touchtris.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write debug log to this file")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The panel owns the terminal, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "touchtris",
	})

	// Get terminal size to pick the panel scale
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open results ledger", "error", err)
	} else {
		defer store.Close()
	}

	opts := append(cfg.Options(),
		tetris.WithLogger(logger),
		tetris.WithPlayer(playerName()),
	)
	if store != nil {
		opts = append(opts, tetris.WithResultSaver(store))
	}
	game := tetris.New(opts...)

	return tui.Run(game, store, tui.ModelConfig{
		TickRate: cfg.Loop.TickRate,
		Width:    width,
		Height:   height,
		Logger:   logger,
	})
}

// playerName returns the local user name for the results ledger.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
