// touchtris is a falling-block puzzle for a 240x320 touch panel, played in
// the terminal: the mouse is the touch digitizer and space is the drop button.
//
// Usage:
//
//	touchtris play           - Play in this terminal
//	touchtris serve          - Start SSH server for remote play
//	touchtris pieces         - Show the piece catalog
//	touchtris config         - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>              - Set loop rate (default: from config)
//	--seed <value>            - Set RNG seed for reproducible gameplay
//	--config <path>           - Use a custom config YAML
//	--validate-rotation=false - Let rotations pass through walls and the stack
//	--difficulty <preset>     - Gravity preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touchtris/internal/config"
)

var (
	// Global flags
	flagFPS              int
	flagSeed             int64
	flagConfig           string
	flagValidateRotation bool
	flagDifficulty       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "touchtris",
	Short: "touchtris - falling blocks on a virtual touch panel",
	Long: `touchtris runs the falling-block game of a small touch-screen
device in your terminal. Click the panel to touch it; space is the
drop button.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  pieces   - Show the piece catalog
  config   - Print the effective configuration

Examples:
  touchtris play
  touchtris play --difficulty hard
  touchtris serve --ssh :2222
  touchtris pieces --rotations`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Loop rate in ticks per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagValidateRotation, "validate-rotation", true, "Reject rotations into walls or the stack")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Gravity preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(piecesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}

	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Loop.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Gameplay.Seed = flagSeed
	}
	if cmd.Flags().Changed("validate-rotation") {
		cfg.Gameplay.RotationValidation = flagValidateRotation
	}

	return cfg, cfg.Validate()
}
