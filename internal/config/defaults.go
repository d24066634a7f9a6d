package config

import (
	_ "embed"

	"github.com/vovakirdan/touchtris/internal/core"
	"github.com/vovakirdan/touchtris/internal/games/tetris"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the configuration of the reference hardware.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Gameplay: GameplayConfig{
			GravityMs:          tetris.DefaultGravityMs,
			RotationValidation: true,
		},
		Touch: TouchConfig{
			Orientation: string(tetris.OrientationPortrait2),
			StartButton: core.NewRect(20, 20, 200, 120),
			SplitX:      119,
			SplitY:      159,
		},
		Loop: LoopConfig{
			TickRate:  30,
			QueueSize: tetris.DefaultQueueSize,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
