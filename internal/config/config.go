// Package config provides YAML-based configuration loading for the game,
// the touch panel and the console loop.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/touchtris/internal/core"
	"github.com/vovakirdan/touchtris/internal/games/tetris"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// TetrisConfig contains all configuration for a touchtris session.
type TetrisConfig struct {
	Gameplay GameplayConfig `yaml:"gameplay"`
	Touch    TouchConfig    `yaml:"touch"`
	Loop     LoopConfig     `yaml:"loop"`
}

// GameplayConfig defines engine parameters.
type GameplayConfig struct {
	GravityMs          int   `yaml:"gravity_ms"`
	RotationValidation bool  `yaml:"rotation_validation"`
	Seed               int64 `yaml:"seed"` // 0 = seed from the clock
}

// TouchConfig describes the digitizer and its control regions.
type TouchConfig struct {
	Orientation string    `yaml:"orientation"` // "portrait" or "portrait2"
	StartButton core.Rect `yaml:"start_button"`
	SplitX      int       `yaml:"split_x"`
	SplitY      int       `yaml:"split_y"`
}

// LoopConfig defines the console loop.
type LoopConfig struct {
	TickRate  int `yaml:"tick_rate"` // Updates per second
	QueueSize int `yaml:"queue_size"`
}

// Validate checks that the configuration can drive a game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Gameplay.GravityMs <= 0:
		return fmt.Errorf("%w: gravity_ms must be positive, got %d", ErrInvalidConfig, c.Gameplay.GravityMs)
	case c.Loop.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.Loop.TickRate)
	case c.Loop.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.Loop.QueueSize)
	case c.Touch.StartButton.Empty():
		return fmt.Errorf("%w: start_button is empty", ErrInvalidConfig)
	}

	switch tetris.Orientation(c.Touch.Orientation) {
	case tetris.OrientationPortrait, tetris.OrientationPortrait2:
	default:
		return fmt.Errorf("%w: unknown orientation %q", ErrInvalidConfig, c.Touch.Orientation)
	}

	if c.Touch.SplitX < 0 || c.Touch.SplitX >= tetris.PanelWidth {
		return fmt.Errorf("%w: split_x %d outside the panel", ErrInvalidConfig, c.Touch.SplitX)
	}
	if c.Touch.SplitY < 0 || c.Touch.SplitY >= tetris.PanelHeight {
		return fmt.Errorf("%w: split_y %d outside the panel", ErrInvalidConfig, c.Touch.SplitY)
	}
	return nil
}

// Layout returns the touch layout described by the config.
func (c TetrisConfig) Layout() tetris.TouchLayout {
	return tetris.TouchLayout{
		Orientation: tetris.Orientation(c.Touch.Orientation),
		StartButton: c.Touch.StartButton,
		SplitX:      c.Touch.SplitX,
		SplitY:      c.Touch.SplitY,
	}
}

// RotationPolicy maps rotation_validation to an engine policy.
func (c TetrisConfig) RotationPolicy() tetris.RotationPolicy {
	if c.Gameplay.RotationValidation {
		return tetris.RotationValidated
	}
	return tetris.RotationUnchecked
}

// Options returns the controller options for this config.
func (c TetrisConfig) Options() []tetris.Option {
	opts := []tetris.Option{
		tetris.WithLayout(c.Layout()),
		tetris.WithGravity(uint32(c.Gameplay.GravityMs)),
		tetris.WithRotationPolicy(c.RotationPolicy()),
		tetris.WithQueueSize(c.Loop.QueueSize),
	}
	if c.Gameplay.Seed != 0 {
		opts = append(opts, tetris.WithSeed(c.Gameplay.Seed))
	}
	return opts
}
