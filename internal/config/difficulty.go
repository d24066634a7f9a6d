package config

import "fmt"

// DifficultyPreset is a named gravity speed.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// GravityForPreset returns the gravity interval in ms for a preset.
func GravityForPreset(preset DifficultyPreset) (int, bool) {
	switch preset {
	case DifficultyEasy:
		return 1500, true
	case DifficultyNormal:
		return 1000, true
	case DifficultyHard:
		return 500, true
	default:
		return 0, false
	}
}

// ApplyPreset sets the gravity interval from a preset. An empty preset
// leaves the config unchanged.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	ms, ok := GravityForPreset(preset)
	if !ok {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, preset)
	}
	cfg.Gameplay.GravityMs = ms
	return nil
}
