package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "tetris.yaml"

// LoadTetris loads the configuration.
// Search order: customPath -> ~/.touchtris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Fields missing from a file keep their default values.
func LoadTetris(customPath string) (TetrisConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", configFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTetrisYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile loads an optional config file. Unreadable or invalid files are
// skipped so the next location is tried.
func tryFile(path string) (TetrisConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TetrisConfig{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return TetrisConfig{}, false
	}
	return cfg, true
}

// parse decodes data over the hard-coded defaults.
func parse(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".touchtris", "configs", filename)
}
