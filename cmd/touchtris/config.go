package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration play and serve would use, after the config
file search and command-line overrides, as YAML.

Search order:
  --config <path>
  ~/.touchtris/configs/tetris.yaml
  ./configs/tetris.yaml
  built-in defaults

Examples:
  touchtris config > ~/.touchtris/configs/tetris.yaml
  touchtris config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
