// Package cmd implements the sanetaka command-line tool: a cobra tree
// covering one-shot evaluation, pipeline-stage inspection, and an
// interactive REPL, following the same subcommand layout the teacher's
// own CLI uses.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/siglang/sanetaka/internal/errors"
)

var (
	configPath string
	colorFlag  string
	traceFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "sanetaka",
	Short: "Sanetaka language toolchain",
	Long:  "sanetaka lexes, parses, analyzes, lowers, and evaluates Sanetaka source files.",
}

// Execute runs the CLI, returning the error cobra reports (if any) so
// main can pick an exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "auto|always|never, overrides config")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "tag runtime errors with a per-run ID")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
}

func resolveConfig() (*Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if colorFlag != "" {
		cfg.Color = errors.ColorMode(colorFlag)
	}
	return cfg, nil
}
