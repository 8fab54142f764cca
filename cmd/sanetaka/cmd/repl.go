package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/siglang/sanetaka/internal/builtins"
	"github.com/siglang/sanetaka/internal/runtime"
	"github.com/siglang/sanetaka/pkg/sanetaka"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Sanetaka session",
	RunE:  runRepl,
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sanetaka_history")
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string
		for _, name := range builtins.Names() {
			if strings.HasPrefix(name, prefix) {
				matches = append(matches, name)
			}
		}
		return matches
	})

	if hist := historyPath(); hist != "" {
		if f, err := os.Open(hist); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	env := runtime.New(nil)
	fmt.Println("sanetaka repl - Ctrl-D to exit")

	for {
		input, err := line.Prompt("sanetaka> ")
		if err != nil {
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		opts := []sanetaka.Option{sanetaka.WithFile("<repl>"), sanetaka.WithEnvironment(env)}
		if traceFlag {
			opts = append(opts, sanetaka.WithTrace())
		}
		result, err := sanetaka.Run(input, opts...)
		if err != nil {
			reportErr(err, input, cfg)
			continue
		}
		fmt.Println(result.String())
	}

	if hist := historyPath(); hist != "" {
		if f, err := os.Create(hist); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}
