package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siglang/sanetaka/internal/errors"
	"github.com/siglang/sanetaka/internal/runtime"
	"github.com/siglang/sanetaka/pkg/sanetaka"
)

var evalFlag string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a Sanetaka source file or an inline expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&evalFlag, "eval", "e", "", "evaluate this source instead of reading a file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	source, file, err := readSource(evalFlag, args)
	if err != nil {
		return err
	}

	env := runtime.New(nil)
	for _, preload := range cfg.Preload {
		data, err := os.ReadFile(preload)
		if err != nil {
			return err
		}
		if _, err := sanetaka.Run(string(data), sanetaka.WithFile(preload), sanetaka.WithEnvironment(env)); err != nil {
			return reportErr(err, string(data), cfg)
		}
	}

	opts := []sanetaka.Option{sanetaka.WithFile(file), sanetaka.WithEnvironment(env)}
	if traceFlag {
		opts = append(opts, sanetaka.WithTrace())
	}
	result, err := sanetaka.Run(source, opts...)
	if err != nil {
		return reportErr(err, source, cfg)
	}

	fmt.Println(result.String())
	return nil
}

// readSource resolves the "inline expression vs. file argument" precedence
// shared by run, parse, and lex.
func readSource(inline string, args []string) (source, file string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 0 {
		return "", "", fmt.Errorf("expected a file argument or --eval")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}

func reportErr(err error, source string, cfg *Config) error {
	useColor := errors.Enabled(cfg.Color)
	switch e := err.(type) {
	case *errors.CompileError:
		fmt.Fprint(os.Stderr, errors.Format(e.Message, e.File, source, e.Position, useColor))
	case *errors.RuntimeError:
		fmt.Fprint(os.Stderr, errors.Format(e.Message, e.File, source, e.Position, useColor))
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
