package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siglang/sanetaka/pkg/sanetaka"
)

var parseEvalFlag string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseEvalFlag, "eval", "e", "", "parse this source instead of reading a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	source, file, err := readSource(parseEvalFlag, args)
	if err != nil {
		return err
	}

	program, errs := sanetaka.Parse(source, sanetaka.WithFile(file))
	if len(errs) > 0 {
		for _, e := range errs {
			reportErr(e, source, cfg)
		}
		return fmt.Errorf("%d parse error(s)", len(errs))
	}

	fmt.Println(program.String())
	return nil
}
