package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siglang/sanetaka/internal/lexer"
)

var lexEvalFlag string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Lex a source file and print its token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().StringVarP(&lexEvalFlag, "eval", "e", "", "lex this source instead of reading a file")
}

func runLex(cmd *cobra.Command, args []string) error {
	source, _, err := readSource(lexEvalFlag, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok := l.NextToken()
		fmt.Fprintln(os.Stdout, tok.String())
		if tok.Kind == lexer.EOF {
			break
		}
	}
	return nil
}
