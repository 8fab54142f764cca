// Package errors renders Sanetaka's two closed error families - compile
// errors and runtime errors - as a source-annotated block with an optional
// colorized caret under the offending column.
package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/siglang/sanetaka/internal/compiler"
	"github.com/siglang/sanetaka/internal/evaluator"
	"github.com/siglang/sanetaka/internal/lexer"
	"github.com/siglang/sanetaka/internal/semantic"
	"github.com/siglang/sanetaka/internal/types"
)

// CompileError is raised anywhere before evaluation: lexing, parsing,
// analysis, or lowering. It always carries the position of the offending
// source text.
type CompileError struct {
	Message  string
	File     string
	Position lexer.Position
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.File, e.Message, e.Position)
}

// RuntimeError is raised during evaluation. Shape mirrors CompileError so
// both render through the same Format.
type RuntimeError struct {
	Message  string
	File     string
	Position lexer.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.File, e.Message, e.Position)
}

// FromTypeError adapts a *types.TypeError - which deliberately knows
// nothing about this package, to avoid an import cycle - into a
// CompileError for CLI rendering.
func FromTypeError(err *types.TypeError, file string) *CompileError {
	return &CompileError{Message: err.Error(), File: file, Position: err.Position}
}

// FromAnalysisError adapts one error returned from semantic.Analyze, which
// is either a *types.TypeError or a *semantic.RedefinedError.
func FromAnalysisError(err error, file string) *CompileError {
	switch e := err.(type) {
	case *types.TypeError:
		return FromTypeError(e, file)
	case *semantic.RedefinedError:
		return &CompileError{Message: fmt.Sprintf("%q is already defined in this scope", e.Name), File: file, Position: e.Position}
	default:
		return &CompileError{Message: err.Error(), File: file}
	}
}

// FromCompilerError adapts a lowering failure.
func FromCompilerError(err *compiler.Error, file string) *CompileError {
	return &CompileError{Message: err.Message, File: file, Position: err.Position}
}

// FromEvaluatorError adapts a runtime failure. A run ID set on err (trace
// mode) is kept as a "(run ID)" suffix on the message.
func FromEvaluatorError(err *evaluator.Error, file string) *RuntimeError {
	msg := err.Message
	if err.RunID != "" {
		msg = fmt.Sprintf("%s (run %s)", msg, err.RunID)
	}
	return &RuntimeError{Message: msg, File: file, Position: err.Position}
}

// ColorMode mirrors the --config color setting.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Enabled resolves a ColorMode against whether stderr is a terminal.
func Enabled(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
}

// Format renders one error as a source-annotated block: the message, the
// offending line, and a caret under the offending column.
func Format(message string, file, source string, pos lexer.Position, useColor bool) string {
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan)
	if !useColor {
		red.DisableColor()
		cyan.DisableColor()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", red.Sprint("error"), message)
	fmt.Fprintf(&b, "  %s %s:%s\n", cyan.Sprint("-->"), file, pos)

	lines := strings.Split(source, "\n")
	if pos.Line >= 1 && pos.Line <= len(lines) {
		line := lines[pos.Line-1]
		fmt.Fprintf(&b, "   %s\n", line)
		col := pos.Column
		if col < 1 {
			col = 1
		}
		fmt.Fprintf(&b, "   %s%s\n", strings.Repeat(" ", col-1), red.Sprint("^"))
	}
	return b.String()
}

// FormatErrors renders a batch of CompileErrors, one block per error,
// separated by a blank line.
func FormatErrors(errs []*CompileError, source string, useColor bool) string {
	blocks := make([]string, len(errs))
	for i, e := range errs {
		blocks[i] = Format(e.Message, e.File, source, e.Position, useColor)
	}
	return strings.Join(blocks, "\n")
}
