// Package sanetaka is the stable, embeddable entry point to the language:
// lex, parse, analyze, lower, and evaluate a source string in one call, or
// drive the pipeline stage by stage for tooling that needs the
// intermediate forms (an AST printer, an IR dumper, a REPL).
package sanetaka

import (
	"fmt"

	"github.com/siglang/sanetaka/internal/ast"
	"github.com/siglang/sanetaka/internal/compiler"
	"github.com/siglang/sanetaka/internal/errors"
	"github.com/siglang/sanetaka/internal/evaluator"
	"github.com/siglang/sanetaka/internal/ir"
	"github.com/siglang/sanetaka/internal/parser"
	"github.com/siglang/sanetaka/internal/runtime"
	"github.com/siglang/sanetaka/internal/semantic"
)

// Option configures a Run.
type Option func(*options)

type options struct {
	file  string
	trace bool
	env   *runtime.Environment
}

// WithFile sets the display name used in error messages. Defaults to
// "<input>".
func WithFile(name string) Option {
	return func(o *options) { o.file = name }
}

// WithTrace tags runtime errors with a per-run ID, useful when a REPL or
// test harness runs many evaluations in one process.
func WithTrace() Option {
	return func(o *options) { o.trace = true }
}

// WithEnvironment evaluates against an existing Environment instead of a
// fresh one, so a REPL can keep bindings alive across calls to Run.
func WithEnvironment(env *runtime.Environment) Option {
	return func(o *options) { o.env = env }
}

// Parse lexes and parses source, returning the AST or the parser's
// collected syntax errors as CompileErrors.
func Parse(source string, opts ...Option) (*ast.Program, []*errors.CompileError) {
	o := resolve(opts)
	program := parser.ParseProgram(source)
	if len(program.Errors) == 0 {
		return program, nil
	}
	out := make([]*errors.CompileError, len(program.Errors))
	for i, msg := range program.Errors {
		out[i] = &errors.CompileError{Message: msg, File: o.file}
	}
	return program, out
}

// Analyze runs the semantic analyzer over an already-parsed program.
func Analyze(program *ast.Program, opts ...Option) (*semantic.SymbolTable, []*errors.CompileError) {
	o := resolve(opts)
	table, errs := semantic.Analyze(program)
	if len(errs) == 0 {
		return table, nil
	}
	out := make([]*errors.CompileError, len(errs))
	for i, err := range errs {
		out[i] = errors.FromAnalysisError(err, o.file)
	}
	return table, out
}

// Compile lowers an analyzed program into IR.
func Compile(program *ast.Program, opts ...Option) (*ir.Program, *errors.CompileError) {
	o := resolve(opts)
	prog, err := compiler.CompileProgram(program)
	if err != nil {
		if ce, ok := err.(*compiler.Error); ok {
			return nil, errors.FromCompilerError(ce, o.file)
		}
		return nil, &errors.CompileError{Message: err.Error(), File: o.file}
	}
	return prog, nil
}

// Run lexes, parses, analyzes, lowers, and evaluates source end to end,
// returning the resulting value or the first error encountered at
// whichever stage it occurred.
func Run(source string, opts ...Option) (ir.LiteralValue, error) {
	o := resolve(opts)

	program, perrs := Parse(source, opts...)
	if len(perrs) > 0 {
		return ir.LiteralValue{}, perrs[0]
	}

	if _, aerrs := Analyze(program, opts...); len(aerrs) > 0 {
		return ir.LiteralValue{}, aerrs[0]
	}

	prog, cerr := Compile(program, opts...)
	if cerr != nil {
		return ir.LiteralValue{}, cerr
	}

	env := o.env
	if env == nil {
		env = runtime.New(nil)
	}

	ev := evaluator.New(o.trace)
	result, err := ev.Eval(prog, env)
	if err != nil {
		if re, ok := err.(*evaluator.Error); ok {
			return ir.LiteralValue{}, errors.FromEvaluatorError(re, o.file)
		}
		return ir.LiteralValue{}, fmt.Errorf("%s: %w", o.file, err)
	}
	return result, nil
}

func resolve(opts []Option) *options {
	o := &options{file: "<input>"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
