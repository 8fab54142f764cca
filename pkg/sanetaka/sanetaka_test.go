package sanetaka

import (
	"math"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/siglang/sanetaka/internal/errors"
	"github.com/siglang/sanetaka/internal/ir"
	"github.com/siglang/sanetaka/internal/runtime"
)

func TestRunArithmetic(t *testing.T) {
	v, err := Run(`return 2 + 3 * 4;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != ir.Number || v.NumberValue != 14 {
		t.Fatalf("got %s, want 14", v)
	}
}

func TestRunSyntaxErrorIsCompileError(t *testing.T) {
	_, err := Run(`let x: number = ;`, WithFile("bad.snt"))
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if _, ok := err.(*errors.CompileError); !ok {
		t.Fatalf("got %T, want *errors.CompileError", err)
	}
}

func TestRunTypeErrorIsCompileError(t *testing.T) {
	_, err := Run(`let x: number = "oops";`)
	if err == nil {
		t.Fatalf("expected a type error")
	}
	if _, ok := err.(*errors.CompileError); !ok {
		t.Fatalf("got %T, want *errors.CompileError", err)
	}
}

func TestRunRuntimeErrorIsRuntimeError(t *testing.T) {
	_, err := Run(`let arr: auto = [1]; return arr[5];`)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if _, ok := err.(*errors.RuntimeError); !ok {
		t.Fatalf("got %T, want *errors.RuntimeError", err)
	}
}

func TestRunDivisionByZeroProducesInfinity(t *testing.T) {
	v, err := Run(`return 1 / 0;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != ir.Number || !math.IsInf(v.NumberValue, 1) {
		t.Fatalf("got %s, want +Inf", v)
	}
}

func TestRunWithSharedEnvironmentPersistsBindings(t *testing.T) {
	env := runtime.New(nil)
	if _, err := Run(`let x: number = 10;`, WithEnvironment(env)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := Run(`return x + 1;`, WithEnvironment(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != ir.Number || v.NumberValue != 11 {
		t.Fatalf("got %s, want 11", v)
	}
}

func TestParseReturnsSyntaxErrors(t *testing.T) {
	_, errs := Parse(`let x: number = ;`)
	if len(errs) == 0 {
		t.Fatalf("expected at least one syntax error")
	}
}

func TestParseThenAnalyzeThenCompile(t *testing.T) {
	program, perrs := Parse(`let x: number = 5; return x * 2;`)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	if _, aerrs := Analyze(program); len(aerrs) != 0 {
		t.Fatalf("unexpected analysis errors: %v", aerrs)
	}
	prog, cerr := Compile(program)
	if cerr != nil {
		t.Fatalf("unexpected compile error: %v", cerr)
	}
	if len(prog.Instructions) != 2 {
		t.Fatalf("len(Instructions) = %d, want 2", len(prog.Instructions))
	}
}

func TestAnalyzeReportsUndefinedName(t *testing.T) {
	program, perrs := Parse(`return missing;`)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	if _, aerrs := Analyze(program); len(aerrs) == 0 {
		t.Fatalf("expected an undefined-name analysis error")
	}
}

func TestRunClosureAndRecursion(t *testing.T) {
	v, err := Run(`
		let fact: auto = fn(n: number) -> number {
			if (n < 2) { 1 } else { n * fact(n - 1) }
		};
		return fact(6);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != ir.Number || v.NumberValue != 720 {
		t.Fatalf("got %s, want 720", v)
	}
}

func TestRunTraceTagsRuntimeErrorMessage(t *testing.T) {
	_, err := Run(`let arr: auto = [1]; return arr[5];`, WithTrace())
	if err == nil {
		t.Fatalf("expected error")
	}
	re, ok := err.(*errors.RuntimeError)
	if !ok || !strings.Contains(re.Message, "(run ") {
		t.Fatalf("expected a run-ID-tagged *errors.RuntimeError, got %v", err)
	}
}

func TestRunArrayLiteralElementsEvaluateEagerlyAtDefiningScope(t *testing.T) {
	v, err := Run(`
		let make: auto = fn() -> auto {
			let n: number = 99;
			return [n];
		};
		let arr: auto = make();
		return arr[0];
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != ir.Number || v.NumberValue != 99 {
		t.Fatalf("got %s, want 99", v)
	}
}

func TestCompileIRSnapshot(t *testing.T) {
	program, perrs := Parse(`
		let greet: auto = fn(name: string) -> string { "hi " + name };
		return greet("world");
	`)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	prog, cerr := Compile(program)
	if cerr != nil {
		t.Fatalf("unexpected compile error: %v", cerr)
	}
	snaps.MatchSnapshot(t, prog.String())
}
