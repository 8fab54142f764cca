package evaluator

import (
	"math"
	"testing"

	"github.com/siglang/sanetaka/internal/compiler"
	"github.com/siglang/sanetaka/internal/ir"
	"github.com/siglang/sanetaka/internal/parser"
	"github.com/siglang/sanetaka/internal/runtime"
)

func evalOK(t *testing.T, source string) ir.LiteralValue {
	t.Helper()
	program := parser.ParseProgram(source)
	if len(program.Errors) != 0 {
		t.Fatalf("parse errors: %v", program.Errors)
	}
	prog, err := compiler.CompileProgram(program)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	ev := New(false)
	result, err := ev.Eval(prog, runtime.New(nil))
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return result
}

func TestEvalArithmetic(t *testing.T) {
	v := evalOK(t, `return 1 + 2 * 3;`)
	if v.Kind != ir.Number || v.NumberValue != 7 {
		t.Fatalf("got %s, want 7", v)
	}
}

func TestEvalBlockWithNoReturnIsFalse(t *testing.T) {
	v := evalOK(t, `let x: number = 1;`)
	if v.Kind != ir.Boolean || v.BooleanValue != false {
		t.Fatalf("got %s, want false", v)
	}
}

func TestEvalIfWithoutElseFalseBranch(t *testing.T) {
	v := evalOK(t, `return if (false) { 1 };`)
	if v.Kind != ir.Boolean || v.BooleanValue != false {
		t.Fatalf("got %s, want false", v)
	}
}

func TestEvalStringConcat(t *testing.T) {
	v := evalOK(t, `return "hi" + " there";`)
	if v.Kind != ir.String || v.StringValue != "hi there" {
		t.Fatalf("got %s, want \"hi there\"", v)
	}
}

func TestEvalDivisionByZeroProducesInfinity(t *testing.T) {
	v := evalOK(t, `return 1 / 0;`)
	if v.Kind != ir.Number || !math.IsInf(v.NumberValue, 1) {
		t.Fatalf("got %s, want +Inf", v)
	}
}

func TestEvalZeroDividedByZeroProducesNaN(t *testing.T) {
	v := evalOK(t, `return 0 / 0;`)
	if v.Kind != ir.Number || !math.IsNaN(v.NumberValue) {
		t.Fatalf("got %s, want NaN", v)
	}
}

func TestEvalClosureCapturesDefiningScope(t *testing.T) {
	v := evalOK(t, `
		let makeAdder: auto = fn(x: number) -> auto {
			fn(y: number) -> number { x + y }
		};
		let addFive: auto = makeAdder(5);
		return addFive(3);
	`)
	if v.Kind != ir.Number || v.NumberValue != 8 {
		t.Fatalf("got %s, want 8", v)
	}
}

func TestEvalRecursiveFunction(t *testing.T) {
	v := evalOK(t, `
		let fact: auto = fn(n: number) -> number {
			if (n < 2) { 1 } else { n * fact(n - 1) }
		};
		return fact(5);
	`)
	if v.Kind != ir.Number || v.NumberValue != 120 {
		t.Fatalf("got %s, want 120", v)
	}
}

func TestEvalArrayIndex(t *testing.T) {
	v := evalOK(t, `
		let arr: auto = [10, 20, 30];
		return arr[1];
	`)
	if v.Kind != ir.Number || v.NumberValue != 20 {
		t.Fatalf("got %s, want 20", v)
	}
}

func TestEvalArrayIndexOutOfBounds(t *testing.T) {
	program := parser.ParseProgram(`let arr: auto = [1]; return arr[5];`)
	prog, err := compiler.CompileProgram(program)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	_, err = New(false).Eval(prog, runtime.New(nil))
	if err == nil {
		t.Fatalf("expected out-of-bounds error")
	}
}

func TestEvalBuiltinCall(t *testing.T) {
	v := evalOK(t, `return len("hello");`)
	if v.Kind != ir.Number || v.NumberValue != 5 {
		t.Fatalf("got %s, want 5", v)
	}
}

func TestEvalUndefinedName(t *testing.T) {
	program := parser.ParseProgram(`return missing;`)
	prog, err := compiler.CompileProgram(program)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	_, err = New(false).Eval(prog, runtime.New(nil))
	if err == nil {
		t.Fatalf("expected undefined name error")
	}
}

func TestTraceTagsErrorsWithRunID(t *testing.T) {
	program := parser.ParseProgram(`return missing;`)
	prog, err := compiler.CompileProgram(program)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	_, err = New(true).Eval(prog, runtime.New(nil))
	if err == nil {
		t.Fatalf("expected error")
	}
	re, ok := err.(*Error)
	if !ok || re.RunID == "" {
		t.Fatalf("expected a RunID-tagged *Error, got %v", err)
	}
}
