package semantic

import (
	"testing"

	"github.com/siglang/sanetaka/internal/parser"
	"github.com/siglang/sanetaka/internal/types"
)

func TestAnalyzeSimpleProgram(t *testing.T) {
	program := parser.ParseProgram(`
		let x: number = 5;
		let y: number = x + 1;
	`)
	_, errs := Analyze(program)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAnalyzeUndefinedName(t *testing.T) {
	program := parser.ParseProgram(`let y: number = missing + 1;`)
	_, errs := Analyze(program)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	typeErr, ok := errs[0].(*types.TypeError)
	if !ok || typeErr.Kind != types.UndefinedName {
		t.Fatalf("got %v, want UndefinedName", errs[0])
	}
}

func TestAnalyzeRedefinitionInSameScope(t *testing.T) {
	program := parser.ParseProgram(`
		let x: number = 1;
		let x: number = 2;
	`)
	_, errs := Analyze(program)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	if _, ok := errs[0].(*RedefinedError); !ok {
		t.Fatalf("got %T, want *RedefinedError", errs[0])
	}
}

func TestAnalyzeTypeAlias(t *testing.T) {
	program := parser.ParseProgram(`
		type Id = number;
		let x: Id = 5;
	`)
	_, errs := Analyze(program)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAnalyzeAliasOfAliasResolvesTransparently(t *testing.T) {
	program := parser.ParseProgram(`
		type Id = number;
		type UserId = Id;
		let x: UserId = 5;
	`)
	_, errs := Analyze(program)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAnalyzeRecursiveFunction(t *testing.T) {
	program := parser.ParseProgram(`
		let fact: auto = fn(n: number) -> number { if (n < 2) { 1 } else { n * fact(n - 1) } };
	`)
	_, errs := Analyze(program)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
