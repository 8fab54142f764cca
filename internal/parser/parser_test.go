package parser

import (
	"testing"

	"github.com/siglang/sanetaka/internal/ast"
)

func parseOK(t *testing.T, source string) *ast.Program {
	t.Helper()
	program := ParseProgram(source)
	if len(program.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", program.Errors)
	}
	return program
}

func TestLetStatement(t *testing.T) {
	program := parseOK(t, `let x: number = 5;`)
	if len(program.Statements) != 1 {
		t.Fatalf("len(Statements) = %d, want 1", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.LetStatement", program.Statements[0])
	}
	if stmt.Name.Value != "x" || stmt.DataType.Name != "number" {
		t.Fatalf("got name=%q type=%q", stmt.Name.Value, stmt.DataType.Name)
	}
}

func TestImplicitBlockReturn(t *testing.T) {
	program := parseOK(t, `let f: auto = fn() -> number { if (1 < 2) { 10 } else { 20 } };`)
	let := program.Statements[0].(*ast.LetStatement)
	fn := let.Value.(*ast.FunctionLiteral)

	bodyReturn, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok || !bodyReturn.Implicit {
		t.Fatalf("function body's trailing bare if should desugar to an implicit return, got %T", fn.Body.Statements[0])
	}
	ifExpr, ok := bodyReturn.Value.(*ast.IfExpression)
	if !ok {
		t.Fatalf("value is %T, want *ast.IfExpression", bodyReturn.Value)
	}
	consequenceReturn, ok := ifExpr.Consequence.Statements[0].(*ast.ReturnStatement)
	if !ok || !consequenceReturn.Implicit {
		t.Fatalf("consequence's trailing expression should desugar to an implicit return")
	}
}

func TestFunctionLiteral(t *testing.T) {
	program := parseOK(t, `let add: auto = fn(a: number, b: number) -> number { a + b };`)
	let := program.Statements[0].(*ast.LetStatement)
	fn, ok := let.Value.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("value is %T, want *ast.FunctionLiteral", let.Value)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("len(Parameters) = %d, want 2", len(fn.Parameters))
	}
	if fn.ReturnType == nil || fn.ReturnType.Name != "number" {
		t.Fatalf("ReturnType = %v, want number", fn.ReturnType)
	}
}

func TestCallAndIndexPrecedence(t *testing.T) {
	program := parseOK(t, `arr[0](1, 2);`)
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expression is %T, want *ast.CallExpression", stmt.Expression)
	}
	if _, ok := call.Function.(*ast.IndexExpression); !ok {
		t.Fatalf("call target is %T, want *ast.IndexExpression", call.Function)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	program := parseOK(t, `1 + 2 * 3;`)
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	infix := stmt.Expression.(*ast.InfixExpression)
	if want := "(1 + (2 * 3))"; infix.String() != want {
		t.Fatalf("String() = %q, want %q", infix.String(), want)
	}
}

func TestParseErrorRecoversAtNextStatement(t *testing.T) {
	program := ParseProgram(`let ; let y: number = 1;`)
	if len(program.Errors) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	found := false
	for _, s := range program.Statements {
		if let, ok := s.(*ast.LetStatement); ok && let.Name != nil && let.Name.Value == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("parser did not recover to parse the second let statement")
	}
}
