package ast

import (
	"testing"

	"github.com/siglang/sanetaka/internal/lexer"
)

func p() lexer.Position { return lexer.Position{Line: 1, Column: 1} }

func TestProgramString(t *testing.T) {
	program := &Program{Statements: []Statement{
		&LetStatement{Position: p(), Name: &Identifier{Position: p(), Value: "x"}, DataType: &TypeExpr{Position: p(), Name: "number"}, Value: &NumberLiteral{Position: p(), Value: 5}},
		&ReturnStatement{Position: p(), Value: &Identifier{Position: p(), Value: "x"}},
	}}
	want := "let x: number = 5;\nreturn x;\n"
	if got := program.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestProgramPosFallsBackWhenEmpty(t *testing.T) {
	program := &Program{}
	if pos := program.Pos(); pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("Pos() = %v, want {1 1}", pos)
	}
}

func TestArrayTypeExprString(t *testing.T) {
	arr := &TypeExpr{Position: p(), Element: &TypeExpr{Position: p(), Name: "number"}}
	if got, want := arr.String(), "[number]"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestImplicitReturnStatementOmitsKeyword(t *testing.T) {
	s := &ReturnStatement{Position: p(), Value: &BooleanLiteral{Position: p(), Value: true}, Implicit: true}
	if got, want := s.String(), "true;"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	explicit := &ReturnStatement{Position: p(), Value: &BooleanLiteral{Position: p(), Value: true}}
	if got, want := explicit.String(), "return true;"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFunctionLiteralStringWithReturnType(t *testing.T) {
	fn := &FunctionLiteral{
		Position:   p(),
		Parameters: []Parameter{{Name: &Identifier{Position: p(), Value: "x"}, DataType: &TypeExpr{Position: p(), Name: "number"}}},
		ReturnType: &TypeExpr{Position: p(), Name: "number"},
		Body:       &BlockExpression{Position: p(), Statements: []Statement{&ReturnStatement{Position: p(), Value: &Identifier{Position: p(), Value: "x"}, Implicit: true}}},
	}
	want := "fn(x: number) -> number { x; }"
	if got := fn.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestObjectLiteralPreservesFieldOrder(t *testing.T) {
	obj := &ObjectLiteral{Position: p(), Fields: []ObjectField{
		{Name: &Identifier{Position: p(), Value: "b"}, Value: &NumberLiteral{Position: p(), Value: 2}},
		{Name: &Identifier{Position: p(), Value: "a"}, Value: &NumberLiteral{Position: p(), Value: 1}},
	}}
	want := "{b: 2, a: 1}"
	if got := obj.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIndexExpressionString(t *testing.T) {
	idx := &IndexExpression{Position: p(), Left: &Identifier{Position: p(), Value: "arr"}, Index: &NumberLiteral{Position: p(), Value: 0}}
	if got, want := idx.String(), "arr[0]"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
