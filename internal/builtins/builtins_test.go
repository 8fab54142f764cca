package builtins

import (
	"testing"

	"github.com/siglang/sanetaka/internal/ir"
	"github.com/siglang/sanetaka/internal/lexer"
)

func pos() lexer.Position { return lexer.Position{Line: 1, Column: 1} }

func TestLen(t *testing.T) {
	v, err := builtinLen([]ir.LiteralValue{ir.StringValue("hello")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.NumberValue != 5 {
		t.Fatalf("got %v, want 5", v.NumberValue)
	}
}

func TestPushReturnsNewArray(t *testing.T) {
	arr := ir.ArrayValue([]ir.IrExpression{ir.LiteralExpr(pos(), ir.NumberValue(1))})
	v, err := builtinPush([]ir.LiteralValue{arr, ir.NumberValue(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(v.Elements))
	}
	if len(arr.Elements) != 1 {
		t.Fatalf("push must not mutate its input array, len(arr.Elements) = %d", len(arr.Elements))
	}
}

func TestDeepEqual(t *testing.T) {
	a := ir.ArrayValue([]ir.IrExpression{ir.LiteralExpr(pos(), ir.NumberValue(1))})
	b := ir.ArrayValue([]ir.IrExpression{ir.LiteralExpr(pos(), ir.NumberValue(1))})
	v, err := builtinDeepEqual([]ir.LiteralValue{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.BooleanValue {
		t.Fatalf("expected deepEqual of two identical arrays to be true")
	}
}

func TestHumanize(t *testing.T) {
	v, err := builtinHumanize([]ir.LiteralValue{ir.NumberValue(1234567)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.StringValue != "1,234,567" {
		t.Fatalf("got %q, want %q", v.StringValue, "1,234,567")
	}
}

func TestRegistryLookup(t *testing.T) {
	for _, name := range []string{"len", "print", "println", "push", "deepEqual", "humanize"} {
		if _, ok := Get(name); !ok {
			t.Fatalf("builtin %q not registered", name)
		}
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected %q to be unregistered", "nope")
	}
}
