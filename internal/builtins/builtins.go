package builtins

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/siglang/sanetaka/internal/ir"
)

func init() {
	register(Info{Name: "len", Arity: 1, Description: "length of a string or array", Fn: builtinLen})
	register(Info{Name: "print", Arity: -1, Description: "write arguments to stdout, space-separated", Fn: builtinPrint})
	register(Info{Name: "println", Arity: -1, Description: "print followed by a newline", Fn: builtinPrintln})
	register(Info{Name: "push", Arity: 2, Description: "append a value to an array, returning the new array", Fn: builtinPush})
	register(Info{Name: "deepEqual", Arity: 2, Description: "structural equality, including across array elements", Fn: builtinDeepEqual})
	register(Info{Name: "humanize", Arity: 1, Description: "human-readable rendering of a number", Fn: builtinHumanize})
}

func arityError(name string, want, got int) error {
	return fmt.Errorf("%s: expected %d argument(s), got %d", name, want, got)
}

func typeError(name, expected string, got ir.LiteralValue) error {
	return fmt.Errorf("%s: expected %s, found %s", name, expected, got)
}

func builtinLen(args []ir.LiteralValue) (ir.LiteralValue, error) {
	if len(args) != 1 {
		return ir.LiteralValue{}, arityError("len", 1, len(args))
	}
	switch args[0].Kind {
	case ir.String:
		return ir.NumberValue(float64(len(args[0].StringValue))), nil
	case ir.Array:
		return ir.NumberValue(float64(len(args[0].Elements))), nil
	default:
		return ir.LiteralValue{}, typeError("len", "string or array", args[0])
	}
}

func builtinPrint(args []ir.LiteralValue) (ir.LiteralValue, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = displayString(a)
	}
	fmt.Print(strings.Join(parts, " "))
	return ir.BooleanValue(true), nil
}

func builtinPrintln(args []ir.LiteralValue) (ir.LiteralValue, error) {
	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = displayString(a)
	}
	fmt.Println(parts...)
	return ir.BooleanValue(true), nil
}

// displayString renders a value the way print/println show it: unquoted
// strings, everything else via its normal String().
func displayString(v ir.LiteralValue) string {
	if v.Kind == ir.String {
		return v.StringValue
	}
	return v.String()
}

func builtinPush(args []ir.LiteralValue) (ir.LiteralValue, error) {
	if len(args) != 2 {
		return ir.LiteralValue{}, arityError("push", 2, len(args))
	}
	if args[0].Kind != ir.Array {
		return ir.LiteralValue{}, typeError("push", "array", args[0])
	}
	elements := append(append([]ir.IrExpression{}, args[0].Elements...), literalAsExpression(args[1]))
	return ir.ArrayValue(elements), nil
}

// literalAsExpression re-wraps an already-evaluated value as a Literal
// expression, matching Array's representation of elements as unevaluated
// IrExpression nodes.
func literalAsExpression(v ir.LiteralValue) ir.IrExpression {
	return ir.LiteralExpr(ir.IrExpression{}.Position, v)
}

func builtinDeepEqual(args []ir.LiteralValue) (ir.LiteralValue, error) {
	if len(args) != 2 {
		return ir.LiteralValue{}, arityError("deepEqual", 2, len(args))
	}
	equal := cmp.Equal(args[0], args[1],
		cmpopts.IgnoreFields(ir.LiteralValue{}, "Env"),
		cmp.Comparer(func(a, b ir.IrExpression) bool { return a.String() == b.String() }),
	)
	return ir.BooleanValue(equal), nil
}

func builtinHumanize(args []ir.LiteralValue) (ir.LiteralValue, error) {
	if len(args) != 1 {
		return ir.LiteralValue{}, arityError("humanize", 1, len(args))
	}
	if args[0].Kind != ir.Number {
		return ir.LiteralValue{}, typeError("humanize", "number", args[0])
	}
	return ir.StringValue(humanize.Comma(int64(args[0].NumberValue))), nil
}
