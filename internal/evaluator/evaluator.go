// Package evaluator tree-walks the IR produced by internal/compiler,
// maintaining a chain of internal/runtime Environments as it descends into
// blocks, branches, and function calls.
package evaluator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/siglang/sanetaka/internal/builtins"
	"github.com/siglang/sanetaka/internal/ir"
	"github.com/siglang/sanetaka/internal/lexer"
	"github.com/siglang/sanetaka/internal/runtime"
)

// Error is the evaluator's error family. Every RuntimeError carries the
// position of the instruction or expression that failed; RunID is set only
// when the evaluator was constructed with Trace enabled, so ordinary runs
// don't carry the extra noise.
type Error struct {
	Position lexer.Position
	Message  string
	RunID    string
}

func (e *Error) Error() string {
	if e.RunID != "" {
		return fmt.Sprintf("%s at %s (run %s)", e.Message, e.Position, e.RunID)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

// Evaluator holds the per-run state threaded through a single Eval call.
// It carries no program-global mutable state beyond the run ID, so nothing
// here prevents running several Evaluators concurrently over independent
// environments - the REPL creates a new Evaluator for every line and
// shares only its persistent top-level Environment across lines, so each
// top-level Eval call is otherwise independent.
type Evaluator struct {
	runID string
	trace bool
}

// New creates an Evaluator. trace controls whether reported errors are
// tagged with this run's ID, which matters once a REPL or test harness
// runs several evaluations in the same process and needs to tell their
// error output apart.
func New(trace bool) *Evaluator {
	return &Evaluator{runID: uuid.NewString(), trace: trace}
}

func (ev *Evaluator) errorf(pos lexer.Position, format string, args ...any) *Error {
	e := &Error{Position: pos, Message: fmt.Sprintf(format, args...)}
	if ev.trace {
		e.RunID = ev.runID
	}
	return e
}

// Eval runs every top-level instruction against env in order and returns
// the value of the last one, using the same last()-style extraction a
// block body uses: only a trailing Return materializes a value, otherwise
// the run evaluates to Boolean(false).
func (ev *Evaluator) Eval(program *ir.Program, env *runtime.Environment) (ir.LiteralValue, error) {
	return ev.evalBlock(program.Instructions, env)
}

// evalBlock executes instrs in env for effect, then reads back the value
// of the last one if and only if it is a Return. This is ported from the
// original tree-walker's last(): Return's own eval_instruction arm is a
// no-op during straight-line execution, so the value only exists once the
// enclosing block or call asks for it explicitly here.
func (ev *Evaluator) evalBlock(instrs []ir.Instruction, env *runtime.Environment) (ir.LiteralValue, error) {
	var last ir.Instruction
	hasLast := false
	for _, instr := range instrs {
		if err := ev.evalInstruction(instr, env); err != nil {
			return ir.LiteralValue{}, err
		}
		last = instr
		hasLast = true
	}
	if hasLast && last.Kind == ir.Return {
		return ev.evalExpression(last.Value, env)
	}
	return ir.BooleanValue(false), nil
}

func (ev *Evaluator) evalInstruction(instr ir.Instruction, env *runtime.Environment) error {
	switch instr.Kind {
	case ir.StoreIdentifier:
		v, err := ev.evalExpression(instr.Value, env)
		if err != nil {
			return err
		}
		env.Define(instr.Name, v)
		return nil
	case ir.Return:
		return nil
	case ir.Expression:
		_, err := ev.evalExpression(instr.Value, env)
		return err
	default:
		return nil
	}
}

func (ev *Evaluator) evalExpression(expr ir.IrExpression, env *runtime.Environment) (ir.LiteralValue, error) {
	switch expr.Kind {
	case ir.Identifier:
		if v, ok := env.Get(expr.Name); ok {
			return v, nil
		}
		return ir.LiteralValue{}, ev.errorf(expr.Position, "undefined name %q", expr.Name)

	case ir.Literal:
		v := *expr.Value
		switch {
		case v.Kind == ir.Function && v.Env == nil:
			v.Env = env
		case v.Kind == ir.Array:
			elements := make([]ir.IrExpression, len(v.Elements))
			for i, el := range v.Elements {
				reduced, err := ev.evalExpression(el, env)
				if err != nil {
					return ir.LiteralValue{}, err
				}
				elements[i] = ir.LiteralExpr(el.Position, reduced)
			}
			v.Elements = elements
		}
		return v, nil

	case ir.Block:
		return ev.evalBlock(expr.Body, runtime.New(env))

	case ir.If:
		return ev.evalIf(expr, env)

	case ir.Call:
		return ev.evalCall(expr, env)

	case ir.Index:
		return ev.evalIndex(expr, env)

	case ir.Prefix:
		return ev.evalPrefix(expr, env)

	case ir.Infix:
		return ev.evalInfix(expr, env)

	default:
		return ir.LiteralValue{}, ev.errorf(expr.Position, "unevaluable expression")
	}
}

func (ev *Evaluator) evalIf(expr ir.IrExpression, env *runtime.Environment) (ir.LiteralValue, error) {
	cond, err := ev.evalExpression(*expr.Cond, env)
	if err != nil {
		return ir.LiteralValue{}, err
	}
	if cond.Kind != ir.Boolean {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "condition must be boolean, found %s", kindName(cond.Kind))
	}
	if cond.BooleanValue {
		return ev.evalBlock(expr.Then, runtime.New(env))
	}
	if expr.Else != nil {
		return ev.evalBlock(expr.Else, runtime.New(env))
	}
	return ir.BooleanValue(false), nil
}

func (ev *Evaluator) evalCall(expr ir.IrExpression, env *runtime.Environment) (ir.LiteralValue, error) {
	args := make([]ir.LiteralValue, len(expr.Args))
	for i, a := range expr.Args {
		v, err := ev.evalExpression(a, env)
		if err != nil {
			return ir.LiteralValue{}, err
		}
		args[i] = v
	}

	if expr.Builtin != "" {
		return ev.callBuiltin(expr, args)
	}

	fnVal, err := ev.evalExpression(*expr.Function, env)
	if err != nil {
		return ir.LiteralValue{}, err
	}
	if fnVal.Kind != ir.Function {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "value of type %s is not callable", kindName(fnVal.Kind))
	}
	if len(fnVal.Parameters) != len(args) {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "expected %d argument(s), got %d", len(fnVal.Parameters), len(args))
	}

	parent := env
	if closureEnv, ok := fnVal.Env.(*runtime.Environment); ok && closureEnv != nil {
		parent = closureEnv
	}
	callEnv := runtime.New(parent)
	for i, p := range fnVal.Parameters {
		callEnv.Define(p, args[i])
	}

	result, err := ev.evalExpression(*fnVal.Body, callEnv)
	if err != nil {
		return ir.LiteralValue{}, err
	}

	// A function value returned from this call that hasn't captured an
	// environment of its own closes over the frame the call just ran in,
	// so it can still see the call's parameters and locals afterward.
	if result.Kind == ir.Function && result.Env == nil {
		result.Env = callEnv
	}
	return result, nil
}

func (ev *Evaluator) callBuiltin(expr ir.IrExpression, args []ir.LiteralValue) (ir.LiteralValue, error) {
	info, ok := builtins.Get(expr.Builtin)
	if !ok {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "builtin %q is no longer registered", expr.Builtin)
	}
	if info.Arity >= 0 && info.Arity != len(args) {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "%s: expected %d argument(s), got %d", info.Name, info.Arity, len(args))
	}
	result, err := info.Fn(args)
	if err != nil {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "%s", err)
	}
	return result, nil
}

func (ev *Evaluator) evalIndex(expr ir.IrExpression, env *runtime.Environment) (ir.LiteralValue, error) {
	left, err := ev.evalExpression(*expr.Left, env)
	if err != nil {
		return ir.LiteralValue{}, err
	}
	if left.Kind != ir.Array {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "value of type %s is not indexable", kindName(left.Kind))
	}
	idx, err := ev.evalExpression(*expr.Index, env)
	if err != nil {
		return ir.LiteralValue{}, err
	}
	if idx.Kind != ir.Number {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "array index must be a number, found %s", kindName(idx.Kind))
	}
	i := int(idx.NumberValue)
	if i < 0 || i >= len(left.Elements) {
		return ir.LiteralValue{}, ev.errorf(expr.Position, "index %d out of bounds for array of length %d", i, len(left.Elements))
	}
	return ev.evalExpression(left.Elements[i], env)
}

func (ev *Evaluator) evalPrefix(expr ir.IrExpression, env *runtime.Environment) (ir.LiteralValue, error) {
	right, err := ev.evalExpression(*expr.Left, env)
	if err != nil {
		return ir.LiteralValue{}, err
	}
	switch expr.Operator {
	case lexer.MINUS:
		if right.Kind != ir.Number {
			return ir.LiteralValue{}, ev.errorf(expr.Position, "unary - requires a number, found %s", kindName(right.Kind))
		}
		return ir.NumberValue(-right.NumberValue), nil
	case lexer.BANG:
		if right.Kind != ir.Boolean {
			return ir.LiteralValue{}, ev.errorf(expr.Position, "unary ! requires a boolean, found %s", kindName(right.Kind))
		}
		return ir.BooleanValue(!right.BooleanValue), nil
	default:
		return ir.LiteralValue{}, ev.errorf(expr.Position, "invalid prefix operator %s", expr.Operator)
	}
}

func (ev *Evaluator) evalInfix(expr ir.IrExpression, env *runtime.Environment) (ir.LiteralValue, error) {
	left, err := ev.evalExpression(*expr.Left, env)
	if err != nil {
		return ir.LiteralValue{}, err
	}
	right, err := ev.evalExpression(*expr.Right, env)
	if err != nil {
		return ir.LiteralValue{}, err
	}

	switch {
	case left.Kind == ir.Number && right.Kind == ir.Number:
		return ev.evalNumberInfix(expr, left.NumberValue, right.NumberValue)
	case left.Kind == ir.String && right.Kind == ir.String:
		return ev.evalStringInfix(expr, left.StringValue, right.StringValue)
	case left.Kind == ir.Boolean && right.Kind == ir.Boolean:
		return ev.evalBooleanInfix(expr, left.BooleanValue, right.BooleanValue)
	default:
		return ir.LiteralValue{}, ev.errorf(expr.Position, "invalid operands %s and %s for %s", kindName(left.Kind), kindName(right.Kind), expr.Operator)
	}
}

func (ev *Evaluator) evalNumberInfix(expr ir.IrExpression, l, r float64) (ir.LiteralValue, error) {
	switch expr.Operator {
	case lexer.PLUS:
		return ir.NumberValue(l + r), nil
	case lexer.MINUS:
		return ir.NumberValue(l - r), nil
	case lexer.ASTERISK:
		return ir.NumberValue(l * r), nil
	case lexer.SLASH:
		return ir.NumberValue(l / r), nil
	case lexer.LT:
		return ir.BooleanValue(l < r), nil
	case lexer.LTE:
		return ir.BooleanValue(l <= r), nil
	case lexer.GT:
		return ir.BooleanValue(l > r), nil
	case lexer.GTE:
		return ir.BooleanValue(l >= r), nil
	case lexer.EQ:
		return ir.BooleanValue(l == r), nil
	case lexer.NEQ:
		return ir.BooleanValue(l != r), nil
	default:
		return ir.LiteralValue{}, ev.errorf(expr.Position, "invalid operator %s for numbers", expr.Operator)
	}
}

func (ev *Evaluator) evalStringInfix(expr ir.IrExpression, l, r string) (ir.LiteralValue, error) {
	switch expr.Operator {
	case lexer.PLUS:
		return ir.StringValue(l + r), nil
	case lexer.EQ:
		return ir.BooleanValue(l == r), nil
	case lexer.NEQ:
		return ir.BooleanValue(l != r), nil
	case lexer.LT:
		return ir.BooleanValue(l < r), nil
	case lexer.LTE:
		return ir.BooleanValue(l <= r), nil
	case lexer.GT:
		return ir.BooleanValue(l > r), nil
	case lexer.GTE:
		return ir.BooleanValue(l >= r), nil
	default:
		return ir.LiteralValue{}, ev.errorf(expr.Position, "invalid operator %s for strings", expr.Operator)
	}
}

func (ev *Evaluator) evalBooleanInfix(expr ir.IrExpression, l, r bool) (ir.LiteralValue, error) {
	switch expr.Operator {
	case lexer.EQ:
		return ir.BooleanValue(l == r), nil
	case lexer.NEQ:
		return ir.BooleanValue(l != r), nil
	default:
		return ir.LiteralValue{}, ev.errorf(expr.Position, "invalid operator %s for booleans", expr.Operator)
	}
}

func kindName(k ir.LiteralKind) string {
	switch k {
	case ir.Number:
		return "number"
	case ir.String:
		return "string"
	case ir.Boolean:
		return "boolean"
	case ir.Array:
		return "array"
	case ir.Function:
		return "function"
	default:
		return "?"
	}
}
