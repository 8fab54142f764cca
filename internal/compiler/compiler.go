// Package compiler lowers a parsed, analyzed AST into Sanetaka's flat IR.
// It assumes the program has already passed internal/semantic's analyzer:
// lowering panics on no input it doesn't understand, but reports
// unsupported constructs (object literals, which have no IR
// representation) as an Error rather than lowering them into nonsense.
package compiler

import (
	"fmt"

	"github.com/siglang/sanetaka/internal/ast"
	"github.com/siglang/sanetaka/internal/builtins"
	"github.com/siglang/sanetaka/internal/ir"
	"github.com/siglang/sanetaka/internal/lexer"
)

// Error is raised when a construct cannot be lowered.
type Error struct {
	Position lexer.Position
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

// CompileProgram lowers every top-level statement in order.
func CompileProgram(program *ast.Program) (*ir.Program, error) {
	instrs, err := lowerBlock(program.Statements)
	if err != nil {
		return nil, err
	}
	return &ir.Program{Instructions: instrs}, nil
}

// lowerBlock lowers a statement list into instructions, truncating at the
// first Return: code after an explicit return is unreachable and the
// original compiler this is grounded on drops it rather than lowering
// dead code.
func lowerBlock(stmts []ast.Statement) ([]ir.Instruction, error) {
	instrs := make([]ir.Instruction, 0, len(stmts))
	for _, stmt := range stmts {
		instr, err := lowerStatement(stmt)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, instr)
		if instr.Kind == ir.Return {
			break
		}
	}
	return instrs, nil
}

func lowerStatement(stmt ast.Statement) (ir.Instruction, error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		val, err := lowerExpression(s.Value)
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.StoreIdentifierInstr(s.Position, s.Name.Value, val), nil

	case *ast.ReturnStatement:
		val, err := lowerExpression(s.Value)
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.ReturnInstr(s.Position, val), nil

	case *ast.TypeStatement:
		// Type aliases are erased: they carry no runtime value, only the
		// compile-time substitution internal/semantic already performed.
		return ir.NoneInstr(s.Position), nil

	case *ast.ExpressionStatement:
		val, err := lowerExpression(s.Expression)
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.ExpressionInstr(s.Position, val), nil

	default:
		return ir.Instruction{}, &Error{Position: stmt.Pos(), Message: "unsupported statement"}
	}
}

func lowerExpression(expr ast.Expression) (ir.IrExpression, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return ir.IdentifierExpr(e.Position, e.Value), nil

	case *ast.NumberLiteral:
		return ir.LiteralExpr(e.Position, ir.NumberValue(e.Value)), nil
	case *ast.StringLiteral:
		return ir.LiteralExpr(e.Position, ir.StringValue(e.Value)), nil
	case *ast.BooleanLiteral:
		return ir.LiteralExpr(e.Position, ir.BooleanValue(e.Value)), nil

	case *ast.ArrayLiteral:
		elems := make([]ir.IrExpression, len(e.Elements))
		for i, el := range e.Elements {
			lowered, err := lowerExpression(el)
			if err != nil {
				return ir.IrExpression{}, err
			}
			elems[i] = lowered
		}
		return ir.LiteralExpr(e.Position, ir.ArrayValue(elems)), nil

	case *ast.ObjectLiteral:
		return ir.IrExpression{}, &Error{Position: e.Position, Message: "object literals have no IR representation"}

	case *ast.FunctionLiteral:
		return lowerFunction(e)

	case *ast.BlockExpression:
		instrs, err := lowerBlock(e.Statements)
		if err != nil {
			return ir.IrExpression{}, err
		}
		return ir.BlockExpr(e.Position, instrs), nil

	case *ast.PrefixExpression:
		right, err := lowerExpression(e.Right)
		if err != nil {
			return ir.IrExpression{}, err
		}
		return ir.PrefixExpr(e.Position, e.Operator, right), nil

	case *ast.InfixExpression:
		left, err := lowerExpression(e.Left)
		if err != nil {
			return ir.IrExpression{}, err
		}
		right, err := lowerExpression(e.Right)
		if err != nil {
			return ir.IrExpression{}, err
		}
		return ir.InfixExpr(e.Position, e.Operator, left, right), nil

	case *ast.IfExpression:
		return lowerIf(e)

	case *ast.CallExpression:
		return lowerCall(e)

	case *ast.IndexExpression:
		left, err := lowerExpression(e.Left)
		if err != nil {
			return ir.IrExpression{}, err
		}
		index, err := lowerExpression(e.Index)
		if err != nil {
			return ir.IrExpression{}, err
		}
		return ir.IndexExpr(e.Position, left, index), nil

	default:
		return ir.IrExpression{}, &Error{Position: expr.Pos(), Message: "unsupported expression"}
	}
}

func lowerFunction(e *ast.FunctionLiteral) (ir.IrExpression, error) {
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.Name.Value
	}
	body, err := lowerExpression(e.Body)
	if err != nil {
		return ir.IrExpression{}, err
	}
	returnType := "auto"
	if e.ReturnType != nil {
		returnType = e.ReturnType.String()
	}
	return ir.LiteralExpr(e.Position, ir.FunctionValue(params, &body, returnType, nil)), nil
}

func lowerIf(e *ast.IfExpression) (ir.IrExpression, error) {
	cond, err := lowerExpression(e.Condition)
	if err != nil {
		return ir.IrExpression{}, err
	}
	then, err := lowerBlock(e.Consequence.Statements)
	if err != nil {
		return ir.IrExpression{}, err
	}
	var els []ir.Instruction
	if e.Alternative != nil {
		els, err = lowerBlock(e.Alternative.Statements)
		if err != nil {
			return ir.IrExpression{}, err
		}
	}
	return ir.IfExpr(e.Position, cond, then, els), nil
}

func lowerCall(e *ast.CallExpression) (ir.IrExpression, error) {
	fn, err := lowerExpression(e.Function)
	if err != nil {
		return ir.IrExpression{}, err
	}
	args := make([]ir.IrExpression, len(e.Arguments))
	for i, a := range e.Arguments {
		lowered, err := lowerExpression(a)
		if err != nil {
			return ir.IrExpression{}, err
		}
		args[i] = lowered
	}

	call := ir.CallExpr(e.Position, fn, args)
	if ident, ok := e.Function.(*ast.Identifier); ok {
		if info, found := builtins.Get(ident.Value); found {
			call.Builtin = info.Name
		}
	}
	return call, nil
}
