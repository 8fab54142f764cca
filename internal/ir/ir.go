// Package ir defines Sanetaka's flat intermediate representation: the
// output of internal/compiler's lowering pass and the input to
// internal/evaluator. IrExpression and LiteralValue are closed tagged
// variants, not an open interface hierarchy, so every consumer's switch is
// exhaustive by construction.
package ir

import (
	"fmt"
	"strings"

	"github.com/siglang/sanetaka/internal/lexer"
)

// InstructionKind tags an Instruction's variant.
type InstructionKind int

const (
	StoreIdentifier InstructionKind = iota
	Return
	Expression
	None
)

// Instruction is one statement-level unit of the IR: a name binding, a
// return, a bare expression evaluated for effect, or a no-op.
type Instruction struct {
	Kind     InstructionKind
	Position lexer.Position

	Name  string        // StoreIdentifier
	Value IrExpression   // StoreIdentifier, Return, Expression
}

func StoreIdentifierInstr(pos lexer.Position, name string, value IrExpression) Instruction {
	return Instruction{Kind: StoreIdentifier, Position: pos, Name: name, Value: value}
}

func ReturnInstr(pos lexer.Position, value IrExpression) Instruction {
	return Instruction{Kind: Return, Position: pos, Value: value}
}

func ExpressionInstr(pos lexer.Position, value IrExpression) Instruction {
	return Instruction{Kind: Expression, Position: pos, Value: value}
}

func NoneInstr(pos lexer.Position) Instruction {
	return Instruction{Kind: None, Position: pos}
}

func (i Instruction) String() string {
	switch i.Kind {
	case StoreIdentifier:
		return fmt.Sprintf("store_identifier(%s, %s)", i.Name, i.Value)
	case Return:
		return fmt.Sprintf("return(%s)", i.Value)
	case Expression:
		return fmt.Sprintf("expression(%s)", i.Value)
	default:
		return "none"
	}
}

// Program is the lowered form of a source file: one Instruction per
// top-level statement.
type Program struct {
	Instructions []Instruction
}

func (p *Program) String() string {
	parts := make([]string, len(p.Instructions))
	for i, instr := range p.Instructions {
		parts[i] = instr.String()
	}
	return strings.Join(parts, "\n")
}

// ExpressionKind tags an IrExpression's variant.
type ExpressionKind int

const (
	Identifier ExpressionKind = iota
	Literal
	Block
	If
	Call
	Index
	Prefix
	Infix
)

// IrExpression is the IR's expression variant. Every field is only
// meaningful for the ExpressionKind values documented next to it.
type IrExpression struct {
	Kind     ExpressionKind
	Position lexer.Position

	Name     string         // Identifier
	Value    *LiteralValue  // Literal
	Body     []Instruction  // Block
	Cond     *IrExpression  // If
	Then     []Instruction  // If
	Else     []Instruction  // If (nil means no else branch)
	Function *IrExpression  // Call
	Args     []IrExpression // Call
	Builtin  string         // Call: resolved builtin name, "" if none
	Left     *IrExpression  // Index, Prefix (operand), Infix
	Index    *IrExpression  // Index
	Operator lexer.Kind     // Prefix, Infix
	Right    *IrExpression  // Infix
}

func IdentifierExpr(pos lexer.Position, name string) IrExpression {
	return IrExpression{Kind: Identifier, Position: pos, Name: name}
}

func LiteralExpr(pos lexer.Position, v LiteralValue) IrExpression {
	return IrExpression{Kind: Literal, Position: pos, Value: &v}
}

func BlockExpr(pos lexer.Position, body []Instruction) IrExpression {
	return IrExpression{Kind: Block, Position: pos, Body: body}
}

func IfExpr(pos lexer.Position, cond IrExpression, then []Instruction, els []Instruction) IrExpression {
	return IrExpression{Kind: If, Position: pos, Cond: &cond, Then: then, Else: els}
}

func CallExpr(pos lexer.Position, fn IrExpression, args []IrExpression) IrExpression {
	return IrExpression{Kind: Call, Position: pos, Function: &fn, Args: args}
}

func IndexExpr(pos lexer.Position, left, index IrExpression) IrExpression {
	return IrExpression{Kind: Index, Position: pos, Left: &left, Index: &index}
}

func PrefixExpr(pos lexer.Position, op lexer.Kind, right IrExpression) IrExpression {
	return IrExpression{Kind: Prefix, Position: pos, Operator: op, Left: &right}
}

func InfixExpr(pos lexer.Position, op lexer.Kind, left, right IrExpression) IrExpression {
	return IrExpression{Kind: Infix, Position: pos, Operator: op, Left: &left, Right: &right}
}

func (e IrExpression) String() string {
	switch e.Kind {
	case Identifier:
		return e.Name
	case Literal:
		return e.Value.String()
	case Block:
		return blockString(e.Body)
	case If:
		if e.Else == nil {
			return fmt.Sprintf("if (%s) %s", e.Cond, blockString(e.Then))
		}
		return fmt.Sprintf("if (%s) %s else %s", e.Cond, blockString(e.Then), blockString(e.Else))
	case Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", e.Function, strings.Join(args, ", "))
	case Index:
		return fmt.Sprintf("%s[%s]", e.Left, e.Index)
	case Prefix:
		return fmt.Sprintf("(%s%s)", e.Operator, e.Left)
	case Infix:
		return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
	default:
		return "?"
	}
}

func blockString(body []Instruction) string {
	parts := make([]string, len(body))
	for i, instr := range body {
		parts[i] = instr.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
