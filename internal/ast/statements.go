package ast

import (
	"bytes"

	"github.com/siglang/sanetaka/internal/lexer"
)

// LetStatement binds an annotated expression to a name: `let x: number = 5;`.
type LetStatement struct {
	Position lexer.Position
	Name     *Identifier
	DataType *TypeExpr
	Value    Expression
}

func (s *LetStatement) Pos() lexer.Position { return s.Position }
func (s *LetStatement) statementNode()      {}
func (s *LetStatement) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	out.WriteString(s.Name.String())
	out.WriteString(": ")
	out.WriteString(s.DataType.String())
	out.WriteString(" = ")
	out.WriteString(s.Value.String())
	out.WriteString(";")
	return out.String()
}

// ReturnStatement yields a value from the enclosing block or function body.
// Implicit is true when the parser synthesized this node from a block's
// trailing bare expression (no `return` keyword appeared in the source);
// Position then still points at that expression, not at a keyword.
type ReturnStatement struct {
	Position lexer.Position
	Value    Expression
	Implicit bool
}

func (s *ReturnStatement) Pos() lexer.Position { return s.Position }
func (s *ReturnStatement) statementNode()      {}
func (s *ReturnStatement) String() string {
	if s.Implicit {
		return s.Value.String() + ";"
	}
	return "return " + s.Value.String() + ";"
}

// TypeStatement registers a type alias: `type X = number;`. No IR is ever
// emitted for it; it only affects the type system's scope at compile time.
type TypeStatement struct {
	Position lexer.Position
	Name     *Identifier
	DataType *TypeExpr
}

func (s *TypeStatement) Pos() lexer.Position { return s.Position }
func (s *TypeStatement) statementNode()      {}
func (s *TypeStatement) String() string {
	return "type " + s.Name.String() + " = " + s.DataType.String() + ";"
}

// ExpressionStatement wraps an expression evaluated for its side effects,
// its value (if any) discarded.
type ExpressionStatement struct {
	Position   lexer.Position
	Expression Expression
}

func (s *ExpressionStatement) Pos() lexer.Position { return s.Position }
func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) String() string      { return s.Expression.String() + ";" }
