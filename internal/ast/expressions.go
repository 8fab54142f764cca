package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/siglang/sanetaka/internal/lexer"
)

// NumberLiteral is a 64-bit floating point literal.
type NumberLiteral struct {
	Position lexer.Position
	Value    float64
}

func (n *NumberLiteral) Pos() lexer.Position { return n.Position }
func (n *NumberLiteral) expressionNode()     {}
func (n *NumberLiteral) String() string      { return fmt.Sprintf("%g", n.Value) }

// StringLiteral is a quoted text literal.
type StringLiteral struct {
	Position lexer.Position
	Value    string
}

func (s *StringLiteral) Pos() lexer.Position { return s.Position }
func (s *StringLiteral) expressionNode()     {}
func (s *StringLiteral) String() string      { return fmt.Sprintf("%q", s.Value) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Position lexer.Position
	Value    bool
}

func (b *BooleanLiteral) Pos() lexer.Position { return b.Position }
func (b *BooleanLiteral) expressionNode()     {}
func (b *BooleanLiteral) String() string      { return fmt.Sprintf("%t", b.Value) }

// ArrayLiteral is `[e1, e2, ...]`. Element order is preserved.
type ArrayLiteral struct {
	Position lexer.Position
	Elements []Expression
}

func (a *ArrayLiteral) Pos() lexer.Position { return a.Position }
func (a *ArrayLiteral) expressionNode()     {}
func (a *ArrayLiteral) String() string      { return "[" + joinStrings(a.Elements) + "]" }

// ObjectField is one `name: value` pair of an ObjectLiteral, in source order.
type ObjectField struct {
	Name  *Identifier
	Value Expression
}

// ObjectLiteral is `{ name: value, ... }`. Field insertion order is preserved.
type ObjectLiteral struct {
	Position lexer.Position
	Fields   []ObjectField
}

func (o *ObjectLiteral) Pos() lexer.Position { return o.Position }
func (o *ObjectLiteral) expressionNode()     {}
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		parts[i] = f.Name.String() + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Parameter is one function parameter: a name with its declared type.
type Parameter struct {
	Name     *Identifier
	DataType *TypeExpr
}

func (p Parameter) String() string { return p.Name.String() + ": " + p.DataType.String() }

// FunctionLiteral is `fn(params) -> ReturnType { body }`. ReturnType may be
// nil, in which case it is inferred from the body during lowering.
type FunctionLiteral struct {
	Position   lexer.Position
	Parameters []Parameter
	ReturnType *TypeExpr
	Body       *BlockExpression
}

func (f *FunctionLiteral) Pos() lexer.Position { return f.Position }
func (f *FunctionLiteral) expressionNode()     {}
func (f *FunctionLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("fn(")
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(") ")
	if f.ReturnType != nil {
		out.WriteString("-> ")
		out.WriteString(f.ReturnType.String())
		out.WriteString(" ")
	}
	out.WriteString(f.Body.String())
	return out.String()
}

// BlockExpression is `{ stmt* }`. As an expression its value is the value
// produced by its trailing return (explicit or implicit).
type BlockExpression struct {
	Position   lexer.Position
	Statements []Statement
}

func (b *BlockExpression) Pos() lexer.Position { return b.Position }
func (b *BlockExpression) expressionNode()     {}
func (b *BlockExpression) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// PrefixExpression is a unary operator applied to Right: `-x`, `!b`.
type PrefixExpression struct {
	Position lexer.Position
	Operator lexer.Kind
	Right    Expression
}

func (p *PrefixExpression) Pos() lexer.Position { return p.Position }
func (p *PrefixExpression) expressionNode()     {}
func (p *PrefixExpression) String() string {
	return "(" + p.Operator.String() + p.Right.String() + ")"
}

// InfixExpression is a binary operator applied to Left and Right.
type InfixExpression struct {
	Position lexer.Position
	Left     Expression
	Operator lexer.Kind
	Right    Expression
}

func (i *InfixExpression) Pos() lexer.Position { return i.Position }
func (i *InfixExpression) expressionNode()     {}
func (i *InfixExpression) String() string {
	return "(" + i.Left.String() + " " + i.Operator.String() + " " + i.Right.String() + ")"
}

// IfExpression is `if (condition) consequence [else alternative]`; both
// branches are blocks and the whole construct is itself an expression.
type IfExpression struct {
	Position    lexer.Position
	Condition   Expression
	Consequence *BlockExpression
	Alternative *BlockExpression // nil when no else branch
}

func (e *IfExpression) Pos() lexer.Position { return e.Position }
func (e *IfExpression) expressionNode()     {}
func (e *IfExpression) String() string {
	out := "if (" + e.Condition.String() + ") " + e.Consequence.String()
	if e.Alternative != nil {
		out += " else " + e.Alternative.String()
	}
	return out
}

// CallExpression applies Function to Arguments, evaluated left to right.
type CallExpression struct {
	Position  lexer.Position
	Function  Expression
	Arguments []Expression
}

func (c *CallExpression) Pos() lexer.Position { return c.Position }
func (c *CallExpression) expressionNode()     {}
func (c *CallExpression) String() string {
	return c.Function.String() + "(" + joinStrings(c.Arguments) + ")"
}

// IndexExpression is `left[index]`.
type IndexExpression struct {
	Position lexer.Position
	Left     Expression
	Index    Expression
}

func (e *IndexExpression) Pos() lexer.Position { return e.Position }
func (e *IndexExpression) expressionNode()     {}
func (e *IndexExpression) String() string {
	return e.Left.String() + "[" + e.Index.String() + "]"
}
