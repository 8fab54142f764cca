// Package ast defines the Abstract Syntax Tree node types produced by the
// Sanetaka parser. Every node carries a Position that traces back to the
// token it was parsed from.
package ast

import (
	"bytes"
	"strings"

	"github.com/siglang/sanetaka/internal/lexer"
)

// Node is the base interface for every AST node.
type Node interface {
	Pos() lexer.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action but doesn't itself produce
// a value at the program level.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: the full sequence of top-level statements, plus
// any errors accumulated while parsing.
type Program struct {
	Statements []Statement
	Errors     []string
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier names a variable, function, or type.
type Identifier struct {
	Position lexer.Position
	Value    string
}

func (i *Identifier) Pos() lexer.Position { return i.Position }
func (i *Identifier) String() string      { return i.Value }
func (i *Identifier) expressionNode()     {}

// TypeExpr is the surface syntax for a type annotation: a bare name
// ("number", "string", an alias, or a generic parameter) or an array form
// ("[number]").
type TypeExpr struct {
	Position lexer.Position
	Name     string    // set when this is a bare name
	Element  *TypeExpr // set when this is an array type "[Element]"
}

func (t *TypeExpr) Pos() lexer.Position { return t.Position }

func (t *TypeExpr) String() string {
	if t.Element != nil {
		return "[" + t.Element.String() + "]"
	}
	return t.Name
}

// joinStrings renders a list of Stringers as a comma-separated list,
// preserving source order.
func joinStrings[T interface{ String() string }](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}
