// Package parser builds an *ast.Program from a token stream using a
// Pratt (operator-precedence) expression parser, in the style the teacher
// repo uses for DWScript: a single-pass recursive-descent parser that
// accumulates errors instead of aborting on the first one.
package parser

import (
	"fmt"

	"github.com/siglang/sanetaka/internal/ast"
	"github.com/siglang/sanetaka/internal/lexer"
)

const (
	_ int = iota
	LOWEST
	EQUALITY    // == !=
	COMPARISON  // < <= > >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x !x
	CALL        // fn(x)
	INDEX       // arr[x]
)

var precedences = map[lexer.Kind]int{
	lexer.EQ:       EQUALITY,
	lexer.NEQ:      EQUALITY,
	lexer.LT:       COMPARISON,
	lexer.LTE:      COMPARISON,
	lexer.GT:       COMPARISON,
	lexer.GTE:      COMPARISON,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes tokens from a Lexer and produces an *ast.Program.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	errors []string

	prefixFns map[lexer.Kind]prefixParseFn
	infixFns  map[lexer.Kind]infixParseFn
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[lexer.Kind]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.NUMBER:   p.parseNumberLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBooleanLiteral,
		lexer.FALSE:    p.parseBooleanLiteral,
		lexer.BANG:     p.parsePrefixExpression,
		lexer.MINUS:    p.parsePrefixExpression,
		lexer.LPAREN:   p.parseGroupedExpression,
		lexer.LBRACKET: p.parseArrayLiteral,
		lexer.LBRACE:   p.parseObjectLiteral,
		lexer.FN:       p.parseFunctionLiteral,
		lexer.IF:       p.parseIfExpression,
	}

	p.infixFns = map[lexer.Kind]infixParseFn{
		lexer.PLUS:     p.parseInfixExpression,
		lexer.MINUS:    p.parseInfixExpression,
		lexer.ASTERISK: p.parseInfixExpression,
		lexer.SLASH:    p.parseInfixExpression,
		lexer.EQ:       p.parseInfixExpression,
		lexer.NEQ:      p.parseInfixExpression,
		lexer.LT:       p.parseInfixExpression,
		lexer.LTE:      p.parseInfixExpression,
		lexer.GT:       p.parseInfixExpression,
		lexer.GTE:      p.parseInfixExpression,
		lexer.LPAREN:   p.parseCallExpression,
		lexer.LBRACKET: p.parseIndexExpression,
	}

	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...)+fmt.Sprintf(" at %s", pos))
}

func (p *Parser) expectPeek(kind lexer.Kind) bool {
	if p.peek.Kind == kind {
		p.next()
		return true
	}
	p.errorf(p.peek.Position, "expected next token to be %s, got %s instead", kind, p.peek.Kind)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the full token stream into an *ast.Program. Parse
// errors do not stop the scan: the parser recovers at the next statement
// boundary so later errors are also reported.
func ParseProgram(source string) *ast.Program {
	p := New(lexer.New(source))
	program := &ast.Program{}

	for p.cur.Kind != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.next()
	}

	program.Errors = p.errors
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.TYPE:
		return p.parseTypeStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Position: p.cur.Position}

	if !p.expectPeek(lexer.IDENT) {
		return p.recover()
	}
	stmt.Name = &ast.Identifier{Position: p.cur.Position, Value: p.cur.Literal}

	if !p.expectPeek(lexer.COLON) {
		return p.recover()
	}
	p.next()
	stmt.DataType = p.parseTypeExpr()

	if !p.expectPeek(lexer.ASSIGN) {
		return p.recover()
	}
	p.next()
	stmt.Value = p.parseExpression(LOWEST)

	if p.peek.Kind == lexer.SEMICOLON {
		p.next()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Position: p.cur.Position}
	p.next()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peek.Kind == lexer.SEMICOLON {
		p.next()
	}
	return stmt
}

func (p *Parser) parseTypeStatement() ast.Statement {
	stmt := &ast.TypeStatement{Position: p.cur.Position}

	if !p.expectPeek(lexer.IDENT) {
		return p.recover()
	}
	stmt.Name = &ast.Identifier{Position: p.cur.Position, Value: p.cur.Literal}

	if !p.expectPeek(lexer.ASSIGN) {
		return p.recover()
	}
	p.next()
	stmt.DataType = p.parseTypeExpr()

	if p.peek.Kind == lexer.SEMICOLON {
		p.next()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Position: p.cur.Position}
	stmt.Expression = p.parseExpression(LOWEST)
	if p.peek.Kind == lexer.SEMICOLON {
		p.next()
	}
	return stmt
}

// recover skips to the next semicolon (or EOF) so a single malformed
// statement doesn't cascade into spurious downstream errors.
func (p *Parser) recover() ast.Statement {
	for p.cur.Kind != lexer.SEMICOLON && p.cur.Kind != lexer.EOF {
		p.next()
	}
	return nil
}

func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	pos := p.cur.Position
	if p.cur.Kind == lexer.LBRACKET {
		p.next()
		elem := p.parseTypeExpr()
		if !p.expectPeek(lexer.RBRACKET) {
			return &ast.TypeExpr{Position: pos, Element: elem}
		}
		return &ast.TypeExpr{Position: pos, Element: elem}
	}
	name := p.cur.Literal
	return &ast.TypeExpr{Position: pos, Name: name}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errorf(p.cur.Position, "no prefix parse function for %s found", p.cur.Kind)
		return nil
	}
	left := prefix()

	for p.peek.Kind != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Kind]
		if !ok {
			return left
		}
		p.next()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Position: p.cur.Position, Value: p.cur.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	pos := p.cur.Position
	var value float64
	if _, err := fmt.Sscanf(p.cur.Literal, "%g", &value); err != nil {
		p.errorf(pos, "could not parse %q as a number", p.cur.Literal)
		return nil
	}
	return &ast.NumberLiteral{Position: pos, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Position: p.cur.Position, Value: p.cur.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Position: p.cur.Position, Value: p.cur.Kind == lexer.TRUE}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Position: p.cur.Position, Operator: p.cur.Kind}
	p.next()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Position: p.cur.Position, Left: left, Operator: p.cur.Kind}
	precedence := p.curPrecedence()
	p.next()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.next()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Position: p.cur.Position}
	lit.Elements = p.parseExpressionList(lexer.RBRACKET)
	return lit
}

func (p *Parser) parseExpressionList(end lexer.Kind) []ast.Expression {
	var list []ast.Expression

	if p.peek.Kind == end {
		p.next()
		return list
	}

	p.next()
	list = append(list, p.parseExpression(LOWEST))

	for p.peek.Kind == lexer.COMMA {
		p.next()
		p.next()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	lit := &ast.ObjectLiteral{Position: p.cur.Position}

	for p.peek.Kind != lexer.RBRACE {
		p.next()
		name := &ast.Identifier{Position: p.cur.Position, Value: p.cur.Literal}
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.next()
		value := p.parseExpression(LOWEST)
		lit.Fields = append(lit.Fields, ast.ObjectField{Name: name, Value: value})

		if p.peek.Kind == lexer.COMMA {
			p.next()
		}
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return lit
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Position: p.cur.Position}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	lit.Parameters = p.parseParameters()

	if p.peek.Kind == lexer.ARROW {
		p.next()
		p.next()
		lit.ReturnType = p.parseTypeExpr()
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	lit.Body = p.parseBlockExpression()
	return lit
}

func (p *Parser) parseParameters() []ast.Parameter {
	var params []ast.Parameter

	if p.peek.Kind == lexer.RPAREN {
		p.next()
		return params
	}

	p.next()
	params = append(params, p.parseParameter())

	for p.peek.Kind == lexer.COMMA {
		p.next()
		p.next()
		params = append(params, p.parseParameter())
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParameter() ast.Parameter {
	name := &ast.Identifier{Position: p.cur.Position, Value: p.cur.Literal}
	if !p.expectPeek(lexer.COLON) {
		return ast.Parameter{Name: name}
	}
	p.next()
	return ast.Parameter{Name: name, DataType: p.parseTypeExpr()}
}

// parseBlockExpression parses `{ stmt* }`. If the final statement is a bare
// expression statement (no explicit `return`), it is rewritten in place as
// an implicit ReturnStatement: Sanetaka is expression-oriented, so a
// block's trailing expression is its value.
func (p *Parser) parseBlockExpression() *ast.BlockExpression {
	block := &ast.BlockExpression{Position: p.cur.Position}
	p.next()

	for p.cur.Kind != lexer.RBRACE && p.cur.Kind != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.next()
	}

	if n := len(block.Statements); n > 0 {
		if exprStmt, ok := block.Statements[n-1].(*ast.ExpressionStatement); ok {
			block.Statements[n-1] = &ast.ReturnStatement{
				Position: exprStmt.Position,
				Value:    exprStmt.Expression,
				Implicit: true,
			}
		}
	}

	return block
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Position: p.cur.Position}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.next()
	expr.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlockExpression()

	if p.peek.Kind == lexer.ELSE {
		p.next()
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockExpression()
	}

	return expr
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Position: p.cur.Position, Function: fn}
	expr.Arguments = p.parseExpressionList(lexer.RPAREN)
	return expr
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Position: p.cur.Position, Left: left}
	p.next()
	expr.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return expr
}
