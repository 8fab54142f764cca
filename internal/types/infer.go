package types

import (
	"fmt"

	"github.com/siglang/sanetaka/internal/ast"
	"github.com/siglang/sanetaka/internal/lexer"
)

// TypeErrorKind enumerates the TypeError variants from the Language's
// CompileError family.
type TypeErrorKind int

const (
	ExpectedDataType TypeErrorKind = iota
	UndefinedName
	NotCallable
	ArityMismatch
	InvalidOperator
)

// TypeError is raised by TypeOf when a type mismatch is observed.
// It always carries the Position of the offending expression.
type TypeError struct {
	Kind     TypeErrorKind
	Position lexer.Position

	Expected, Found *DataType
	Name            string
	CalleeType      *DataType
	ExpectedArity   int
	FoundArity      int
	Operator        string
	OperandTypes    []*DataType
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case ExpectedDataType:
		return fmt.Sprintf("expected type %s, found %s", e.Expected, e.Found)
	case UndefinedName:
		return fmt.Sprintf("undefined name %q", e.Name)
	case NotCallable:
		return fmt.Sprintf("type %s is not callable", e.CalleeType)
	case ArityMismatch:
		return fmt.Sprintf("expected %d argument(s), found %d", e.ExpectedArity, e.FoundArity)
	case InvalidOperator:
		types := make([]string, len(e.OperandTypes))
		for i, t := range e.OperandTypes {
			types[i] = t.String()
		}
		return fmt.Sprintf("invalid operator %q for operand types %v", e.Operator, types)
	default:
		return "type error"
	}
}

// Scope is the read side of a compile-time symbol table: enough for TypeOf
// to resolve identifiers without depending on the semantic package.
type Scope interface {
	LookupType(name string) (*DataType, bool)
}

// AliasScope is the read side of type-alias resolution. SymbolTable
// (internal/semantic) implements both Scope and AliasScope; ResolveTypeExpr
// accepts nil when no alias is in play.
type AliasScope interface {
	ResolveAlias(name string) (*DataType, bool)
}

// blockScope layers a block's own let-bindings and type aliases over an
// outer Scope, so a trailing expression can see names bound earlier in the
// same block. It implements both Scope and AliasScope.
type blockScope struct {
	outer   Scope
	locals  map[string]*DataType
	aliases map[string]*DataType
}

func newBlockScope(outer Scope) *blockScope {
	return &blockScope{outer: outer, locals: map[string]*DataType{}, aliases: map[string]*DataType{}}
}

func (s *blockScope) LookupType(name string) (*DataType, bool) {
	if t, ok := s.locals[name]; ok {
		return t, true
	}
	return s.outer.LookupType(name)
}

func (s *blockScope) ResolveAlias(name string) (*DataType, bool) {
	if t, ok := s.aliases[name]; ok {
		return t, true
	}
	if outerAliases, ok := s.outer.(AliasScope); ok {
		return outerAliases.ResolveAlias(name)
	}
	return nil, false
}

// TypeOf infers the DataType of expr under scope, recursing structurally.
func TypeOf(expr ast.Expression, scope Scope) (*DataType, *TypeError) {
	switch e := expr.(type) {
	case *ast.Identifier:
		t, ok := scope.LookupType(e.Value)
		if !ok {
			return nil, &TypeError{Kind: UndefinedName, Position: e.Position, Name: e.Value}
		}
		return t, nil

	case *ast.NumberLiteral:
		return NewNumber(), nil
	case *ast.StringLiteral:
		return NewString(), nil
	case *ast.BooleanLiteral:
		return NewBoolean(), nil

	case *ast.ArrayLiteral:
		return typeOfArray(e, scope)
	case *ast.ObjectLiteral:
		return typeOfObject(e, scope)
	case *ast.FunctionLiteral:
		return typeOfFunction(e, scope)
	case *ast.BlockExpression:
		return typeOfBlock(e, scope)

	case *ast.PrefixExpression:
		return typeOfPrefix(e, scope)
	case *ast.InfixExpression:
		return typeOfInfix(e, scope)
	case *ast.IfExpression:
		return typeOfIf(e, scope)
	case *ast.CallExpression:
		return typeOfCall(e, scope)
	case *ast.IndexExpression:
		return typeOfIndex(e, scope)

	default:
		return nil, &TypeError{Kind: ExpectedDataType, Position: expr.Pos(), Expected: NewAuto(), Found: NewAuto()}
	}
}

func typeOfArray(e *ast.ArrayLiteral, scope Scope) (*DataType, *TypeError) {
	if len(e.Elements) == 0 {
		return NewArray(NewAuto()), nil
	}
	elemType, err := TypeOf(e.Elements[0], scope)
	if err != nil {
		return nil, err
	}
	for _, elem := range e.Elements[1:] {
		t, err := TypeOf(elem, scope)
		if err != nil {
			return nil, err
		}
		if !Equals(elemType, t) {
			return nil, &TypeError{Kind: ExpectedDataType, Position: elem.Pos(), Expected: elemType, Found: t}
		}
	}
	return NewArray(elemType), nil
}

func typeOfObject(e *ast.ObjectLiteral, scope Scope) (*DataType, *TypeError) {
	fields := make(map[string]*DataType, len(e.Fields))
	order := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		t, err := TypeOf(f.Value, scope)
		if err != nil {
			return nil, err
		}
		fields[f.Name.Value] = t
		order[i] = f.Name.Value
	}
	return NewObject(order, fields), nil
}

// functionScope layers parameter bindings over an outer Scope.
type functionScope struct {
	outer  Scope
	locals map[string]*DataType
}

func (s *functionScope) LookupType(name string) (*DataType, bool) {
	if t, ok := s.locals[name]; ok {
		return t, true
	}
	return s.outer.LookupType(name)
}

// ResolveAlias delegates to the outer scope so a function body can still
// see type aliases defined above it, e.g. at the top level.
func (s *functionScope) ResolveAlias(name string) (*DataType, bool) {
	if outerAliases, ok := s.outer.(AliasScope); ok {
		return outerAliases.ResolveAlias(name)
	}
	return nil, false
}

func typeOfFunction(e *ast.FunctionLiteral, scope Scope) (*DataType, *TypeError) {
	params := make([]*DataType, len(e.Parameters))
	locals := make(map[string]*DataType, len(e.Parameters))
	for i, p := range e.Parameters {
		pt := ResolveTypeExpr(p.DataType, asAliasScope(scope))
		params[i] = pt
		locals[p.Name.Value] = pt
	}

	inner := &functionScope{outer: scope, locals: locals}

	bodyType, err := typeOfBlock(e.Body, inner)
	if err != nil {
		return nil, err
	}

	ret := bodyType
	if e.ReturnType != nil {
		declared := ResolveTypeExpr(e.ReturnType, asAliasScope(scope))
		if !Equals(declared, bodyType) {
			return nil, &TypeError{Kind: ExpectedDataType, Position: e.Position, Expected: declared, Found: bodyType}
		}
		if declared.Kind != Auto {
			ret = declared
		}
	}

	return NewFunction(params, ret), nil
}

// typeOfBlock infers a block's type as the type of its trailing return
// value (explicit or implicit), or Void if it has none. It walks every
// statement in order so that let-bindings and type aliases declared
// earlier in the block are visible to later ones, including the trailing
// expression.
func typeOfBlock(e *ast.BlockExpression, scope Scope) (*DataType, *TypeError) {
	inner := newBlockScope(scope)
	result := NewVoid()

	for i, stmt := range e.Statements {
		switch s := stmt.(type) {
		case *ast.LetStatement:
			vt, err := TypeOf(s.Value, inner)
			if err != nil {
				return nil, err
			}
			if s.DataType != nil {
				declared := ResolveTypeExpr(s.DataType, inner)
				if !Equals(declared, vt) {
					return nil, &TypeError{Kind: ExpectedDataType, Position: s.Position, Expected: declared, Found: vt}
				}
			}
			inner.locals[s.Name.Value] = vt

		case *ast.TypeStatement:
			inner.aliases[s.Name.Value] = ResolveTypeExpr(s.DataType, inner)

		case *ast.ReturnStatement:
			rt, err := TypeOf(s.Value, inner)
			if err != nil {
				return nil, err
			}
			if i == len(e.Statements)-1 {
				result = rt
			}

		case *ast.ExpressionStatement:
			if _, err := TypeOf(s.Expression, inner); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func typeOfPrefix(e *ast.PrefixExpression, scope Scope) (*DataType, *TypeError) {
	rt, err := TypeOf(e.Right, scope)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case lexer.MINUS:
		if !rt.IsNumeric() {
			return nil, &TypeError{Kind: ExpectedDataType, Position: e.Position, Expected: NewNumber(), Found: rt}
		}
		return NewNumber(), nil
	case lexer.BANG:
		if !rt.IsBoolean() {
			return nil, &TypeError{Kind: ExpectedDataType, Position: e.Position, Expected: NewBoolean(), Found: rt}
		}
		return NewBoolean(), nil
	default:
		return nil, &TypeError{Kind: InvalidOperator, Position: e.Position, Operator: e.Operator.String(), OperandTypes: []*DataType{rt}}
	}
}

func isComparison(op lexer.Kind) bool {
	switch op {
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.LTE, lexer.GT, lexer.GTE:
		return true
	default:
		return false
	}
}

func typeOfInfix(e *ast.InfixExpression, scope Scope) (*DataType, *TypeError) {
	lt, err := TypeOf(e.Left, scope)
	if err != nil {
		return nil, err
	}
	rt, err := TypeOf(e.Right, scope)
	if err != nil {
		return nil, err
	}

	switch {
	case lt.Kind == Number && rt.Kind == Number:
		if isComparison(e.Operator) {
			return NewBoolean(), nil
		}
		switch e.Operator {
		case lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH:
			return NewNumber(), nil
		}
	case lt.Kind == String && rt.Kind == String:
		if isComparison(e.Operator) {
			return NewBoolean(), nil
		}
		if e.Operator == lexer.PLUS {
			return NewString(), nil
		}
	case lt.Kind == Boolean && rt.Kind == Boolean:
		if e.Operator == lexer.EQ || e.Operator == lexer.NEQ {
			return NewBoolean(), nil
		}
	}

	return nil, &TypeError{Kind: InvalidOperator, Position: e.Position, Operator: e.Operator.String(), OperandTypes: []*DataType{lt, rt}}
}

func typeOfIf(e *ast.IfExpression, scope Scope) (*DataType, *TypeError) {
	ct, err := TypeOf(e.Condition, scope)
	if err != nil {
		return nil, err
	}
	if !ct.IsBoolean() {
		return nil, &TypeError{Kind: ExpectedDataType, Position: e.Condition.Pos(), Expected: NewBoolean(), Found: ct}
	}

	tt, err := typeOfBlock(e.Consequence, scope)
	if err != nil {
		return nil, err
	}

	if e.Alternative == nil {
		return tt, nil
	}

	et, err := typeOfBlock(e.Alternative, scope)
	if err != nil {
		return nil, err
	}
	if !Equals(tt, et) {
		return nil, &TypeError{Kind: ExpectedDataType, Position: e.Position, Expected: tt, Found: et}
	}
	return tt, nil
}

func typeOfCall(e *ast.CallExpression, scope Scope) (*DataType, *TypeError) {
	ft, err := TypeOf(e.Function, scope)
	if err != nil {
		return nil, err
	}
	if ft.Kind != Function {
		return nil, &TypeError{Kind: NotCallable, Position: e.Position, CalleeType: ft}
	}
	if len(ft.Parameters) != len(e.Arguments) {
		return nil, &TypeError{Kind: ArityMismatch, Position: e.Position, ExpectedArity: len(ft.Parameters), FoundArity: len(e.Arguments)}
	}
	for i, arg := range e.Arguments {
		at, err := TypeOf(arg, scope)
		if err != nil {
			return nil, err
		}
		if !Equals(ft.Parameters[i], at) {
			return nil, &TypeError{Kind: ExpectedDataType, Position: arg.Pos(), Expected: ft.Parameters[i], Found: at}
		}
	}
	return ft.Return, nil
}

func typeOfIndex(e *ast.IndexExpression, scope Scope) (*DataType, *TypeError) {
	lt, err := TypeOf(e.Left, scope)
	if err != nil {
		return nil, err
	}
	if lt.Kind != Array {
		return nil, &TypeError{Kind: ExpectedDataType, Position: e.Left.Pos(), Expected: NewArray(NewAuto()), Found: lt}
	}
	it, err := TypeOf(e.Index, scope)
	if err != nil {
		return nil, err
	}
	if !it.IsNumeric() {
		return nil, &TypeError{Kind: ExpectedDataType, Position: e.Index.Pos(), Expected: NewNumber(), Found: it}
	}
	return lt.Element, nil
}

// ResolveTypeExpr converts the surface ast.TypeExpr into a resolved
// DataType. Primitive and array forms resolve directly; any other name is
// looked up in scope as a type alias first, falling back to an unresolved
// Generic(name) when scope is nil or has no such alias (which lets a
// genuinely generic type parameter still type-check structurally by name).
func ResolveTypeExpr(t *ast.TypeExpr, scope AliasScope) *DataType {
	if t == nil {
		return NewAuto()
	}
	if t.Element != nil {
		return NewArray(ResolveTypeExpr(t.Element, scope))
	}
	switch t.Name {
	case "number":
		return NewNumber()
	case "string":
		return NewString()
	case "boolean":
		return NewBoolean()
	case "void":
		return NewVoid()
	case "", "auto":
		return NewAuto()
	default:
		if scope != nil {
			if dt, ok := scope.ResolveAlias(t.Name); ok {
				return dt
			}
		}
		return NewGeneric(t.Name)
	}
}

// FromTypeExpr is ResolveTypeExpr with no alias scope, for callers that
// only ever see primitive or array annotations.
func FromTypeExpr(t *ast.TypeExpr) *DataType {
	return ResolveTypeExpr(t, nil)
}

// asAliasScope type-asserts scope to AliasScope, returning nil when it
// doesn't implement one (e.g. a bare functionScope with no outer alias
// table reachable).
func asAliasScope(scope Scope) AliasScope {
	if as, ok := scope.(AliasScope); ok {
		return as
	}
	return nil
}
