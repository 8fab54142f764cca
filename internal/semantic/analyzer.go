package semantic

import (
	"fmt"

	"github.com/siglang/sanetaka/internal/ast"
	"github.com/siglang/sanetaka/internal/lexer"
	"github.com/siglang/sanetaka/internal/types"
)

// RedefinedError is raised when a let-binding shadows a name already
// defined in the very same scope, as opposed to an outer one.
type RedefinedError struct {
	Name     string
	Position lexer.Position
}

func (e *RedefinedError) Error() string {
	return fmt.Sprintf("%q is already defined in this scope at %s", e.Name, e.Position)
}

// Analyzer walks a parsed Program once, before lowering, building the
// top-level SymbolTable and collecting every undefined-name and
// type-mismatch error it finds. A non-empty Errors() means the program must
// not be handed to the compiler.
type Analyzer struct {
	table  *SymbolTable
	errors []error
}

// NewAnalyzer creates an Analyzer with a fresh top-level SymbolTable.
func NewAnalyzer() *Analyzer {
	return &Analyzer{table: New(nil)}
}

// Analyze runs a fresh Analyzer over program and returns both the
// populated top-level SymbolTable and any errors found. The table is
// returned even on error, so a caller can still inspect what was resolved.
func Analyze(program *ast.Program) (*SymbolTable, []error) {
	a := NewAnalyzer()
	for _, stmt := range program.Statements {
		a.analyzeStatement(stmt, a.table)
	}
	return a.table, a.errors
}

// Errors returns every error collected so far.
func (a *Analyzer) Errors() []error {
	return a.errors
}

func (a *Analyzer) fail(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement, scope *SymbolTable) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		a.analyzeLet(s, scope)
	case *ast.TypeStatement:
		a.analyzeType(s, scope)
	case *ast.ReturnStatement:
		if _, err := types.TypeOf(s.Value, scope); err != nil {
			a.fail(err)
		}
	case *ast.ExpressionStatement:
		if _, err := types.TypeOf(s.Expression, scope); err != nil {
			a.fail(err)
		}
	}
}

// analyzeLet type-checks a let-binding's value against its optional
// declared annotation and inserts the resulting entry into scope.
//
// When the value is a function literal with an explicit return type, the
// name is pre-registered with its declared signature before the body is
// checked, so a function may call itself recursively. Without an explicit
// return type there is nothing to pre-register against, so a recursive
// call inside such a function is reported as an undefined name - write the
// return type out to recurse.
func (a *Analyzer) analyzeLet(s *ast.LetStatement, scope *SymbolTable) {
	placeholderInserted := false
	if fn, ok := s.Value.(*ast.FunctionLiteral); ok && fn.ReturnType != nil {
		params := make([]*types.DataType, len(fn.Parameters))
		for i, p := range fn.Parameters {
			params[i] = types.ResolveTypeExpr(p.DataType, scope)
		}
		ret := types.ResolveTypeExpr(fn.ReturnType, scope)
		placeholder := &SymbolEntry{
			DataType:   types.NewFunction(params, ret),
			Attributes: SymbolAttributes{FunctionReturnType: ret},
		}
		if err := scope.Insert(s.Name.Value, placeholder); err != nil {
			a.fail(&RedefinedError{Name: s.Name.Value, Position: s.Position})
			return
		}
		placeholderInserted = true
	}

	vt, err := types.TypeOf(s.Value, scope)
	if err != nil {
		a.fail(err)
		return
	}

	if s.DataType != nil {
		declared := types.ResolveTypeExpr(s.DataType, scope)
		if !types.Equals(declared, vt) {
			a.fail(&types.TypeError{Kind: types.ExpectedDataType, Position: s.Position, Expected: declared, Found: vt})
			return
		}
		if declared.Kind != types.Auto {
			vt = declared
		}
	}

	entry := &SymbolEntry{DataType: vt}
	if vt.Kind == types.Function {
		entry.Attributes.FunctionReturnType = vt.Return
	}

	if placeholderInserted {
		// The recursive placeholder already occupies this name in scope;
		// refine it in place now that the body has been fully checked.
		*scope.entries[s.Name.Value] = *entry
		return
	}
	if err := scope.Insert(s.Name.Value, entry); err != nil {
		a.fail(&RedefinedError{Name: s.Name.Value, Position: s.Position})
	}
}

func (a *Analyzer) analyzeType(s *ast.TypeStatement, scope *SymbolTable) {
	dt := types.ResolveTypeExpr(s.DataType, scope)
	scope.DefineAlias(s.Name.Value, dt)
}
