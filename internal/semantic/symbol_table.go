// Package semantic implements the compile-time symbol table and the
// analyzer that walks the AST before lowering, rejecting undefined names
// and type mismatches early so the compiler's own lowering pass can assume
// a well-formed program.
package semantic

import (
	"fmt"

	"github.com/siglang/sanetaka/internal/lexer"
	"github.com/siglang/sanetaka/internal/types"
)

// SymbolAttributes carries compile-time-only metadata about a binding. The
// only attribute defined today is a function binding's return type. The
// analyzer records it but does not read it back: a function body is checked
// against its declared return type inside types.TypeOf.
type SymbolAttributes struct {
	FunctionReturnType *types.DataType
}

// SymbolEntry is what a SymbolTable frame maps a name to: its type plus
// attributes. It is separate from the runtime Environment, which holds
// values, not types.
type SymbolEntry struct {
	DataType   *types.DataType
	Attributes SymbolAttributes
}

// SymbolTable is one lexical frame of name -> SymbolEntry bindings, with an
// optional parent frame. Lookups ascend the parent chain; inserts always
// write into the current frame.
type SymbolTable struct {
	entries map[string]*SymbolEntry
	aliases map[string]*types.DataType
	parent  *SymbolTable
}

// New creates a SymbolTable frame enclosed by parent (nil for the top-level
// frame).
func New(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		entries: make(map[string]*SymbolEntry),
		aliases: make(map[string]*types.DataType),
		parent:  parent,
	}
}

// Insert writes entry into the current frame. Redefining a name already
// present in this same frame is rejected; shadowing a name from an outer
// frame is allowed.
func (st *SymbolTable) Insert(name string, entry *SymbolEntry) error {
	if _, exists := st.entries[name]; exists {
		return fmt.Errorf("%q is already defined in this scope", name)
	}
	st.entries[name] = entry
	return nil
}

// Lookup ascends the parent chain looking for name. The returned
// *SymbolEntry is mutable in place, which is what a separate lookup_mut
// would otherwise be needed for.
func (st *SymbolTable) Lookup(name string) (*SymbolEntry, bool) {
	if entry, ok := st.entries[name]; ok {
		return entry, true
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil, false
}

// LookupType adapts Lookup to the types.Scope interface consumed by
// types.TypeOf.
func (st *SymbolTable) LookupType(name string) (*types.DataType, bool) {
	entry, ok := st.Lookup(name)
	if !ok {
		return nil, false
	}
	return entry.DataType, true
}

// DefineAlias registers a `type Name = T;` alias in this frame.
func (st *SymbolTable) DefineAlias(name string, dt *types.DataType) {
	st.aliases[name] = dt
}

// ResolveAlias ascends the parent chain looking for a type alias. Each
// entry already holds a fully-resolved DataType (DefineAlias is only ever
// called with one), so aliasing an alias works transparently with no chain
// to walk here - the chain was collapsed at the point the alias was
// defined. A name with no alias reports false here; types.ResolveTypeExpr
// then treats it as Generic(name) rather than reporting an error.
func (st *SymbolTable) ResolveAlias(name string) (*types.DataType, bool) {
	if dt, ok := st.aliases[name]; ok {
		return dt, true
	}
	if st.parent != nil {
		return st.parent.ResolveAlias(name)
	}
	return nil, false
}

// Position is re-exported so callers of this package don't also need to
// import internal/lexer just to build a SymbolEntry error.
type Position = lexer.Position
