// Package runtime implements the evaluator's lexical scope chain.
package runtime

import "github.com/siglang/sanetaka/internal/ir"

// Environment is one frame of name -> value bindings, with an optional
// parent frame for lexical scoping. It is the runtime counterpart of
// internal/semantic's SymbolTable, holding values instead of types, and it
// is kept strictly separate: nothing in this package imports semantic, and
// nothing in semantic imports this package.
type Environment struct {
	values map[string]ir.LiteralValue
	parent *Environment
}

// New creates an Environment enclosed by parent (nil for the top-level
// frame).
func New(parent *Environment) *Environment {
	return &Environment{values: make(map[string]ir.LiteralValue), parent: parent}
}

// Get ascends the parent chain looking for name.
func (e *Environment) Get(name string) (ir.LiteralValue, bool) {
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return ir.LiteralValue{}, false
}

// Define binds name to value in this frame, shadowing any binding of the
// same name in an outer frame.
func (e *Environment) Define(name string, value ir.LiteralValue) {
	e.values[name] = value
}

// Set rebinds name to value in this frame only. Unlike a mutable variable
// system, Set never walks into a parent frame to find where a name was
// originally defined - every StoreIdentifier instruction targets the
// environment it executes in, so an assignment inside a function body can
// never reach out and mutate a binding in its caller's or closure's frame.
func (e *Environment) Set(name string, value ir.LiteralValue) {
	e.values[name] = value
}
