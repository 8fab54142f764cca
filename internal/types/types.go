// Package types implements the Language's structural type system:
// DataType construction, structural equality, and inference over AST
// expressions against a scope.
package types

import (
	"fmt"
	"strings"
)

// Kind tags a DataType's variant.
type Kind int

const (
	Number Kind = iota
	String
	Boolean
	Array
	Object
	Function
	Void
	Auto
	Generic
)

// DataType is a structural, recursive type value. Auto is a placeholder for
// inference and unifies with any concrete type; it must never leak past the
// Compiler into the IR.
type DataType struct {
	Kind Kind

	Element *DataType // Array

	Fields     map[string]*DataType // Object
	FieldOrder []string              // Object: insertion order, for deterministic String()

	Parameters []*DataType // Function
	Return     *DataType   // Function

	Name string // Generic
}

func NewNumber() *DataType  { return &DataType{Kind: Number} }
func NewString() *DataType  { return &DataType{Kind: String} }
func NewBoolean() *DataType { return &DataType{Kind: Boolean} }
func NewVoid() *DataType    { return &DataType{Kind: Void} }
func NewAuto() *DataType    { return &DataType{Kind: Auto} }

func NewGeneric(name string) *DataType {
	return &DataType{Kind: Generic, Name: name}
}

func NewArray(element *DataType) *DataType {
	return &DataType{Kind: Array, Element: element}
}

func NewFunction(params []*DataType, ret *DataType) *DataType {
	return &DataType{Kind: Function, Parameters: params, Return: ret}
}

// NewObject builds an Object type, preserving the field order given.
func NewObject(order []string, fields map[string]*DataType) *DataType {
	return &DataType{Kind: Object, FieldOrder: order, Fields: fields}
}

func (d *DataType) String() string {
	switch d.Kind {
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Void:
		return "void"
	case Auto:
		return "auto"
	case Generic:
		return d.Name
	case Array:
		return "[" + d.Element.String() + "]"
	case Object:
		parts := make([]string, len(d.FieldOrder))
		for i, name := range d.FieldOrder {
			parts[i] = fmt.Sprintf("%s: %s", name, d.Fields[name].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Function:
		parts := make([]string, len(d.Parameters))
		for i, p := range d.Parameters {
			parts[i] = p.String()
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), d.Return.String())
	default:
		return "?"
	}
}

// Equals is structural, recursive type equality. Auto matches anything;
// Generic(x) matches only Generic(x).
func Equals(a, b *DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == Auto || b.Kind == Auto {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case Number, String, Boolean, Void:
		return true
	case Generic:
		return a.Name == b.Name
	case Array:
		return Equals(a.Element, b.Element)
	case Function:
		if len(a.Parameters) != len(b.Parameters) {
			return false
		}
		for i := range a.Parameters {
			if !Equals(a.Parameters[i], b.Parameters[i]) {
				return false
			}
		}
		return Equals(a.Return, b.Return)
	case Object:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for name, at := range a.Fields {
			bt, ok := b.Fields[name]
			if !ok || !Equals(at, bt) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsNumeric reports whether d is the Number type.
func (d *DataType) IsNumeric() bool { return d.Kind == Number }

// IsBoolean reports whether d is the Boolean type.
func (d *DataType) IsBoolean() bool { return d.Kind == Boolean }
