// Package ast defines parse-phase node types for PDL documents.
//
// Nodes are a one-to-one translation of matched grammar productions: they
// carry source positions and attached documentation comments but no
// resolution state. Cross-domain type references are stored as raw
// qualified/unqualified name pairs; binding happens after lowering.
package ast

import (
	"github.com/golangpdl/gopdl/internal/types"
)

// Ident is an identifier with its source position.
type Ident struct {
	Name string
	Pos  types.Pos
}

// NewIdent creates a new identifier.
func NewIdent(name string, pos types.Pos) Ident {
	return Ident{Name: name, Pos: pos}
}

// Protocol is the root of a parsed PDL document.
type Protocol struct {
	// Description is the leading comment block of the file, one entry
	// per comment line.
	Description []string
	Version     *Version
	Domains     []*Domain
}

// Version is the protocol version block (major.minor).
type Version struct {
	Major int
	Minor int
	Pos   types.Pos
}

// Domain is a named grouping of types, commands, and events.
type Domain struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         Ident
	Dependencies []Ident
	Types        []*TypeDef
	Commands     []*Command
	Events       []*Event
}

// TypeDef is a named type declaration.
type TypeDef struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         Ident
	Extends      TyExpr
	Enum         []EnumValue // non-nil only for enum types
	Properties   []*Param    // non-nil only for object types
}

// EnumValue is one value of an enum block.
type EnumValue struct {
	Description []string
	Name        Ident
}

// Param is a parameter, return value, or object property.
type Param struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Optional     bool
	Type         TyExpr
	Name         Ident
}

// Command is a named operation with parameters and optional returns.
type Command struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         Ident
	Redirect     *Redirect
	Parameters   []*Param
	Returns      []*Param
}

// Event is a named notification with parameters.
type Event struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         Ident
	Parameters   []*Param
}

// Redirect points a command at another domain's implementation.
type Redirect struct {
	Description []string
	To          Ident
}

// TyExprKind discriminates type expressions.
type TyExprKind int

const (
	// TyPrimitive is one of the built-in scalar types.
	TyPrimitive TyExprKind = iota
	// TyEnum is an inline anonymous enum (parameter type "enum").
	TyEnum
	// TyRef is a reference to a declared type, optionally
	// domain-qualified.
	TyRef
)

// TyExpr is a type expression as written in source: an optional
// "array of" wrapper around a primitive, an inline enum, or a name
// reference.
type TyExpr struct {
	Kind      TyExprKind
	Array     bool
	Primitive string      // primitive keyword for TyPrimitive
	Domain    string      // qualifier for TyRef, "" if unqualified
	Name      string      // referenced type name for TyRef
	Enum      []EnumValue // variants for TyEnum
	Pos       types.Pos
}
