// Package gopdl provides parsing, resolution, and rendering of PDL
// protocol description documents.
package gopdl

import "github.com/golangpdl/gopdl/pdl"

// Type aliases for public API - all types come from the pdl subpackage.

// Protocol is the root of a parsed PDL document.
type Protocol = pdl.Protocol

// Version is the protocol version as a major.minor pair.
type Version = pdl.Version

// Domain is a named grouping of types, commands, and events.
type Domain = pdl.Domain

// Dependency names another domain a domain depends on.
type Dependency = pdl.Dependency

// TypeDef is a named type declaration.
type TypeDef = pdl.TypeDef

// EnumValue is one value of an enum block.
type EnumValue = pdl.EnumValue

// Param is a command/event parameter, return value, or object property.
type Param = pdl.Param

// Command is a named operation within a domain.
type Command = pdl.Command

// Event is a named one-way notification.
type Event = pdl.Event

// Redirect points a command at another domain's implementation.
type Redirect = pdl.Redirect

// Ty is a type expression.
type Ty = pdl.Ty

// TyKind discriminates type expressions.
type TyKind = pdl.TyKind

// BaseKind identifies the fundamental shape of a type declaration.
type BaseKind = pdl.BaseKind

// Pos is a 1-based line/column source position.
type Pos = pdl.Pos

// ParseError is a fatal structural parse error.
type ParseError = pdl.ParseError

// UnresolvedRef describes a reference that could not be resolved.
type UnresolvedRef = pdl.UnresolvedRef

// UnresolvedKind identifies what an unresolved reference points at.
type UnresolvedKind = pdl.UnresolvedKind

// TyKind constants.
const (
	TyString  = pdl.TyString
	TyInteger = pdl.TyInteger
	TyNumber  = pdl.TyNumber
	TyBoolean = pdl.TyBoolean
	TyObject  = pdl.TyObject
	TyAny     = pdl.TyAny
	TyBinary  = pdl.TyBinary
	TyEnum    = pdl.TyEnum
	TyArray   = pdl.TyArray
	TyRef     = pdl.TyRef
)

// BaseKind constants.
const (
	BasePrimitive = pdl.BasePrimitive
	BaseEnum      = pdl.BaseEnum
	BaseObject    = pdl.BaseObject
	BaseArray     = pdl.BaseArray
)

// UnresolvedKind constants.
const (
	UnresolvedType       = pdl.UnresolvedType
	UnresolvedDependency = pdl.UnresolvedDependency
	UnresolvedRedirect   = pdl.UnresolvedRedirect
)

// FromJSON reconstructs a document model from a JSON export.
var FromJSON = pdl.FromJSON
