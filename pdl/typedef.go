package pdl

// BaseKind identifies the fundamental shape of a type declaration.
type BaseKind int

const (
	// BasePrimitive is a plain alias of a built-in scalar type.
	BasePrimitive BaseKind = iota
	// BaseEnum is a type with an enum value block.
	BaseEnum
	// BaseObject is a type with a properties block.
	BaseObject
	// BaseArray is an "extends array of T" declaration.
	BaseArray
)

// String returns the kind name.
func (k BaseKind) String() string {
	switch k {
	case BasePrimitive:
		return "primitive"
	case BaseEnum:
		return "enum"
	case BaseObject:
		return "object"
	case BaseArray:
		return "array"
	default:
		return "unknown"
	}
}

// TypeDef is a named type declaration within a domain. Type names are
// unique within their domain; the parser enforces this.
type TypeDef struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         string
	// Extends is the declared base type: a primitive, an array-of
	// wrapper, or a reference to another type.
	Extends *Ty
	// Enum holds the values of an enum type, in source order.
	Enum []EnumValue
	// Properties holds the fields of an object type, in source order.
	Properties []*Param

	// Pos is the source position of the declaration.
	Pos Pos
}

// Base returns the fundamental shape of this declaration.
func (t *TypeDef) Base() BaseKind {
	switch {
	case len(t.Enum) > 0:
		return BaseEnum
	case t.Extends != nil && t.Extends.Kind == TyArray:
		return BaseArray
	case len(t.Properties) > 0 || (t.Extends != nil && t.Extends.Kind == TyObject):
		return BaseObject
	default:
		return BasePrimitive
	}
}

// EnumValue is one value of an enum block, with its optional comment.
type EnumValue struct {
	Description []string
	Name        string
}

// Param is a named field with a referenced type: a command or event
// parameter, a command return value, or an object property. All share
// the same shape and rules.
type Param struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Optional     bool
	Type         *Ty
	Name         string

	// Pos is the source position of the declaration.
	Pos Pos
}
