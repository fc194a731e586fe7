package pdl

// TyKind discriminates type expressions.
type TyKind int

const (
	// TyString is the built-in string type.
	TyString TyKind = iota
	// TyInteger is the built-in integer type.
	TyInteger
	// TyNumber is the built-in floating-point number type.
	TyNumber
	// TyBoolean is the built-in boolean type.
	TyBoolean
	// TyObject is the built-in untyped object type.
	TyObject
	// TyAny is the built-in any-value type.
	TyAny
	// TyBinary is the built-in binary blob type.
	TyBinary
	// TyEnum is an inline anonymous enum.
	TyEnum
	// TyArray is an "array of T" wrapper.
	TyArray
	// TyRef is a reference to a declared type, possibly qualified
	// with a domain name.
	TyRef
)

// String returns the PDL keyword for the kind.
func (k TyKind) String() string {
	switch k {
	case TyString:
		return "string"
	case TyInteger:
		return "integer"
	case TyNumber:
		return "number"
	case TyBoolean:
		return "boolean"
	case TyObject:
		return "object"
	case TyAny:
		return "any"
	case TyBinary:
		return "binary"
	case TyEnum:
		return "enum"
	case TyArray:
		return "array"
	case TyRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Ty is a type expression: a primitive, an inline enum, an array
// wrapper, or a reference to a TypeDef.
//
// A TyRef is a lookup key, not an owning link: many parameters and
// properties across many domains may reference the same TypeDef, and
// domains may reference each other mutually. Resolution binds the key
// to its target without copying it.
type Ty struct {
	Kind TyKind
	// Item is the element type of a TyArray.
	Item *Ty
	// Enum holds the variants of an inline TyEnum.
	Enum []EnumValue
	// Domain is the explicit qualifier of a TyRef; empty means the
	// reference defaults to its owning domain.
	Domain string
	// Name is the referenced type name of a TyRef.
	Name string
	// Pos is the source position of the type token.
	Pos Pos

	target *TypeDef
}

// IsPrimitive returns true for the built-in scalar kinds, which are
// never subject to resolution.
func (t *Ty) IsPrimitive() bool {
	switch t.Kind {
	case TyString, TyInteger, TyNumber, TyBoolean, TyObject, TyAny, TyBinary:
		return true
	default:
		return false
	}
}

// Target returns the TypeDef a TyRef resolved to, or nil if the
// reference is unresolved or the expression is not a reference.
func (t *Ty) Target() *TypeDef { return t.target }

// inlineEnum returns the inline enum expression inside t, unwrapping
// array layers, or nil.
func (t *Ty) inlineEnum() *Ty {
	switch t.Kind {
	case TyEnum:
		return t
	case TyArray:
		return t.Item.inlineEnum()
	default:
		return nil
	}
}

// String renders the expression in PDL surface syntax.
func (t *Ty) String() string {
	switch t.Kind {
	case TyArray:
		return "array of " + t.Item.String()
	case TyRef:
		if t.Domain != "" {
			return t.Domain + "." + t.Name
		}
		return t.Name
	default:
		return t.Kind.String()
	}
}
