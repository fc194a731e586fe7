package pdl

import (
	"fmt"
	"strings"
)

// ParseError is a fatal structural parse error. It carries the source
// position, the offending line, and the productions that were legal at
// that point. Parsing aborts at the first structural error; there is no
// recovery and no partial document.
type ParseError struct {
	Pos      Pos
	LineText string
	Expected []string
	Message  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pdl: %s: %s", e.Pos, e.Message)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, " (expected %s)", strings.Join(e.Expected, ", "))
	}
	if e.LineText != "" {
		fmt.Fprintf(&b, " at %q", e.LineText)
	}
	return b.String()
}

// UnresolvedKind identifies what an unresolved reference points at.
type UnresolvedKind int

const (
	// UnresolvedType is a type reference matching no TypeDef.
	UnresolvedType UnresolvedKind = iota
	// UnresolvedDependency is a depends-on naming an unknown domain.
	UnresolvedDependency
	// UnresolvedRedirect is a redirect to an unknown domain.
	UnresolvedRedirect
)

// String returns the kind name.
func (k UnresolvedKind) String() string {
	switch k {
	case UnresolvedType:
		return "type"
	case UnresolvedDependency:
		return "dependency"
	case UnresolvedRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// UnresolvedRef describes a reference that matched no declaration.
// Collected by Resolve rather than aborting, so one pass surfaces every
// unresolved name; callers decide whether that is acceptable.
type UnresolvedRef struct {
	Kind UnresolvedKind
	// Domain is the domain name the lookup used: the explicit
	// qualifier, or the owning domain for unqualified references.
	Domain string
	// Name is the referenced type name; empty for domain-level
	// references (dependencies, redirects).
	Name string
	// In is the domain containing the reference.
	In string
	// Pos is the source position of the referencing node.
	Pos Pos
}

// String returns a human-readable description of the reference.
func (r UnresolvedRef) String() string {
	target := r.Domain
	if r.Name != "" {
		target = r.Domain + "." + r.Name
	}
	return fmt.Sprintf("%s: unresolved %s %s in domain %s", r.Pos, r.Kind, target, r.In)
}
