// Package pdl defines the document model for parsed PDL protocol
// descriptions, reference resolution over it, and its two renderers
// (canonical PDL text and JSON).
//
// A Protocol is built once by the parser and is immutable after
// resolution; it may be read concurrently without synchronization as
// long as no consumer mutates it.
package pdl

import (
	"fmt"
	"slices"
)

// Pos is a 1-based line/column position in the source text a node was
// parsed from. Zero for nodes built by hand or imported from JSON.
type Pos struct {
	Line int
	Col  int
}

// String returns the position as "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Protocol is the root of a PDL document: an optional version and an
// ordered sequence of domains. Domain names are unique within a
// Protocol; the parser enforces this.
type Protocol struct {
	// Description is the leading comment block of the source file,
	// one entry per comment line.
	Description []string
	Version     *Version
	Domains     []*Domain

	domainByName map[string]*Domain
	unresolved   []UnresolvedRef
	resolved     bool
}

// Version is the protocol version as a major.minor pair.
type Version struct {
	Major int
	Minor int
}

// Domain returns the domain with the given name, or nil.
// The lookup index is built by Resolve.
func (p *Protocol) Domain(name string) *Domain {
	if p.domainByName == nil {
		for _, d := range p.Domains {
			if d.Name == name {
				return d
			}
		}
		return nil
	}
	return p.domainByName[name]
}

// Resolved returns true once Resolve has run.
func (p *Protocol) Resolved() bool { return p.resolved }

// Unresolved returns the references that failed to resolve.
// Empty until Resolve has run.
func (p *Protocol) Unresolved() []UnresolvedRef {
	return slices.Clone(p.unresolved)
}

// Domain is a named grouping of types, commands, and events.
type Domain struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         string
	Dependencies []Dependency
	Types        []*TypeDef
	Commands     []*Command
	Events       []*Event

	typeByName map[string]*TypeDef
}

// Dependency names another domain this domain depends on.
type Dependency struct {
	Name string
	Pos  Pos
}

// Type returns the type declared in this domain with the given name,
// or nil. The lookup index is built by Resolve.
func (d *Domain) Type(name string) *TypeDef {
	if d.typeByName == nil {
		for _, t := range d.Types {
			if t.Name == name {
				return t
			}
		}
		return nil
	}
	return d.typeByName[name]
}

// Command returns the command with the given name, or nil.
func (d *Domain) Command(name string) *Command {
	for _, c := range d.Commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Event returns the event with the given name, or nil.
func (d *Domain) Event(name string) *Event {
	for _, e := range d.Events {
		if e.Name == name {
			return e
		}
	}
	return nil
}
