package pdl

import "strings"

// Equal reports whether two documents are structurally equivalent.
// Declaration order matters, source positions and resolution state do
// not. Descriptions compare by joined text, so the same comment split
// across a different number of lines still matches.
func (p *Protocol) Equal(o *Protocol) bool {
	if p == nil || o == nil {
		return p == o
	}
	if !descEqual(p.Description, o.Description) {
		return false
	}
	if !versionEqual(p.Version, o.Version) {
		return false
	}
	if len(p.Domains) != len(o.Domains) {
		return false
	}
	for i, d := range p.Domains {
		if !d.equal(o.Domains[i]) {
			return false
		}
	}
	return true
}

func descEqual(a, b []string) bool {
	return strings.Join(a, " ") == strings.Join(b, " ")
}

func versionEqual(a, b *Version) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Major == b.Major && a.Minor == b.Minor
}

func (d *Domain) equal(o *Domain) bool {
	if d.Name != o.Name ||
		d.Experimental != o.Experimental ||
		d.Deprecated != o.Deprecated ||
		!descEqual(d.Description, o.Description) {
		return false
	}
	if len(d.Dependencies) != len(o.Dependencies) {
		return false
	}
	for i, dep := range d.Dependencies {
		if dep.Name != o.Dependencies[i].Name {
			return false
		}
	}
	if len(d.Types) != len(o.Types) ||
		len(d.Commands) != len(o.Commands) ||
		len(d.Events) != len(o.Events) {
		return false
	}
	for i, t := range d.Types {
		if !t.equal(o.Types[i]) {
			return false
		}
	}
	for i, c := range d.Commands {
		if !c.equal(o.Commands[i]) {
			return false
		}
	}
	for i, e := range d.Events {
		if !e.equal(o.Events[i]) {
			return false
		}
	}
	return true
}

func (t *TypeDef) equal(o *TypeDef) bool {
	if t.Name != o.Name ||
		t.Experimental != o.Experimental ||
		t.Deprecated != o.Deprecated ||
		!descEqual(t.Description, o.Description) {
		return false
	}
	if !t.Extends.equal(o.Extends) {
		return false
	}
	if !enumValuesEqual(t.Enum, o.Enum) {
		return false
	}
	return paramsEqual(t.Properties, o.Properties)
}

func enumValuesEqual(a, b []EnumValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v.Name != b[i].Name || !descEqual(v.Description, b[i].Description) {
			return false
		}
	}
	return true
}

func paramsEqual(a, b []*Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i, p := range a {
		if !p.equal(b[i]) {
			return false
		}
	}
	return true
}

func (p *Param) equal(o *Param) bool {
	return p.Name == o.Name &&
		p.Experimental == o.Experimental &&
		p.Deprecated == o.Deprecated &&
		p.Optional == o.Optional &&
		descEqual(p.Description, o.Description) &&
		p.Type.equal(o.Type)
}

func (c *Command) equal(o *Command) bool {
	if c.Name != o.Name ||
		c.Experimental != o.Experimental ||
		c.Deprecated != o.Deprecated ||
		!descEqual(c.Description, o.Description) {
		return false
	}
	if (c.Redirect == nil) != (o.Redirect == nil) {
		return false
	}
	if c.Redirect != nil {
		if c.Redirect.To != o.Redirect.To ||
			!descEqual(c.Redirect.Description, o.Redirect.Description) {
			return false
		}
	}
	return paramsEqual(c.Parameters, o.Parameters) &&
		paramsEqual(c.Returns, o.Returns)
}

func (e *Event) equal(o *Event) bool {
	return e.Name == o.Name &&
		e.Experimental == o.Experimental &&
		e.Deprecated == o.Deprecated &&
		descEqual(e.Description, o.Description) &&
		paramsEqual(e.Parameters, o.Parameters)
}

func (t *Ty) equal(o *Ty) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TyArray:
		return t.Item.equal(o.Item)
	case TyRef:
		return t.Domain == o.Domain && t.Name == o.Name
	case TyEnum:
		return enumValuesEqual(t.Enum, o.Enum)
	default:
		return true
	}
}
