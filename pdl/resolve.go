package pdl

import "slices"

// Resolve binds every type reference in the document to its declaring
// TypeDef and verifies domain-level references (dependencies, redirect
// targets). Qualified references look up the named domain; unqualified
// references default to their owning domain. Forward references are
// valid: the whole document is available, so a type used before its
// textual declaration still resolves.
//
// References that match nothing are collected and returned rather than
// failing, so a single pass reports every unresolved name. Resolve is
// called by gopdl.Parse; calling it again is harmless.
func (p *Protocol) Resolve() []UnresolvedRef {
	p.domainByName = make(map[string]*Domain, len(p.Domains))
	for _, d := range p.Domains {
		p.domainByName[d.Name] = d
		d.typeByName = make(map[string]*TypeDef, len(d.Types))
		for _, t := range d.Types {
			d.typeByName[t.Name] = t
		}
	}

	p.unresolved = nil
	for _, d := range p.Domains {
		p.resolveDomain(d)
	}
	p.resolved = true
	return slices.Clone(p.unresolved)
}

func (p *Protocol) resolveDomain(d *Domain) {
	for _, dep := range d.Dependencies {
		if p.domainByName[dep.Name] == nil {
			p.unresolved = append(p.unresolved, UnresolvedRef{
				Kind:   UnresolvedDependency,
				Domain: dep.Name,
				In:     d.Name,
				Pos:    dep.Pos,
			})
		}
	}

	for _, t := range d.Types {
		p.resolveTy(t.Extends, d)
		for _, prop := range t.Properties {
			p.resolveTy(prop.Type, d)
		}
	}

	for _, c := range d.Commands {
		if c.Redirect != nil && p.domainByName[c.Redirect.To] == nil {
			p.unresolved = append(p.unresolved, UnresolvedRef{
				Kind:   UnresolvedRedirect,
				Domain: c.Redirect.To,
				In:     d.Name,
				Pos:    c.Redirect.Pos,
			})
		}
		for _, param := range c.Parameters {
			p.resolveTy(param.Type, d)
		}
		for _, param := range c.Returns {
			p.resolveTy(param.Type, d)
		}
	}

	for _, e := range d.Events {
		for _, param := range e.Parameters {
			p.resolveTy(param.Type, d)
		}
	}
}

// resolveTy binds a single type expression. Primitives and inline enums
// have nothing to resolve; arrays resolve their element type.
func (p *Protocol) resolveTy(t *Ty, owner *Domain) {
	if t == nil {
		return
	}
	switch t.Kind {
	case TyArray:
		p.resolveTy(t.Item, owner)
	case TyRef:
		domainName := t.Domain
		if domainName == "" {
			domainName = owner.Name
		}
		if dom := p.domainByName[domainName]; dom != nil {
			if target := dom.typeByName[t.Name]; target != nil {
				t.target = target
				return
			}
		}
		p.unresolved = append(p.unresolved, UnresolvedRef{
			Kind:   UnresolvedType,
			Domain: domainName,
			Name:   t.Name,
			In:     owner.Name,
			Pos:    t.Pos,
		})
	}
}
