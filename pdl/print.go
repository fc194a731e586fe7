package pdl

import (
	"strconv"
	"strings"
)

// indentUnit is the canonical indentation emitted by the printer.
const indentUnit = "  "

// String renders the document in canonical PDL: two-space indentation,
// modifier keywords in fixed order (experimental before deprecated,
// optional last), attached comments re-emitted as '#' lines directly
// before their owning declaration, and declarations grouped as
// dependencies, types, commands, events. Parsing the output yields a
// document structurally equal to this one.
func (p *Protocol) String() string {
	w := &printer{}
	w.protocol(p)
	return w.b.String()
}

type printer struct {
	b strings.Builder
}

func (w *printer) line(depth int, text string) {
	for i := 0; i < depth; i++ {
		w.b.WriteString(indentUnit)
	}
	w.b.WriteString(text)
	w.b.WriteByte('\n')
}

func (w *printer) blank() {
	w.b.WriteByte('\n')
}

func (w *printer) description(depth int, desc []string) {
	for _, line := range desc {
		if line == "" {
			w.line(depth, "#")
			continue
		}
		w.line(depth, "# "+line)
	}
}

func (w *printer) protocol(p *Protocol) {
	w.description(0, p.Description)
	if len(p.Description) > 0 {
		w.blank()
	}

	if p.Version != nil {
		w.line(0, "version")
		w.line(1, "major "+strconv.Itoa(p.Version.Major))
		w.line(1, "minor "+strconv.Itoa(p.Version.Minor))
	}

	for i, d := range p.Domains {
		if i > 0 || p.Version != nil {
			w.blank()
		}
		w.domain(d)
	}
}

// modifiers renders the canonical modifier prefix.
func modifiers(experimental, deprecated, optional bool) string {
	var b strings.Builder
	if experimental {
		b.WriteString("experimental ")
	}
	if deprecated {
		b.WriteString("deprecated ")
	}
	if optional {
		b.WriteString("optional ")
	}
	return b.String()
}

func (w *printer) domain(d *Domain) {
	w.description(0, d.Description)
	w.line(0, modifiers(d.Experimental, d.Deprecated, false)+"domain "+d.Name)
	for _, dep := range d.Dependencies {
		w.line(1, "depends on "+dep.Name)
	}
	for _, t := range d.Types {
		w.blank()
		w.typeDef(t)
	}
	for _, c := range d.Commands {
		w.blank()
		w.command(c)
	}
	for _, e := range d.Events {
		w.blank()
		w.event(e)
	}
}

func (w *printer) typeDef(t *TypeDef) {
	w.description(1, t.Description)
	w.line(1, modifiers(t.Experimental, t.Deprecated, false)+"type "+t.Name+" extends "+t.Extends.String())
	if len(t.Enum) > 0 {
		w.line(2, "enum")
		w.enumValues(3, t.Enum)
	}
	if len(t.Properties) > 0 {
		w.line(2, "properties")
		w.params(3, t.Properties)
	}
}

func (w *printer) enumValues(depth int, values []EnumValue) {
	for _, v := range values {
		w.description(depth, v.Description)
		w.line(depth, v.Name)
	}
}

func (w *printer) params(depth int, params []*Param) {
	for _, param := range params {
		w.description(depth, param.Description)
		w.line(depth, modifiers(param.Experimental, param.Deprecated, param.Optional)+param.Type.String()+" "+param.Name)
		if inline := param.Type.inlineEnum(); inline != nil {
			w.enumValues(depth+1, inline.Enum)
		}
	}
}

func (w *printer) command(c *Command) {
	w.description(1, c.Description)
	w.line(1, modifiers(c.Experimental, c.Deprecated, false)+"command "+c.Name)
	if c.Redirect != nil {
		w.description(2, c.Redirect.Description)
		w.line(2, "redirect "+c.Redirect.To)
	}
	if len(c.Parameters) > 0 {
		w.line(2, "parameters")
		w.params(3, c.Parameters)
	}
	if len(c.Returns) > 0 {
		w.line(2, "returns")
		w.params(3, c.Returns)
	}
}

func (w *printer) event(e *Event) {
	w.description(1, e.Description)
	w.line(1, modifiers(e.Experimental, e.Deprecated, false)+"event "+e.Name)
	if len(e.Parameters) > 0 {
		w.line(2, "parameters")
		w.params(3, e.Parameters)
	}
}

