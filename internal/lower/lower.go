// Package lower converts parse-phase AST nodes into the public document
// model. Lowering is a structural walk: it flattens identifier nodes to
// strings, rewrites "array of" flags into nested array expressions, and
// carries source positions over. It cannot fail; anything that would be
// an error was rejected by the parser.
package lower

import (
	"log/slog"

	"github.com/golangpdl/gopdl/internal/ast"
	"github.com/golangpdl/gopdl/internal/types"
	"github.com/golangpdl/gopdl/pdl"
)

var primitiveKinds = map[string]pdl.TyKind{
	"string":  pdl.TyString,
	"integer": pdl.TyInteger,
	"number":  pdl.TyNumber,
	"boolean": pdl.TyBoolean,
	"object":  pdl.TyObject,
	"any":     pdl.TyAny,
	"binary":  pdl.TyBinary,
}

// Protocol lowers a parsed document into the public model. The result
// is unresolved.
func Protocol(in *ast.Protocol, logger *slog.Logger) *pdl.Protocol {
	log := types.Logger{L: logger}
	out := &pdl.Protocol{Description: in.Description}
	if in.Version != nil {
		out.Version = &pdl.Version{Major: in.Version.Major, Minor: in.Version.Minor}
	}
	for _, d := range in.Domains {
		out.Domains = append(out.Domains, domain(d))
		log.Trace("lowered domain", slog.String("name", d.Name.Name))
	}
	return out
}

func pos(p types.Pos) pdl.Pos {
	return pdl.Pos{Line: p.Line, Col: p.Col}
}

func domain(in *ast.Domain) *pdl.Domain {
	out := &pdl.Domain{
		Description:  in.Description,
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
		Name:         in.Name.Name,
	}
	for _, dep := range in.Dependencies {
		out.Dependencies = append(out.Dependencies, pdl.Dependency{
			Name: dep.Name,
			Pos:  pos(dep.Pos),
		})
	}
	for _, t := range in.Types {
		out.Types = append(out.Types, typeDef(t))
	}
	for _, c := range in.Commands {
		out.Commands = append(out.Commands, command(c))
	}
	for _, e := range in.Events {
		out.Events = append(out.Events, event(e))
	}
	return out
}

func typeDef(in *ast.TypeDef) *pdl.TypeDef {
	return &pdl.TypeDef{
		Description:  in.Description,
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
		Name:         in.Name.Name,
		Extends:      tyExpr(in.Extends),
		Enum:         enumValues(in.Enum),
		Properties:   params(in.Properties),
		Pos:          pos(in.Name.Pos),
	}
}

func enumValues(in []ast.EnumValue) []pdl.EnumValue {
	if len(in) == 0 {
		return nil
	}
	out := make([]pdl.EnumValue, 0, len(in))
	for _, v := range in {
		out = append(out, pdl.EnumValue{Description: v.Description, Name: v.Name.Name})
	}
	return out
}

func params(in []*ast.Param) []*pdl.Param {
	if len(in) == 0 {
		return nil
	}
	out := make([]*pdl.Param, 0, len(in))
	for _, p := range in {
		out = append(out, &pdl.Param{
			Description:  p.Description,
			Experimental: p.Experimental,
			Deprecated:   p.Deprecated,
			Optional:     p.Optional,
			Type:         tyExpr(p.Type),
			Name:         p.Name.Name,
			Pos:          pos(p.Name.Pos),
		})
	}
	return out
}

func command(in *ast.Command) *pdl.Command {
	out := &pdl.Command{
		Description:  in.Description,
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
		Name:         in.Name.Name,
		Parameters:   params(in.Parameters),
		Returns:      params(in.Returns),
		Pos:          pos(in.Name.Pos),
	}
	if in.Redirect != nil {
		out.Redirect = &pdl.Redirect{
			Description: in.Redirect.Description,
			To:          in.Redirect.To.Name,
			Pos:         pos(in.Redirect.To.Pos),
		}
	}
	return out
}

func event(in *ast.Event) *pdl.Event {
	return &pdl.Event{
		Description:  in.Description,
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
		Name:         in.Name.Name,
		Parameters:   params(in.Parameters),
		Pos:          pos(in.Name.Pos),
	}
}

// tyExpr rewrites an expression into the model form, turning the
// "array of" flag into a nested array node around the element type.
func tyExpr(in ast.TyExpr) *pdl.Ty {
	var elem *pdl.Ty
	switch in.Kind {
	case ast.TyPrimitive:
		elem = &pdl.Ty{Kind: primitiveKinds[in.Primitive], Pos: pos(in.Pos)}
	case ast.TyEnum:
		elem = &pdl.Ty{Kind: pdl.TyEnum, Enum: enumValues(in.Enum), Pos: pos(in.Pos)}
	case ast.TyRef:
		elem = &pdl.Ty{Kind: pdl.TyRef, Domain: in.Domain, Name: in.Name, Pos: pos(in.Pos)}
	}
	if in.Array {
		return &pdl.Ty{Kind: pdl.TyArray, Item: elem, Pos: pos(in.Pos)}
	}
	return elem
}
