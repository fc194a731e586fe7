// Package parser provides PDL parsing into an AST.
//
// The parser is a recursive-descent walk over the lexer's classified line
// stream. Block membership is driven by indentation depth: a line belongs
// to a block while its depth is strictly greater than the block header's,
// and the first line at the header's depth or less closes the block.
// Children must sit at exactly the header depth plus one; anything deeper
// is a structural error.
//
// Unlike lenient vendor-file parsers, any line that does not match a
// production legal in its context is a fatal structural error carrying the
// line's position and the expected production set. There is no recovery
// and no partial result.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/golangpdl/gopdl/internal/ast"
	"github.com/golangpdl/gopdl/internal/lexer"
	"github.com/golangpdl/gopdl/internal/types"
)

// Primitive base type keywords.
var primitives = map[string]bool{
	"integer": true,
	"number":  true,
	"boolean": true,
	"string":  true,
	"object":  true,
	"any":     true,
	"binary":  true,
}

// Expected production sets for error reporting.
var (
	expectTopLevel   = []string{"version", "domain"}
	expectDomainItem = []string{"depends on", "type", "command", "event"}
	expectTypeBlock  = []string{"enum", "properties"}
	expectCmdBlock   = []string{"redirect", "parameters", "returns"}
	expectParam      = []string{"parameter"}
	expectEnumValue  = []string{"enum value"}
)

// Result is a completed parse: the document plus any unconsumed
// top-level remainder (for PDL embedded in a larger stream).
type Result struct {
	Protocol *ast.Protocol
	// Rest is the unparsed tail of the source, starting at the first
	// top-level line that cannot begin a production. Nil when the
	// whole input was consumed.
	Rest    []byte
	RestPos types.Pos
}

// Parser converts a line stream into an AST protocol.
type Parser struct {
	source  []byte
	lex     *lexer.Lexer
	cur     lexer.Line
	curDesc []string // comment run attached to the current line
	sawCode bool
	proto   *ast.Protocol
	types.Logger
}

// New returns a Parser over the given source.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Parser {
	var lexLogger *slog.Logger
	if logger != nil {
		lexLogger = logger.With(slog.String("component", "lexer"))
	}
	p := &Parser{
		source: source,
		lex:    lexer.New(source, lexLogger),
		Logger: types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("bytes", len(source)))
	return p
}

// ParseProtocol parses a complete PDL document.
// The first structural error aborts the parse.
func (p *Parser) ParseProtocol() (*Result, *types.StructuralError) {
	p.proto = &ast.Protocol{}

	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.Kind == lexer.LineCode && p.cur.Depth == 0 && p.cur.Text == "version" {
		if p.proto.Description == nil {
			p.proto.Description = p.takeDesc()
		}
		if err := p.parseVersion(); err != nil {
			return nil, err
		}
	}

	result := &Result{Protocol: p.proto}

	for p.cur.Kind == lexer.LineCode {
		if p.cur.Depth != 0 {
			return nil, p.errorf(expectTopLevel, "unexpected indentation at top level")
		}

		fields := strings.Fields(p.cur.Text)
		experimental, deprecated, rest := p.takeModifiers(fields)
		if len(rest) == 0 || rest[0] != "domain" {
			if len(p.proto.Domains) > 0 {
				// Embedded PDL: hand the unconsumed tail back to
				// the caller.
				result.Rest = p.source[p.cur.Span.Start:]
				result.RestPos = p.cur.Pos
				break
			}
			return nil, p.errorf(expectTopLevel, "unexpected top-level line")
		}

		domain, err := p.parseDomain(experimental, deprecated, rest)
		if err != nil {
			return nil, err
		}
		for _, existing := range p.proto.Domains {
			if existing.Name.Name == domain.Name.Name {
				return nil, p.errAt(domain.Name.Pos, nil,
					fmt.Sprintf("duplicate domain name %q", domain.Name.Name))
			}
		}
		p.proto.Domains = append(p.proto.Domains, domain)
	}

	p.Log(slog.LevelDebug, "parsing complete",
		slog.Int("domains", len(p.proto.Domains)),
		slog.Bool("remainder", result.Rest != nil))

	return result, nil
}

// advance moves to the next code or EOF line, collecting the comment run
// that immediately precedes it. A blank line detaches the pending run,
// except at the top of the file where the leading comment block becomes
// the protocol description.
func (p *Parser) advance() *types.StructuralError {
	p.curDesc = nil
	var run []string
	for {
		ln, err := p.lex.Next()
		if err != nil {
			return err
		}
		switch ln.Kind {
		case lexer.LineComment:
			run = append(run, ln.Text)
		case lexer.LineBlank:
			if !p.sawCode && p.proto.Description == nil && len(run) > 0 {
				p.proto.Description = run
			}
			run = nil
		default:
			p.cur = ln
			p.curDesc = run
			if ln.Kind == lexer.LineCode {
				p.sawCode = true
			}
			return nil
		}
	}
}

// takeDesc consumes the comment run attached to the current line.
func (p *Parser) takeDesc() []string {
	d := p.curDesc
	p.curDesc = nil
	return d
}

// takeModifiers strips leading experimental/deprecated keywords, in
// either order, and returns the remaining fields.
func (p *Parser) takeModifiers(fields []string) (experimental, deprecated bool, rest []string) {
	rest = fields
	for len(rest) > 0 {
		switch rest[0] {
		case "experimental":
			experimental = true
		case "deprecated":
			deprecated = true
		default:
			return experimental, deprecated, rest
		}
		rest = rest[1:]
	}
	return experimental, deprecated, rest
}

func (p *Parser) errorf(expected []string, format string, args ...any) *types.StructuralError {
	return p.errAt(p.cur.Pos, expected, fmt.Sprintf(format, args...))
}

func (p *Parser) errAt(pos types.Pos, expected []string, message string) *types.StructuralError {
	return &types.StructuralError{
		Pos:      pos,
		Span:     p.cur.Span,
		LineText: p.cur.Text,
		Expected: expected,
		Message:  message,
	}
}

// parseVersion parses the version block: a "version" header followed by
// "major N" and "minor N" child lines.
func (p *Parser) parseVersion() *types.StructuralError {
	if err := p.advance(); err != nil {
		return err
	}
	major, err := p.parseVersionField("major")
	if err != nil {
		return err
	}
	if errAdv := p.advance(); errAdv != nil {
		return errAdv
	}
	minor, err := p.parseVersionField("minor")
	if err != nil {
		return err
	}
	p.proto.Version = &ast.Version{Major: major, Minor: minor, Pos: p.cur.Pos}
	p.Log(slog.LevelDebug, "parsed version",
		slog.Int("major", major), slog.Int("minor", minor))
	return p.advance()
}

func (p *Parser) parseVersionField(name string) (int, *types.StructuralError) {
	expected := []string{name + " N"}
	if p.cur.Kind != lexer.LineCode || p.cur.Depth != 1 {
		return 0, p.errorf(expected, "incomplete version block")
	}
	fields := strings.Fields(p.cur.Text)
	if len(fields) != 2 || fields[0] != name {
		return 0, p.errorf(expected, "malformed version field")
	}
	n, err := strconv.ParseUint(fields[1], 10, 31)
	if err != nil {
		return 0, p.errorf(expected, "malformed %s version number %q", name, fields[1])
	}
	return int(n), nil
}

// parseDomain parses a domain header and its body: dependency lines and
// interleaved type, command, and event declarations at depth one.
func (p *Parser) parseDomain(experimental, deprecated bool, rest []string) (*ast.Domain, *types.StructuralError) {
	if len(rest) != 2 {
		return nil, p.errorf([]string{"domain Name"}, "malformed domain header")
	}
	d := &ast.Domain{
		Description:  p.takeDesc(),
		Experimental: experimental,
		Deprecated:   deprecated,
		Name:         ast.NewIdent(rest[1], p.cur.Pos),
	}
	p.Log(slog.LevelDebug, "parsing domain", slog.String("domain", d.Name.Name))

	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.cur.Kind == lexer.LineCode && p.cur.Depth >= 1 {
		if p.cur.Depth > 1 {
			return nil, p.errorf(expectDomainItem, "unexpected indentation in domain body")
		}

		fields := strings.Fields(p.cur.Text)
		if len(fields) >= 2 && fields[0] == "depends" && fields[1] == "on" {
			if len(fields) != 3 {
				return nil, p.errorf([]string{"depends on Domain"}, "malformed dependency")
			}
			d.Dependencies = append(d.Dependencies, ast.NewIdent(fields[2], p.cur.Pos))
			p.takeDesc()
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		exp, dep, itemRest := p.takeModifiers(fields)
		if len(itemRest) == 0 {
			return nil, p.errorf(expectDomainItem, "unexpected line in domain body")
		}
		switch itemRest[0] {
		case "type":
			td, err := p.parseTypeDef(exp, dep, itemRest)
			if err != nil {
				return nil, err
			}
			for _, existing := range d.Types {
				if existing.Name.Name == td.Name.Name {
					return nil, p.errAt(td.Name.Pos, nil,
						fmt.Sprintf("duplicate type name %q in domain %q", td.Name.Name, d.Name.Name))
				}
			}
			d.Types = append(d.Types, td)
		case "command":
			c, err := p.parseCommand(exp, dep, itemRest)
			if err != nil {
				return nil, err
			}
			d.Commands = append(d.Commands, c)
		case "event":
			e, err := p.parseEvent(exp, dep, itemRest)
			if err != nil {
				return nil, err
			}
			d.Events = append(d.Events, e)
		default:
			return nil, p.errorf(expectDomainItem, "unexpected line in domain body")
		}
	}

	p.Log(slog.LevelDebug, "parsed domain",
		slog.String("domain", d.Name.Name),
		slog.Int("types", len(d.Types)),
		slog.Int("commands", len(d.Commands)),
		slog.Int("events", len(d.Events)))

	return d, nil
}

// parseTypeDef parses "type Name extends <ty>" and its optional enum or
// properties sub-block.
func (p *Parser) parseTypeDef(experimental, deprecated bool, rest []string) (*ast.TypeDef, *types.StructuralError) {
	if len(rest) < 4 || rest[2] != "extends" {
		return nil, p.errorf([]string{"type Name extends Base"}, "malformed type declaration")
	}
	ty, err := p.parseTyExpr(rest[3:])
	if err != nil {
		return nil, err
	}
	if len(rest[3:]) != tyTokenCount(ty) {
		return nil, p.errorf([]string{"type Name extends Base"}, "trailing content after type declaration")
	}
	if ty.Kind == ast.TyEnum {
		return nil, p.errorf([]string{"type Name extends Base"}, "type cannot extend enum directly; use an enum sub-block")
	}

	td := &ast.TypeDef{
		Description:  p.takeDesc(),
		Experimental: experimental,
		Deprecated:   deprecated,
		Name:         ast.NewIdent(rest[1], p.cur.Pos),
		Extends:      ty,
	}
	if p.TraceEnabled() {
		p.Trace("type", slog.String("name", td.Name.Name))
	}
	headerDepth := p.cur.Depth

	if errAdv := p.advance(); errAdv != nil {
		return nil, errAdv
	}

	if p.cur.Kind == lexer.LineCode && p.cur.Depth > headerDepth {
		if p.cur.Depth > headerDepth+1 {
			return nil, p.errorf(expectTypeBlock, "unexpected indentation in type body")
		}
		switch p.cur.Text {
		case "enum":
			values, err := p.parseEnumBlock(p.cur.Depth)
			if err != nil {
				return nil, err
			}
			td.Enum = values
		case "properties":
			props, err := p.parseParamBlock(p.cur.Depth)
			if err != nil {
				return nil, err
			}
			td.Properties = props
		default:
			return nil, p.errorf(expectTypeBlock, "unexpected line in type body")
		}
	}

	return td, nil
}

// parseEnumBlock parses the values under an "enum" header line.
func (p *Parser) parseEnumBlock(headerDepth int) ([]ast.EnumValue, *types.StructuralError) {
	p.takeDesc()
	if err := p.advance(); err != nil {
		return nil, err
	}

	var values []ast.EnumValue
	for p.cur.Kind == lexer.LineCode && p.cur.Depth > headerDepth {
		if p.cur.Depth > headerDepth+1 {
			return nil, p.errorf(expectEnumValue, "unexpected indentation in enum block")
		}
		fields := strings.Fields(p.cur.Text)
		if len(fields) != 1 {
			return nil, p.errorf(expectEnumValue, "malformed enum value")
		}
		values = append(values, ast.EnumValue{
			Description: p.takeDesc(),
			Name:        ast.NewIdent(fields[0], p.cur.Pos),
		})
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if len(values) == 0 {
		return nil, p.errorf(expectEnumValue, "empty enum block")
	}
	return values, nil
}

// parseParamBlock parses the parameter or property lines under a
// "parameters", "returns", or "properties" header line.
func (p *Parser) parseParamBlock(headerDepth int) ([]*ast.Param, *types.StructuralError) {
	p.takeDesc()
	if err := p.advance(); err != nil {
		return nil, err
	}

	var params []*ast.Param
	for p.cur.Kind == lexer.LineCode && p.cur.Depth > headerDepth {
		if p.cur.Depth > headerDepth+1 {
			return nil, p.errorf(expectParam, "unexpected indentation in parameter block")
		}
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	if len(params) == 0 {
		return nil, p.errorf(expectParam, "empty parameter block")
	}
	return params, nil
}

// parseParam parses a single parameter or property line: optional
// modifier keywords, an optional "array of" pair, a type token, and the
// field name. A parameter typed "enum" is followed by an indented block
// of inline variants.
func (p *Parser) parseParam() (*ast.Param, *types.StructuralError) {
	depth := p.cur.Depth
	fields := strings.Fields(p.cur.Text)

	param := &ast.Param{Description: p.takeDesc()}
	rest := fields
	for len(rest) > 0 {
		switch rest[0] {
		case "experimental":
			param.Experimental = true
		case "deprecated":
			param.Deprecated = true
		case "optional":
			param.Optional = true
		default:
			goto typeToken
		}
		rest = rest[1:]
	}

typeToken:
	ty, err := p.parseTyExpr(rest)
	if err != nil {
		return nil, err
	}
	rest = rest[tyTokenCount(ty):]
	if len(rest) != 1 {
		return nil, p.errorf([]string{"type name"}, "malformed parameter")
	}
	param.Type = ty
	param.Name = ast.NewIdent(rest[0], p.cur.Pos)
	if p.TraceEnabled() {
		p.Trace("parameter", slog.String("name", param.Name.Name))
	}

	if errAdv := p.advance(); errAdv != nil {
		return nil, errAdv
	}

	if param.Type.Kind == ast.TyEnum {
		values, err := p.parseInlineVariants(depth)
		if err != nil {
			return nil, err
		}
		param.Type.Enum = values
	}

	return param, nil
}

// parseInlineVariants parses the variant lines of an inline anonymous
// enum, indented one level below the owning parameter.
func (p *Parser) parseInlineVariants(paramDepth int) ([]ast.EnumValue, *types.StructuralError) {
	var values []ast.EnumValue
	for p.cur.Kind == lexer.LineCode && p.cur.Depth > paramDepth {
		if p.cur.Depth > paramDepth+1 {
			return nil, p.errorf(expectEnumValue, "unexpected indentation in inline enum")
		}
		fields := strings.Fields(p.cur.Text)
		if len(fields) != 1 {
			return nil, p.errorf(expectEnumValue, "malformed enum value")
		}
		values = append(values, ast.EnumValue{
			Description: p.takeDesc(),
			Name:        ast.NewIdent(fields[0], p.cur.Pos),
		})
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if len(values) == 0 {
		return nil, p.errorf(expectEnumValue, "inline enum has no values")
	}
	return values, nil
}

// parseCommand parses "command Name" and its redirect, parameters, and
// returns sub-blocks.
func (p *Parser) parseCommand(experimental, deprecated bool, rest []string) (*ast.Command, *types.StructuralError) {
	if len(rest) != 2 {
		return nil, p.errorf([]string{"command Name"}, "malformed command declaration")
	}
	c := &ast.Command{
		Description:  p.takeDesc(),
		Experimental: experimental,
		Deprecated:   deprecated,
		Name:         ast.NewIdent(rest[1], p.cur.Pos),
	}
	headerDepth := p.cur.Depth

	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.cur.Kind == lexer.LineCode && p.cur.Depth > headerDepth {
		if p.cur.Depth > headerDepth+1 {
			return nil, p.errorf(expectCmdBlock, "unexpected indentation in command body")
		}
		fields := strings.Fields(p.cur.Text)
		switch fields[0] {
		case "redirect":
			if len(fields) != 2 {
				return nil, p.errorf([]string{"redirect Domain"}, "malformed redirect")
			}
			if c.Redirect != nil {
				return nil, p.errorf(expectCmdBlock, "duplicate redirect in command %q", c.Name.Name)
			}
			c.Redirect = &ast.Redirect{
				Description: p.takeDesc(),
				To:          ast.NewIdent(fields[1], p.cur.Pos),
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		case "parameters":
			if c.Parameters != nil {
				return nil, p.errorf(expectCmdBlock, "duplicate parameters block in command %q", c.Name.Name)
			}
			params, err := p.parseParamBlock(p.cur.Depth)
			if err != nil {
				return nil, err
			}
			c.Parameters = params
		case "returns":
			if c.Returns != nil {
				return nil, p.errorf(expectCmdBlock, "duplicate returns block in command %q", c.Name.Name)
			}
			params, err := p.parseParamBlock(p.cur.Depth)
			if err != nil {
				return nil, err
			}
			c.Returns = params
		default:
			return nil, p.errorf(expectCmdBlock, "unexpected line in command body")
		}
	}

	return c, nil
}

// parseEvent parses "event Name" and its parameters sub-block.
func (p *Parser) parseEvent(experimental, deprecated bool, rest []string) (*ast.Event, *types.StructuralError) {
	if len(rest) != 2 {
		return nil, p.errorf([]string{"event Name"}, "malformed event declaration")
	}
	e := &ast.Event{
		Description:  p.takeDesc(),
		Experimental: experimental,
		Deprecated:   deprecated,
		Name:         ast.NewIdent(rest[1], p.cur.Pos),
	}
	headerDepth := p.cur.Depth

	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.cur.Kind == lexer.LineCode && p.cur.Depth > headerDepth {
		if p.cur.Depth > headerDepth+1 {
			return nil, p.errorf([]string{"parameters"}, "unexpected indentation in event body")
		}
		if p.cur.Text != "parameters" {
			return nil, p.errorf([]string{"parameters"}, "unexpected line in event body")
		}
		if e.Parameters != nil {
			return nil, p.errorf([]string{"parameters"}, "duplicate parameters block in event %q", e.Name.Name)
		}
		params, err := p.parseParamBlock(p.cur.Depth)
		if err != nil {
			return nil, err
		}
		e.Parameters = params
	}

	return e, nil
}

// parseTyExpr parses a type expression from the leading fields of a line:
// an optional "array of" pair followed by a primitive keyword, "enum",
// or a bare or domain-qualified type name.
func (p *Parser) parseTyExpr(fields []string) (ast.TyExpr, *types.StructuralError) {
	ty := ast.TyExpr{Pos: p.cur.Pos}
	if len(fields) >= 2 && fields[0] == "array" && fields[1] == "of" {
		ty.Array = true
		fields = fields[2:]
	}
	if len(fields) == 0 {
		return ty, p.errorf([]string{"type"}, "missing type")
	}

	tok := fields[0]
	switch {
	case primitives[tok]:
		ty.Kind = ast.TyPrimitive
		ty.Primitive = tok
	case tok == "enum":
		ty.Kind = ast.TyEnum
	case strings.Contains(tok, "."):
		domain, name, _ := strings.Cut(tok, ".")
		if domain == "" || name == "" || strings.Contains(name, ".") {
			return ty, p.errorf([]string{"Domain.Type"}, "malformed qualified type name %q", tok)
		}
		ty.Kind = ast.TyRef
		ty.Domain = domain
		ty.Name = name
	default:
		ty.Kind = ast.TyRef
		ty.Name = tok
	}
	return ty, nil
}

// tyTokenCount returns how many line fields the type expression consumed.
func tyTokenCount(ty ast.TyExpr) int {
	if ty.Array {
		return 3
	}
	return 1
}
