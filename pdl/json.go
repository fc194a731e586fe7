package pdl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// JSON shadow structs. Field names are stable; optional fields carry
// omitempty so absent comments and false flags are omitted. Ordered
// sequences stay in source order because they marshal from slices.

type protocolJSON struct {
	Description string        `json:"description,omitempty"`
	Version     *versionJSON  `json:"version,omitempty"`
	Domains     []*domainJSON `json:"domains"`
}

// versionJSON carries major/minor as strings, matching the convention
// of published protocol.json files.
type versionJSON struct {
	Major string `json:"major"`
	Minor string `json:"minor"`
}

type domainJSON struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Experimental bool           `json:"experimental,omitempty"`
	Deprecated   bool           `json:"deprecated,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty"`
	Types        []*typeJSON    `json:"types,omitempty"`
	Commands     []*commandJSON `json:"commands,omitempty"`
	Events       []*eventJSON   `json:"events,omitempty"`
}

// tyJSON is the serialized form of a type expression: a "type"
// discriminant for primitives, "$ref" for references, "items" for array
// elements, and "enum" for enum values. It embeds into the nodes that
// carry a type so the fields flatten into the owning object.
type tyJSON struct {
	Type  string           `json:"type,omitempty"`
	Ref   string           `json:"$ref,omitempty"`
	Items *tyJSON          `json:"items,omitempty"`
	Enum  []*enumValueJSON `json:"enum,omitempty"`
}

type enumValueJSON struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type typeJSON struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Experimental bool   `json:"experimental,omitempty"`
	Deprecated   bool   `json:"deprecated,omitempty"`
	tyJSON
	Properties []*paramJSON `json:"properties,omitempty"`
}

type paramJSON struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Experimental bool   `json:"experimental,omitempty"`
	Deprecated   bool   `json:"deprecated,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
	tyJSON
}

type redirectJSON struct {
	To          string `json:"to"`
	Description string `json:"description,omitempty"`
}

type commandJSON struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Experimental bool          `json:"experimental,omitempty"`
	Deprecated   bool          `json:"deprecated,omitempty"`
	Redirect     *redirectJSON `json:"redirect,omitempty"`
	Parameters   []*paramJSON  `json:"parameters,omitempty"`
	Returns      []*paramJSON  `json:"returns,omitempty"`
}

type eventJSON struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Experimental bool         `json:"experimental,omitempty"`
	Deprecated   bool         `json:"deprecated,omitempty"`
	Parameters   []*paramJSON `json:"parameters,omitempty"`
}

// ToJSON renders the document as a compact JSON blob.
func (p *Protocol) ToJSON() ([]byte, error) {
	return json.Marshal(p.exportJSON())
}

// ToJSONIndent renders the document as pretty-printed JSON.
func (p *Protocol) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(p.exportJSON(), "", "  ")
}

// MarshalJSON implements json.Marshaler with the compact form.
func (p *Protocol) MarshalJSON() ([]byte, error) {
	return p.ToJSON()
}

func joinDesc(desc []string) string {
	return strings.Join(desc, " ")
}

func (p *Protocol) exportJSON() *protocolJSON {
	out := &protocolJSON{
		Description: joinDesc(p.Description),
		Domains:     make([]*domainJSON, 0, len(p.Domains)),
	}
	if p.Version != nil {
		out.Version = &versionJSON{
			Major: strconv.Itoa(p.Version.Major),
			Minor: strconv.Itoa(p.Version.Minor),
		}
	}
	for _, d := range p.Domains {
		out.Domains = append(out.Domains, exportDomain(d))
	}
	return out
}

func exportDomain(d *Domain) *domainJSON {
	out := &domainJSON{
		Name:         d.Name,
		Description:  joinDesc(d.Description),
		Experimental: d.Experimental,
		Deprecated:   d.Deprecated,
	}
	for _, dep := range d.Dependencies {
		out.Dependencies = append(out.Dependencies, dep.Name)
	}
	for _, t := range d.Types {
		out.Types = append(out.Types, exportType(t))
	}
	for _, c := range d.Commands {
		out.Commands = append(out.Commands, exportCommand(c))
	}
	for _, e := range d.Events {
		out.Events = append(out.Events, exportEvent(e))
	}
	return out
}

func exportTy(t *Ty) tyJSON {
	switch t.Kind {
	case TyArray:
		item := exportTy(t.Item)
		return tyJSON{Type: "array", Items: &item}
	case TyRef:
		if t.Domain != "" {
			return tyJSON{Ref: t.Domain + "." + t.Name}
		}
		return tyJSON{Ref: t.Name}
	case TyEnum:
		return tyJSON{Type: "string", Enum: exportEnumValues(t.Enum)}
	default:
		return tyJSON{Type: t.Kind.String()}
	}
}

func exportEnumValues(values []EnumValue) []*enumValueJSON {
	out := make([]*enumValueJSON, 0, len(values))
	for _, v := range values {
		out = append(out, &enumValueJSON{Name: v.Name, Description: joinDesc(v.Description)})
	}
	return out
}

func exportType(t *TypeDef) *typeJSON {
	out := &typeJSON{
		Name:         t.Name,
		Description:  joinDesc(t.Description),
		Experimental: t.Experimental,
		Deprecated:   t.Deprecated,
		tyJSON:       exportTy(t.Extends),
	}
	if len(t.Enum) > 0 {
		out.Enum = exportEnumValues(t.Enum)
	}
	for _, prop := range t.Properties {
		out.Properties = append(out.Properties, exportParam(prop))
	}
	return out
}

func exportParam(p *Param) *paramJSON {
	return &paramJSON{
		Name:         p.Name,
		Description:  joinDesc(p.Description),
		Experimental: p.Experimental,
		Deprecated:   p.Deprecated,
		Optional:     p.Optional,
		tyJSON:       exportTy(p.Type),
	}
}

func exportParams(params []*Param) []*paramJSON {
	if len(params) == 0 {
		return nil
	}
	out := make([]*paramJSON, 0, len(params))
	for _, p := range params {
		out = append(out, exportParam(p))
	}
	return out
}

func exportCommand(c *Command) *commandJSON {
	out := &commandJSON{
		Name:         c.Name,
		Description:  joinDesc(c.Description),
		Experimental: c.Experimental,
		Deprecated:   c.Deprecated,
		Parameters:   exportParams(c.Parameters),
		Returns:      exportParams(c.Returns),
	}
	if c.Redirect != nil {
		out.Redirect = &redirectJSON{
			To:          c.Redirect.To,
			Description: joinDesc(c.Redirect.Description),
		}
	}
	return out
}

func exportEvent(e *Event) *eventJSON {
	return &eventJSON{
		Name:         e.Name,
		Description:  joinDesc(e.Description),
		Experimental: e.Experimental,
		Deprecated:   e.Deprecated,
		Parameters:   exportParams(e.Parameters),
	}
}

// FromJSON reconstructs a document model from a JSON export. The result
// is unresolved; call Resolve to rebuild reference bindings.
func FromJSON(data []byte) (*Protocol, error) {
	var in protocolJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("pdl: decoding protocol JSON: %w", err)
	}

	p := &Protocol{Description: splitDesc(in.Description)}
	if in.Version != nil {
		major, err := strconv.Atoi(in.Version.Major)
		if err != nil {
			return nil, fmt.Errorf("pdl: malformed major version %q", in.Version.Major)
		}
		minor, err := strconv.Atoi(in.Version.Minor)
		if err != nil {
			return nil, fmt.Errorf("pdl: malformed minor version %q", in.Version.Minor)
		}
		p.Version = &Version{Major: major, Minor: minor}
	}
	for _, d := range in.Domains {
		dom, err := importDomain(d)
		if err != nil {
			return nil, err
		}
		p.Domains = append(p.Domains, dom)
	}
	return p, nil
}

func splitDesc(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func importDomain(in *domainJSON) (*Domain, error) {
	d := &Domain{
		Name:         in.Name,
		Description:  splitDesc(in.Description),
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
	}
	for _, dep := range in.Dependencies {
		d.Dependencies = append(d.Dependencies, Dependency{Name: dep})
	}
	for _, t := range in.Types {
		td, err := importType(t, in.Name)
		if err != nil {
			return nil, err
		}
		d.Types = append(d.Types, td)
	}
	for _, c := range in.Commands {
		cmd, err := importCommand(c, in.Name)
		if err != nil {
			return nil, err
		}
		d.Commands = append(d.Commands, cmd)
	}
	for _, e := range in.Events {
		ev, err := importEvent(e, in.Name)
		if err != nil {
			return nil, err
		}
		d.Events = append(d.Events, ev)
	}
	return d, nil
}

func importTy(in tyJSON, context string) (*Ty, error) {
	if in.Ref != "" {
		domain, name, found := strings.Cut(in.Ref, ".")
		if !found {
			return &Ty{Kind: TyRef, Name: in.Ref}, nil
		}
		return &Ty{Kind: TyRef, Domain: domain, Name: name}, nil
	}

	switch in.Type {
	case "array":
		if in.Items == nil {
			return nil, fmt.Errorf("pdl: array type without items in %s", context)
		}
		item, err := importTy(*in.Items, context)
		if err != nil {
			return nil, err
		}
		return &Ty{Kind: TyArray, Item: item}, nil
	case "string":
		if len(in.Enum) > 0 {
			return &Ty{Kind: TyEnum, Enum: importEnumValues(in.Enum)}, nil
		}
		return &Ty{Kind: TyString}, nil
	case "integer":
		return &Ty{Kind: TyInteger}, nil
	case "number":
		return &Ty{Kind: TyNumber}, nil
	case "boolean":
		return &Ty{Kind: TyBoolean}, nil
	case "object":
		return &Ty{Kind: TyObject}, nil
	case "any":
		return &Ty{Kind: TyAny}, nil
	case "binary":
		return &Ty{Kind: TyBinary}, nil
	default:
		return nil, fmt.Errorf("pdl: unknown type %q in %s", in.Type, context)
	}
}

func importEnumValues(in []*enumValueJSON) []EnumValue {
	out := make([]EnumValue, 0, len(in))
	for _, v := range in {
		out = append(out, EnumValue{Name: v.Name, Description: splitDesc(v.Description)})
	}
	return out
}

func importType(in *typeJSON, domain string) (*TypeDef, error) {
	context := fmt.Sprintf("type %s.%s", domain, in.Name)

	td := &TypeDef{
		Name:         in.Name,
		Description:  splitDesc(in.Description),
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
	}

	// The declared enum values belong to the TypeDef, not the base
	// expression; the base of an enum type is its primitive.
	base := in.tyJSON
	if len(base.Enum) > 0 {
		td.Enum = importEnumValues(base.Enum)
		base.Enum = nil
	}
	extends, err := importTy(base, context)
	if err != nil {
		return nil, err
	}
	td.Extends = extends

	for _, prop := range in.Properties {
		p, err := importParam(prop, context)
		if err != nil {
			return nil, err
		}
		td.Properties = append(td.Properties, p)
	}
	return td, nil
}

func importParam(in *paramJSON, context string) (*Param, error) {
	ty, err := importTy(in.tyJSON, context+" parameter "+in.Name)
	if err != nil {
		return nil, err
	}
	return &Param{
		Name:         in.Name,
		Description:  splitDesc(in.Description),
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
		Optional:     in.Optional,
		Type:         ty,
	}, nil
}

func importParams(in []*paramJSON, context string) ([]*Param, error) {
	var out []*Param
	for _, p := range in {
		param, err := importParam(p, context)
		if err != nil {
			return nil, err
		}
		out = append(out, param)
	}
	return out, nil
}

func importCommand(in *commandJSON, domain string) (*Command, error) {
	context := fmt.Sprintf("command %s.%s", domain, in.Name)
	params, err := importParams(in.Parameters, context)
	if err != nil {
		return nil, err
	}
	returns, err := importParams(in.Returns, context)
	if err != nil {
		return nil, err
	}
	c := &Command{
		Name:         in.Name,
		Description:  splitDesc(in.Description),
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
		Parameters:   params,
		Returns:      returns,
	}
	if in.Redirect != nil {
		c.Redirect = &Redirect{
			To:          in.Redirect.To,
			Description: splitDesc(in.Redirect.Description),
		}
	}
	return c, nil
}

func importEvent(in *eventJSON, domain string) (*Event, error) {
	context := fmt.Sprintf("event %s.%s", domain, in.Name)
	params, err := importParams(in.Parameters, context)
	if err != nil {
		return nil, err
	}
	return &Event{
		Name:         in.Name,
		Description:  splitDesc(in.Description),
		Experimental: in.Experimental,
		Deprecated:   in.Deprecated,
		Parameters:   params,
	}, nil
}
