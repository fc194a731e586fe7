package pdl

import (
	"testing"

	"github.com/golangpdl/gopdl/internal/testutil"
)

func equalFixture() *Protocol {
	return &Protocol{
		Description: []string{"Fixture."},
		Version:     &Version{Major: 1, Minor: 2},
		Domains: []*Domain{
			{
				Name:         "Net",
				Dependencies: []Dependency{{Name: "IO"}},
				Types: []*TypeDef{
					{
						Name:    "Request",
						Extends: &Ty{Kind: TyObject},
						Properties: []*Param{
							{Name: "url", Type: &Ty{Kind: TyString}},
							{Name: "body", Optional: true, Type: &Ty{Kind: TyRef, Domain: "IO", Name: "Stream"}},
						},
					},
				},
				Commands: []*Command{
					{
						Name:       "fetch",
						Parameters: []*Param{{Name: "req", Type: &Ty{Kind: TyRef, Name: "Request"}}},
					},
				},
			},
			{Name: "IO", Types: []*TypeDef{{Name: "Stream", Extends: &Ty{Kind: TyBinary}}}},
		},
	}
}

func TestEqualIdentical(t *testing.T) {
	testutil.True(t, equalFixture().Equal(equalFixture()), "identical documents")
}

func TestEqualIgnoresPositionsAndResolution(t *testing.T) {
	a := equalFixture()
	b := equalFixture()

	a.Domains[0].Types[0].Pos = Pos{Line: 10, Col: 3}
	a.Domains[0].Types[0].Properties[0].Pos = Pos{Line: 12, Col: 7}
	a.Resolve()

	testutil.True(t, a.Equal(b), "positions and bindings do not affect equality")
}

func TestEqualJoinsDescriptionLines(t *testing.T) {
	a := equalFixture()
	b := equalFixture()
	a.Description = []string{"Two words."}
	b.Description = []string{"Two", "words."}
	testutil.True(t, a.Equal(b), "same text split across lines")

	b.Description = []string{"Other words."}
	testutil.False(t, a.Equal(b), "different text")
}

func TestEqualDetectsDifferences(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Protocol)
	}{
		{"version", func(p *Protocol) { p.Version.Minor = 9 }},
		{"missing version", func(p *Protocol) { p.Version = nil }},
		{"domain name", func(p *Protocol) { p.Domains[1].Name = "FS" }},
		{"domain order", func(p *Protocol) {
			p.Domains[0], p.Domains[1] = p.Domains[1], p.Domains[0]
		}},
		{"dependency", func(p *Protocol) { p.Domains[0].Dependencies[0].Name = "FS" }},
		{"type base", func(p *Protocol) {
			p.Domains[1].Types[0].Extends = &Ty{Kind: TyString}
		}},
		{"property optional", func(p *Protocol) {
			p.Domains[0].Types[0].Properties[1].Optional = false
		}},
		{"property order", func(p *Protocol) {
			props := p.Domains[0].Types[0].Properties
			props[0], props[1] = props[1], props[0]
		}},
		{"ref qualifier", func(p *Protocol) {
			p.Domains[0].Types[0].Properties[1].Type.Domain = ""
		}},
		{"extra parameter", func(p *Protocol) {
			c := p.Domains[0].Commands[0]
			c.Parameters = append(c.Parameters, &Param{Name: "extra", Type: &Ty{Kind: TyAny}})
		}},
		{"redirect added", func(p *Protocol) {
			p.Domains[0].Commands[0].Redirect = &Redirect{To: "IO"}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := equalFixture()
			b := equalFixture()
			tc.mutate(b)
			testutil.False(t, a.Equal(b), "mutation must break equality")
			testutil.False(t, b.Equal(a), "equality is symmetric")
		})
	}
}

func TestEqualNil(t *testing.T) {
	var a *Protocol
	testutil.True(t, a.Equal(nil), "nil equals nil")
	testutil.False(t, a.Equal(equalFixture()), "nil vs document")
	testutil.False(t, equalFixture().Equal(nil), "document vs nil")
}

func TestEqualInlineEnumVariants(t *testing.T) {
	mk := func(values ...string) *Protocol {
		var enum []EnumValue
		for _, v := range values {
			enum = append(enum, EnumValue{Name: v})
		}
		return &Protocol{
			Domains: []*Domain{
				{
					Name: "Net",
					Events: []*Event{
						{
							Name:       "tuned",
							Parameters: []*Param{{Name: "mode", Type: &Ty{Kind: TyEnum, Enum: enum}}},
						},
					},
				},
			},
		}
	}
	testutil.True(t, mk("a", "b").Equal(mk("a", "b")), "same variants")
	testutil.False(t, mk("a", "b").Equal(mk("b", "a")), "variant order matters")
	testutil.False(t, mk("a").Equal(mk("a", "b")), "variant count matters")
}
