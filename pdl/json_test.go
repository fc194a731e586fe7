package pdl

import (
	"strings"
	"testing"

	"github.com/golangpdl/gopdl/internal/testutil"
)

func TestJSONVersionAsStrings(t *testing.T) {
	p := &Protocol{
		Version: &Version{Major: 1, Minor: 3},
		Domains: []*Domain{{Name: "Net"}},
	}
	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	want := `{"version":{"major":"1","minor":"3"},"domains":[{"name":"Net"}]}`
	testutil.Equal(t, want, string(data), "compact layout")
}

func TestJSONOmitsEmptyFields(t *testing.T) {
	p := &Protocol{Domains: []*Domain{{Name: "Net"}}}
	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got := string(data)
	testutil.False(t, strings.Contains(got, "description"), "no empty descriptions")
	testutil.False(t, strings.Contains(got, "version"), "no null version")
	testutil.False(t, strings.Contains(got, "experimental"), "no false flags")
}

func TestJSONTypeShapes(t *testing.T) {
	p := &Protocol{
		Domains: []*Domain{
			{
				Name: "Net",
				Types: []*TypeDef{
					{
						Name:    "Mode",
						Extends: &Ty{Kind: TyString},
						Enum:    []EnumValue{{Name: "auto"}, {Name: "manual", Description: []string{"By hand."}}},
					},
					{
						Name:    "Request",
						Extends: &Ty{Kind: TyObject},
						Properties: []*Param{
							{Name: "url", Type: &Ty{Kind: TyString}},
							{Name: "body", Optional: true, Type: &Ty{Kind: TyRef, Domain: "IO", Name: "Stream"}},
							{Name: "tags", Type: &Ty{Kind: TyArray, Item: &Ty{Kind: TyRef, Name: "Tag"}}},
						},
					},
				},
			},
		},
	}
	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got := string(data)
	testutil.Contains(t, got, `{"name":"Mode","type":"string","enum":[{"name":"auto"},{"name":"manual","description":"By hand."}]}`, "enum type")
	testutil.Contains(t, got, `{"name":"url","type":"string"}`, "primitive property")
	testutil.Contains(t, got, `{"name":"body","optional":true,"$ref":"IO.Stream"}`, "qualified ref")
	testutil.Contains(t, got, `{"name":"tags","type":"array","items":{"$ref":"Tag"}}`, "array of unqualified ref")
}

func TestJSONCommandShape(t *testing.T) {
	p := &Protocol{
		Domains: []*Domain{
			{
				Name:         "Net",
				Dependencies: []Dependency{{Name: "IO"}},
				Commands: []*Command{
					{
						Name:     "close",
						Redirect: &Redirect{To: "IO", Description: []string{"Handled elsewhere."}},
					},
				},
			},
		},
	}
	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got := string(data)
	testutil.Contains(t, got, `"dependencies":["IO"]`, "dependencies as plain strings")
	testutil.Contains(t, got, `"redirect":{"to":"IO","description":"Handled elsewhere."}`, "redirect object")
}

func TestJSONDescriptionsJoined(t *testing.T) {
	p := &Protocol{
		Description: []string{"Line one.", "Line two."},
		Domains:     []*Domain{{Name: "Net"}},
	}
	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	testutil.Contains(t, string(data), `"description":"Line one. Line two."`, "multi-line comment joined with spaces")
}

func TestToJSONIndent(t *testing.T) {
	p := &Protocol{Domains: []*Domain{{Name: "Net"}}}
	data, err := p.ToJSONIndent()
	if err != nil {
		t.Fatalf("ToJSONIndent: %v", err)
	}
	want := `{
  "domains": [
    {
      "name": "Net"
    }
  ]
}`
	testutil.Equal(t, want, string(data), "indented layout")
}

func TestJSONRoundTrip(t *testing.T) {
	p := &Protocol{
		Description: []string{"Round trip fixture."},
		Version:     &Version{Major: 2, Minor: 0},
		Domains: []*Domain{
			{
				Name:         "Net",
				Experimental: true,
				Dependencies: []Dependency{{Name: "IO"}},
				Types: []*TypeDef{
					{
						Name:    "Mode",
						Extends: &Ty{Kind: TyString},
						Enum:    []EnumValue{{Name: "auto"}, {Name: "manual"}},
					},
					{
						Name:    "Request",
						Extends: &Ty{Kind: TyObject},
						Properties: []*Param{
							{Name: "mode", Type: &Ty{Kind: TyRef, Name: "Mode"}},
							{Name: "body", Optional: true, Type: &Ty{Kind: TyRef, Domain: "IO", Name: "Stream"}},
						},
					},
				},
				Commands: []*Command{
					{
						Name:       "fetch",
						Parameters: []*Param{{Name: "req", Type: &Ty{Kind: TyRef, Name: "Request"}}},
						Returns:    []*Param{{Name: "status", Type: &Ty{Kind: TyInteger}}},
					},
				},
				Events: []*Event{
					{
						Name: "tuned",
						Parameters: []*Param{
							{Name: "mode", Type: &Ty{Kind: TyEnum, Enum: []EnumValue{{Name: "fast"}, {Name: "slow"}}}},
							{Name: "history", Type: &Ty{Kind: TyArray, Item: &Ty{Kind: TyNumber}}},
						},
					},
				},
			},
			{Name: "IO", Types: []*TypeDef{{Name: "Stream", Extends: &Ty{Kind: TyBinary}}}},
		},
	}

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	testutil.True(t, p.Equal(back), "round trip preserves structure")
	testutil.False(t, back.Resolved(), "imported document is unresolved")
	testutil.Len(t, back.Resolve(), 0, "imported document resolves cleanly")
}

func TestFromJSONErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"domains":`},
		{"bad major version", `{"version":{"major":"x","minor":"0"},"domains":[]}`},
		{"unknown type keyword", `{"domains":[{"name":"A","types":[{"name":"T","type":"float"}]}]}`},
		{"array without items", `{"domains":[{"name":"A","types":[{"name":"T","type":"array"}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromJSON([]byte(tc.input)); err == nil {
				testutil.Fail(t, "expected error for %s", tc.name)
			}
		})
	}
}
