package lexer

import (
	"testing"

	"github.com/golangpdl/gopdl/internal/testutil"
)

func allLines(t *testing.T, source string) []Line {
	t.Helper()
	lex := New([]byte(source), nil)
	var lines []Line
	for {
		ln, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected lexer error: %v", err)
		}
		lines = append(lines, ln)
		if ln.Kind == LineEOF {
			return lines
		}
	}
}

func lineKinds(t *testing.T, source string) []LineKind {
	t.Helper()
	lines := allLines(t, source)
	kinds := make([]LineKind, len(lines))
	for i, ln := range lines {
		kinds[i] = ln.Kind
	}
	return kinds
}

func firstError(source string) *struct {
	Line int
	Msg  string
} {
	lex := New([]byte(source), nil)
	for {
		ln, err := lex.Next()
		if err != nil {
			return &struct {
				Line int
				Msg  string
			}{err.Pos.Line, err.Message}
		}
		if ln.Kind == LineEOF {
			return nil
		}
	}
}

func TestEmptyInput(t *testing.T) {
	kinds := lineKinds(t, "")
	testutil.SliceEqual(t, []LineKind{LineEOF}, kinds, "empty input")
}

func TestClassification(t *testing.T) {
	source := "domain Foo\n\n# a comment\n  type Bar extends string\n"
	kinds := lineKinds(t, source)
	expected := []LineKind{LineCode, LineBlank, LineComment, LineCode, LineEOF}
	testutil.SliceEqual(t, expected, kinds, "line kinds")
}

func TestDepthsWithSpaceUnit(t *testing.T) {
	source := "domain Foo\n  type Bar extends object\n    properties\n      string name\n"
	lines := allLines(t, source)
	testutil.Equal(t, 0, lines[0].Depth, "domain depth")
	testutil.Equal(t, 1, lines[1].Depth, "type depth")
	testutil.Equal(t, 2, lines[2].Depth, "properties depth")
	testutil.Equal(t, 3, lines[3].Depth, "property depth")
}

func TestDepthsWithWideSpaceUnit(t *testing.T) {
	source := "domain Foo\n    type Bar extends string\n        enum\n"
	lines := allLines(t, source)
	testutil.Equal(t, 1, lines[1].Depth, "4-space unit depth 1")
	testutil.Equal(t, 2, lines[2].Depth, "4-space unit depth 2")
}

func TestDepthsWithTabUnit(t *testing.T) {
	source := "domain Foo\n\ttype Bar extends string\n\t\tenum\n"
	lines := allLines(t, source)
	testutil.Equal(t, 1, lines[1].Depth, "tab depth 1")
	testutil.Equal(t, 2, lines[2].Depth, "tab depth 2")
}

func TestCommentTextTrimmed(t *testing.T) {
	lines := allLines(t, "#   leading and trailing   \n")
	testutil.Equal(t, LineComment, lines[0].Kind, "kind")
	testutil.Equal(t, "leading and trailing", lines[0].Text, "comment text")
}

func TestTrailingWhitespaceIsBlank(t *testing.T) {
	lines := allLines(t, "   \t \n")
	testutil.Equal(t, LineBlank, lines[0].Kind, "whitespace-only line")
}

func TestPositions(t *testing.T) {
	lines := allLines(t, "domain Foo\n  type Bar extends string\n")
	testutil.Equal(t, 1, lines[0].Pos.Line, "first line number")
	testutil.Equal(t, 1, lines[0].Pos.Col, "first line column")
	testutil.Equal(t, 2, lines[1].Pos.Line, "second line number")
	testutil.Equal(t, 3, lines[1].Pos.Col, "content column past indent")
}

func TestCRLFLineEndings(t *testing.T) {
	source := "domain Foo\r\n  type Bar extends string\r\n"
	lines := allLines(t, source)
	testutil.Equal(t, "domain Foo", lines[0].Text, "first line text")
	testutil.Equal(t, "type Bar extends string", lines[1].Text, "second line text")
	testutil.Equal(t, 2, lines[1].Pos.Line, "line numbering across CRLF")
}

// Mixed indentation units are a fatal structural error, not a silent
// normalization. The grammar leaves tab-vs-space width unspecified, so
// guessing a conversion factor would misplace block boundaries.
func TestMixedTabsAndSpacesFatal(t *testing.T) {
	err := firstError("domain Foo\n \ttype Bar extends string\n")
	if err == nil {
		t.Fatal("expected indentation error")
	}
	testutil.Equal(t, 2, err.Line, "error line")
	testutil.Contains(t, err.Msg, "mixed tabs and spaces", "error message")
}

func TestTabAfterSpaceUnitFatal(t *testing.T) {
	err := firstError("domain Foo\n  type Bar extends string\n\ttype Baz extends string\n")
	if err == nil {
		t.Fatal("expected indentation error")
	}
	testutil.Equal(t, 3, err.Line, "error line")
}

func TestSpaceAfterTabUnitFatal(t *testing.T) {
	err := firstError("domain Foo\n\ttype Bar extends string\n  type Baz extends string\n")
	if err == nil {
		t.Fatal("expected indentation error")
	}
	testutil.Equal(t, 3, err.Line, "error line")
}

func TestNonMultipleIndentFatal(t *testing.T) {
	err := firstError("domain Foo\n  type Bar extends string\n   type Baz extends string\n")
	if err == nil {
		t.Fatal("expected indentation error")
	}
	testutil.Equal(t, 3, err.Line, "error line")
	testutil.Contains(t, err.Msg, "not a multiple", "error message")
}

// Comment lines tolerate any indentation; they never establish the unit
// and never fail consistency checks.
func TestCommentIndentIsLenient(t *testing.T) {
	source := "domain Foo\n  type Bar extends object\n    properties\n   # oddly indented\n      string name\n"
	lines := allLines(t, source)
	testutil.Equal(t, LineComment, lines[3].Kind, "comment kind")
	testutil.Equal(t, LineCode, lines[4].Kind, "property still lexes")
}

func TestReset(t *testing.T) {
	lex := New([]byte("domain Foo\n  type Bar extends string\n"), nil)
	first, err := lex.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for {
		ln, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ln.Kind == LineEOF {
			break
		}
	}
	lex.Reset()
	again, err := lex.Next()
	if err != nil {
		t.Fatalf("unexpected error after reset: %v", err)
	}
	testutil.Equal(t, first.Text, again.Text, "restarted sequence")
	testutil.Equal(t, first.Pos.Line, again.Pos.Line, "restarted line number")
}

func TestNoFinalNewline(t *testing.T) {
	lines := allLines(t, "domain Foo")
	testutil.Equal(t, LineCode, lines[0].Kind, "kind")
	testutil.Equal(t, "domain Foo", lines[0].Text, "text")
	testutil.Equal(t, LineEOF, lines[1].Kind, "EOF follows")
}
