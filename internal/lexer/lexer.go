// Package lexer splits PDL source text into classified logical lines.
//
// The lexer measures indentation in whole units (a fixed run of spaces or
// exactly one tab, established by the first indented code line), trims
// content, and classifies each line as blank, comment, or code. Block
// structure is left entirely to the parser; the lexer's only structural
// duty is enforcing a consistent indentation unit across the file.
package lexer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/golangpdl/gopdl/internal/types"
)

// Lexer produces a lazy, restartable sequence of classified lines.
type Lexer struct {
	source []byte
	pos    int
	line   int // 1-based number of the next line to read

	// Indent unit, established by the first indented code line.
	unitTab   bool
	unitWidth int // spaces per unit; 0 until established

	types.Logger
}

// New returns a Lexer over the given source bytes.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		line:   1,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Reset rewinds the lexer to the start of the source.
func (l *Lexer) Reset() {
	l.pos = 0
	l.line = 1
	l.unitTab = false
	l.unitWidth = 0
}

// Next returns the next classified line. It returns LineEOF once all
// input is consumed, and a StructuralError for indentation-unit
// violations (mixed tabs and spaces, or indent not a whole multiple of
// the established unit).
func (l *Lexer) Next() (Line, *types.StructuralError) {
	if l.pos >= len(l.source) {
		span := types.NewSpan(types.ByteOffset(l.pos), types.ByteOffset(l.pos))
		return Line{Kind: LineEOF, Span: span, Pos: types.Pos{Line: l.line, Col: 1}}, nil
	}

	start := l.pos
	lineNum := l.line
	raw := l.readRawLine()

	spaces, tabs := 0, 0
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		if raw[i] == ' ' {
			spaces++
		} else {
			tabs++
		}
		i++
	}

	span := types.NewSpan(types.ByteOffset(start), types.ByteOffset(start+len(raw)))
	pos := types.Pos{Line: lineNum, Col: i + 1}
	content := strings.TrimRight(raw[i:], " \t")

	if content == "" {
		return Line{Kind: LineBlank, Span: span, Pos: types.Pos{Line: lineNum, Col: 1}}, nil
	}

	if content[0] == '#' {
		text := strings.TrimSpace(content[1:])
		depth := l.commentDepth(spaces, tabs)
		ln := Line{Kind: LineComment, Depth: depth, Text: text, Span: span, Pos: pos}
		l.traceLine(ln)
		return ln, nil
	}

	depth, err := l.measureDepth(spaces, tabs, span, pos, content)
	if err != nil {
		return Line{}, err
	}

	ln := Line{Kind: LineCode, Depth: depth, Text: content, Span: span, Pos: pos}
	l.traceLine(ln)
	return ln, nil
}

// readRawLine consumes one line including its terminator and returns the
// line content without the terminator.
func (l *Lexer) readRawLine() string {
	start := l.pos
	for l.pos < len(l.source) && l.source[l.pos] != '\n' && l.source[l.pos] != '\r' {
		l.pos++
	}
	raw := string(l.source[start:l.pos])
	if l.pos < len(l.source) {
		if l.source[l.pos] == '\r' {
			l.pos++
			if l.pos < len(l.source) && l.source[l.pos] == '\n' {
				l.pos++
			}
		} else {
			l.pos++
		}
	}
	l.line++
	return raw
}

// measureDepth converts a leading whitespace run into an indent depth,
// establishing the file's indent unit on first use.
func (l *Lexer) measureDepth(spaces, tabs int, span types.Span, pos types.Pos, content string) (int, *types.StructuralError) {
	if spaces > 0 && tabs > 0 {
		return 0, &types.StructuralError{
			Pos:      pos,
			Span:     span,
			LineText: content,
			Message:  "mixed tabs and spaces in indentation",
		}
	}
	if spaces == 0 && tabs == 0 {
		return 0, nil
	}

	if tabs > 0 {
		if l.unitWidth > 0 {
			return 0, &types.StructuralError{
				Pos:      pos,
				Span:     span,
				LineText: content,
				Message:  fmt.Sprintf("tab indentation in a file indented with %d-space units", l.unitWidth),
			}
		}
		if !l.unitTab {
			l.unitTab = true
			l.Log(slog.LevelDebug, "indent unit established", slog.String("unit", "tab"))
		}
		return tabs, nil
	}

	if l.unitTab {
		return 0, &types.StructuralError{
			Pos:      pos,
			Span:     span,
			LineText: content,
			Message:  "space indentation in a tab-indented file",
		}
	}
	if l.unitWidth == 0 {
		l.unitWidth = spaces
		l.Log(slog.LevelDebug, "indent unit established", slog.Int("spaces", spaces))
		return 1, nil
	}
	if spaces%l.unitWidth != 0 {
		return 0, &types.StructuralError{
			Pos:      pos,
			Span:     span,
			LineText: content,
			Message:  fmt.Sprintf("indentation of %d spaces is not a multiple of the %d-space unit", spaces, l.unitWidth),
		}
	}
	return spaces / l.unitWidth, nil
}

// commentDepth computes a best-effort depth for comment lines. Comments
// neither establish the indent unit nor fail consistency checks, so that
// freely indented header comments do not poison depth measurement.
func (l *Lexer) commentDepth(spaces, tabs int) int {
	if tabs > 0 {
		return tabs
	}
	if l.unitWidth > 0 {
		return spaces / l.unitWidth
	}
	return 0
}

func (l *Lexer) traceLine(ln Line) {
	if l.TraceEnabled() {
		l.Trace("line",
			slog.String("kind", ln.Kind.String()),
			slog.Int("depth", ln.Depth),
			slog.Int("line", ln.Pos.Line))
	}
}
