package lexer

import (
	"github.com/golangpdl/gopdl/internal/types"
)

// LineKind classifies a logical source line.
type LineKind int

const (
	// LineEOF marks the end of input.
	LineEOF LineKind = iota
	// LineBlank is an empty or whitespace-only line.
	LineBlank
	// LineComment is a '#'-prefixed comment line.
	LineComment
	// LineCode is any other non-blank line.
	LineCode
)

// String returns the kind name for logging and error messages.
func (k LineKind) String() string {
	switch k {
	case LineEOF:
		return "EOF"
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineCode:
		return "code"
	default:
		return "unknown"
	}
}

// Line is a classified logical line with indentation depth and position.
type Line struct {
	Kind LineKind
	// Depth is the indentation depth in whole indent units.
	// Zero for blank lines; best-effort for comment lines.
	Depth int
	// Text is the trimmed line content. For comment lines it is the
	// comment text with the leading '#' and surrounding space removed.
	Text string
	// Span covers the full raw line, indentation included, without the
	// line terminator.
	Span types.Span
	// Pos is the 1-based position of the first content character.
	Pos types.Pos
}
