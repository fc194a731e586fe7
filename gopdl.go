package gopdl

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/golangpdl/gopdl/internal/lower"
	"github.com/golangpdl/gopdl/internal/parser"
	"github.com/golangpdl/gopdl/internal/types"
	"github.com/golangpdl/gopdl/pdl"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (lines, productions, references).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures Parse and ParseSome.
type Option func(*parseConfig)

type parseConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *parseConfig) { c.logger = logger }
}

// Parse parses a complete PDL document and resolves its type
// references. The whole input must be consumed; trailing non-blank
// content is an error. Unresolvable references are not errors: they are
// collected on the returned Protocol (see Protocol.Unresolved).
//
// A non-nil error is a *ParseError carrying the source position, the
// offending line, and the productions that were legal at that point.
//
// Example:
//
//	proto, err := gopdl.Parse(source,
//	    gopdl.WithLogger(slog.Default()),
//	)
func Parse(source []byte, opts ...Option) (*pdl.Protocol, error) {
	proto, rest, restPos, err := parseSome(source, opts)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		line, _, _ := bytes.Cut(rest, []byte("\n"))
		return nil, &pdl.ParseError{
			Pos:      restPos,
			LineText: string(bytes.TrimSpace(line)),
			Expected: []string{"domain"},
			Message:  "trailing content after document",
		}
	}
	return proto, nil
}

// ParseSome parses a PDL document from the head of the input and
// returns the unconsumed tail, for PDL embedded in a larger stream.
// Parsing stops at the first top-level line that cannot begin a
// production, once at least one domain has been read.
func ParseSome(source []byte, opts ...Option) (*pdl.Protocol, []byte, error) {
	proto, rest, _, err := parseSome(source, opts)
	return proto, rest, err
}

func parseSome(source []byte, opts []Option) (*pdl.Protocol, []byte, pdl.Pos, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	result, perr := parser.New(source, cfg.logger).ParseProtocol()
	if perr != nil {
		return nil, nil, pdl.Pos{}, &pdl.ParseError{
			Pos:      pdl.Pos{Line: perr.Pos.Line, Col: perr.Pos.Col},
			LineText: perr.LineText,
			Expected: perr.Expected,
			Message:  perr.Message,
		}
	}

	proto := lower.Protocol(result.Protocol, cfg.logger)
	proto.Resolve()
	restPos := pdl.Pos{Line: result.RestPos.Line, Col: result.RestPos.Col}
	return proto, result.Rest, restPos, nil
}

// Print renders the document in canonical PDL text form. Parsing the
// output yields a structurally equal Protocol.
func Print(p *pdl.Protocol) string {
	return p.String()
}

// AsParseError unwraps err as a *ParseError.
func AsParseError(err error) (*pdl.ParseError, bool) {
	var perr *pdl.ParseError
	ok := errors.As(err, &perr)
	return perr, ok
}
