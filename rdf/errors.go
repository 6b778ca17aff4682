package rdf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates an unsupported serialization format.
	ErrUnsupportedFormat = errors.New("rdf: unsupported format")
	// ErrLineTooLong indicates a line exceeded the configured limit.
	ErrLineTooLong = errors.New("rdf: line exceeds configured limit")
	// ErrStatementTooLong indicates a statement exceeded the configured limit.
	ErrStatementTooLong = errors.New("rdf: statement exceeds configured limit")
)

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // format name (e.g. "turtle", "ntriples")
	Statement string // offending statement or input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Err       error  // underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Line > 0 {
		fmt.Fprintf(&msg, ":%d", e.Line)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if e.Statement != "" {
		const maxExcerptLen = 80
		excerpt := e.Statement
		if len(excerpt) > maxExcerptLen {
			excerpt = excerpt[:maxExcerptLen] + "..."
		}
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapParseError adds format/statement/line context to a parse error.
func wrapParseError(format, statement string, line int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if parseErr.Line > 0 && line == 0 {
			line = parseErr.Line
		}
	}
	return &ParseError{Format: format, Statement: statement, Line: line, Err: err}
}
