package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeJSONLD indicates a failure inside the JSON-LD processor.
	ErrCodeJSONLD ErrorCode = "JSONLD_ERROR"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
	// ErrJSONLD wraps failures reported by the JSON-LD processor.
	ErrJSONLD = errors.New("rdf: json-ld processing failed")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error condition).
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrJSONLD):
		return ErrCodeJSONLD
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}
	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // Format name (e.g., "ntriples", "jsonld")
	Statement string // Offending statement or input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Column    int    // 1-based column number (0 if unknown)
	Offset    int    // Byte offset in input (-1 if unknown)
	Err       error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)

	if e.Line > 0 {
		if e.Column > 0 {
			fmt.Fprintf(&msg, ":%d:%d", e.Line, e.Column)
		} else {
			fmt.Fprintf(&msg, ":%d", e.Line)
		}
	} else if e.Offset >= 0 {
		fmt.Fprintf(&msg, " (offset %d)", e.Offset)
	}

	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())

	if excerpt := e.formatExcerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

// formatExcerpt truncates the offending statement for display.
func (e *ParseError) formatExcerpt() string {
	const maxExcerptLen = 80
	if len(e.Statement) > maxExcerptLen {
		return e.Statement[:maxExcerptLen] + "..."
	}
	return e.Statement
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapParseErrorWithPosition adds format/statement/position context to a parse error.
func wrapParseErrorWithPosition(format, statement string, line, column, offset int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if parseErr.Line > 0 && line == 0 {
			line = parseErr.Line
		}
		if parseErr.Column > 0 && column == 0 {
			column = parseErr.Column
		}
		if parseErr.Offset >= 0 && offset < 0 {
			offset = parseErr.Offset
		}
	}
	return &ParseError{
		Format:    format,
		Statement: statement,
		Line:      line,
		Column:    column,
		Offset:    offset,
		Err:       err,
	}
}
