package rdf

import (
	"bufio"
	"io"
	"net/url"
	"strings"
)

type turtleDecoder struct {
	reader   *bufio.Reader
	err      error
	prefixes map[string]string
	base     string
	line     int
	pending  []Triple // Remaining triples of the last statement
}

// NewTurtleDecoder returns a decoder for Turtle input. Labelled blank nodes
// keep their label; anonymous ones ([] and collections) get fresh identifiers.
func NewTurtleDecoder(r io.Reader) TripleDecoder {
	return &turtleDecoder{reader: bufio.NewReader(r), prefixes: map[string]string{}}
}

func (d *turtleDecoder) Next() (Triple, error) {
	for {
		if len(d.pending) > 0 {
			triple := d.pending[0]
			d.pending = d.pending[1:]
			return triple, nil
		}
		if d.err != nil {
			return Triple{}, d.err
		}

		statement, start, err := d.readStatement()
		if err != nil {
			d.err = err
			continue
		}
		triples, err := d.parseStatement(statement)
		if err != nil {
			d.err = wrapParseErrorWithPosition(string(FormatTurtle), strings.TrimSpace(statement), start, 0, -1, err)
			continue
		}
		d.pending = triples
	}
}

func (d *turtleDecoder) Close() error { return nil }

// readStatement accumulates lines until they hold a complete statement.
// Directives are handled on the way and must fit on one line.
func (d *turtleDecoder) readStatement() (string, int, error) {
	var statement strings.Builder
	start := 0
	for {
		line, err := d.readLine()
		if err == io.EOF {
			if statement.Len() == 0 {
				return "", 0, io.EOF
			}
			return statement.String(), start, nil
		}
		if err != nil {
			return "", 0, err
		}
		d.line++

		if statement.Len() == 0 {
			trimmed := strings.TrimSpace(stripComment(line))
			if trimmed == "" {
				continue
			}
			handled, err := d.handleDirective(trimmed)
			if err != nil {
				return "", 0, wrapParseErrorWithPosition(string(FormatTurtle), trimmed, d.line, 0, -1, err)
			}
			if handled {
				continue
			}
			start = d.line
		}
		statement.WriteString(line)
		if isStatementComplete(statement.String()) {
			return statement.String(), start, nil
		}
	}
}

func (d *turtleDecoder) readLine() (string, error) {
	line, err := d.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return line + "\n", nil
		}
		return "", err
	}
	return line, nil
}

// handleDirective applies @prefix, @base and their SPARQL-style forms.
// It reports false when the line is not a directive.
func (d *turtleDecoder) handleDirective(line string) (bool, error) {
	keyword, rest := line, ""
	if i := strings.IndexAny(line, " \t<"); i >= 0 {
		keyword, rest = line[:i], line[i:]
	}

	var isPrefix, sparql bool
	switch {
	case keyword == "@prefix":
		isPrefix = true
	case keyword == "@base":
	case strings.EqualFold(keyword, "PREFIX"):
		isPrefix, sparql = true, true
	case strings.EqualFold(keyword, "BASE"):
		sparql = true
	default:
		return false, nil
	}

	c := &turtleCursor{input: rest, base: d.base}
	prefix := ""
	if isPrefix {
		c.skipWS()
		end := strings.IndexByte(c.input[c.pos:], ':')
		if end < 0 {
			return true, c.errorf("expected prefix name")
		}
		prefix = c.input[c.pos : c.pos+end]
		if strings.ContainsAny(prefix, " \t<") {
			return true, c.errorf("invalid prefix name %q", prefix)
		}
		c.pos += end + 1
	}
	c.skipWS()
	iri, err := c.parseIRI()
	if err != nil {
		return true, err
	}
	if !sparql && !c.consume('.') {
		return true, c.errorf("expected '.' after directive")
	}
	c.skipWS()
	if c.pos < len(c.input) {
		return true, c.errorf("unexpected content after directive")
	}

	if isPrefix {
		d.prefixes[prefix] = iri.Value
	} else {
		d.base = iri.Value
	}
	return true, nil
}

// parseStatement parses one or more statements; several may share a line.
func (d *turtleDecoder) parseStatement(statement string) ([]Triple, error) {
	c := &turtleCursor{input: statement, prefixes: d.prefixes, base: d.base}
	var triples []Triple
	for {
		c.skipWS()
		if c.pos >= len(c.input) {
			return append(triples, c.expansion...), nil
		}
		propertyList := c.peek() == '['

		subject, err := c.parseTerm(false)
		if err != nil {
			return nil, err
		}
		if !IsNode(subject) {
			return nil, c.errorf("subject must be an IRI or blank node")
		}

		c.skipWS()
		// A blank node property list may stand alone: [ ex:p ex:o ] .
		if !propertyList || c.peek() != '.' {
			list, err := c.parsePredicateObjectList(subject)
			if err != nil {
				return nil, err
			}
			triples = append(triples, list...)
		}
		if !c.consume('.') {
			return nil, c.errorf("expected '.' at end of statement")
		}
	}
}

// resolveIRI resolves a relative reference against the base. Absolute IRIs
// are returned untouched so non-ASCII characters are not percent-encoded.
func resolveIRI(base, ref string) string {
	if base == "" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil || r.Scheme != "" {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// stripComment drops a trailing comment that sits outside strings and IRIs.
func stripComment(line string) string {
	inString := false
	inIRI := false
	quote := byte(0)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inString:
			if ch == '\\' {
				i++
			} else if ch == quote {
				inString = false
			}
		case inIRI:
			if ch == '>' {
				inIRI = false
			}
		case ch == '"' || ch == '\'':
			inString = true
			quote = ch
		case ch == '<':
			inIRI = true
		case ch == '#':
			if i > 0 && line[i-1] == '\\' {
				continue
			}
			return line[:i]
		}
	}
	return line
}

// isStatementComplete reports whether stmt ends with a top-level '.'
// outside strings, IRIs, comments, brackets and collections.
func isStatementComplete(stmt string) bool {
	inString := false
	longString := false
	quote := byte(0)
	inIRI := false
	depth := 0

	for i := 0; i < len(stmt); i++ {
		ch := stmt[i]

		if inString {
			if ch == '\\' {
				i++
				continue
			}
			if ch != quote {
				continue
			}
			if !longString {
				inString = false
			} else if strings.HasPrefix(stmt[i:], strings.Repeat(string(quote), 3)) {
				// A long string may end with extra quotes: """a""""
				for i+3 < len(stmt) && stmt[i+3] == quote {
					i++
				}
				inString = false
				i += 2
			}
			continue
		}
		if inIRI {
			if ch == '>' {
				inIRI = false
			}
			continue
		}

		switch ch {
		case '<':
			inIRI = true
		case '"', '\'':
			inString = true
			quote = ch
			longString = strings.HasPrefix(stmt[i:], strings.Repeat(string(ch), 3))
			if longString {
				i += 2
			}
		case '#':
			if i > 0 && stmt[i-1] == '\\' {
				continue
			}
			end := strings.IndexByte(stmt[i:], '\n')
			if end < 0 {
				return false
			}
			i += end
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth > 0 {
				continue
			}
			// Decimal point in a numeric literal.
			if i > 0 && i+1 < len(stmt) && isDigit(stmt[i-1]) && isDigit(stmt[i+1]) {
				continue
			}
			if strings.TrimSpace(stripComment(stmt[i+1:])) == "" {
				return true
			}
		}
	}
	return false
}
