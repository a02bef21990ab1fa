package rdf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	rdfNS          = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xsdNS          = "http://www.w3.org/2001/XMLSchema#"
	rdfTypeIRI     = rdfNS + "type"
	rdfFirstIRI    = rdfNS + "first"
	rdfRestIRI     = rdfNS + "rest"
	rdfNilIRI      = rdfNS + "nil"
	xsdIntegerIRI  = xsdNS + "integer"
	xsdDecimalIRI  = xsdNS + "decimal"
	xsdDoubleIRI   = xsdNS + "double"
	xsdBooleanIRI  = xsdNS + "boolean"
	pnLocalEscapes = "_~.-!$&'()*+,;=/?#@%"
)

type turtleCursor struct {
	input     string
	pos       int
	prefixes  map[string]string
	base      string
	expansion []Triple // Triples generated from collections and blank node property lists
}

// skipWS skips whitespace and comments.
func (c *turtleCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		case '#':
			end := strings.IndexByte(c.input[c.pos:], '\n')
			if end < 0 {
				c.pos = len(c.input)
				return
			}
			c.pos += end
		default:
			return
		}
	}
}

func (c *turtleCursor) peek() byte {
	return c.at(c.pos)
}

func (c *turtleCursor) at(i int) byte {
	if i >= len(c.input) {
		return 0
	}
	return c.input[i]
}

func (c *turtleCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

// parsePredicateObjectList parses "verb objectList (; verb objectList)*" and
// stops before the '.' or ']' that closes it.
func (c *turtleCursor) parsePredicateObjectList(subject Term) ([]Triple, error) {
	var triples []Triple
	for {
		predicate, err := c.parsePredicate()
		if err != nil {
			return nil, err
		}
		for {
			object, err := c.parseTerm(true)
			if err != nil {
				return nil, err
			}
			triples = append(triples, Triple{S: subject, P: predicate, O: object})
			if !c.consume(',') {
				break
			}
		}

		if !c.consume(';') {
			return triples, nil
		}
		for c.consume(';') {
		}
		c.skipWS()
		if ch := c.peek(); ch == 0 || ch == '.' || ch == ']' {
			return triples, nil
		}
	}
}

func (c *turtleCursor) parsePredicate() (IRI, error) {
	c.skipWS()
	if c.peek() == 'a' && isTurtleTerminator(c.at(c.pos+1), c.at(c.pos+2)) {
		c.pos++
		return IRI{Value: rdfTypeIRI}, nil
	}
	term, err := c.parseTerm(false)
	if err != nil {
		return IRI{}, err
	}
	iri, ok := term.(IRI)
	if !ok {
		return IRI{}, c.errorf("predicate must be an IRI")
	}
	return iri, nil
}

func (c *turtleCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of statement")
	}
	switch ch := c.input[c.pos]; {
	case ch == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case ch == '[':
		return c.parseBlankNodePropertyList()
	case ch == '(':
		return c.parseCollection()
	case ch == '"' || ch == '\'':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	}
	if allowLiteral {
		if lit, ok := c.tryParseNumericLiteral(); ok {
			return lit, nil
		}
		if lit, ok := c.tryParseBooleanLiteral(); ok {
			return lit, nil
		}
	}
	return c.parsePrefixedName()
}

func (c *turtleCursor) parseIRI() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	var b strings.Builder
	for {
		if c.pos >= len(c.input) {
			return IRI{}, c.errorf("unterminated IRI")
		}
		ch := c.input[c.pos]
		if ch == '>' {
			c.pos++
			break
		}
		if ch == '\\' {
			r, err := c.parseUChar()
			if err != nil {
				return IRI{}, err
			}
			if isDisallowedIRIChar(r) {
				return IRI{}, c.errorf("invalid character in IRI")
			}
			b.WriteRune(r)
			continue
		}
		if isDisallowedIRIChar(rune(ch)) {
			return IRI{}, c.errorf("invalid character in IRI")
		}
		b.WriteByte(ch)
		c.pos++
	}
	return IRI{Value: resolveIRI(c.base, b.String())}, nil
}

func isDisallowedIRIChar(r rune) bool {
	if r <= 0x20 {
		return true
	}
	switch r {
	case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
		return true
	}
	return false
}

// parseUChar decodes a \uXXXX or \UXXXXXXXX escape at the cursor.
func (c *turtleCursor) parseUChar() (rune, error) {
	width := 0
	switch c.at(c.pos + 1) {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0, c.errorf("invalid escape sequence")
	}
	start := c.pos + 2
	if start+width > len(c.input) {
		return 0, c.errorf("invalid escape sequence")
	}
	value, err := strconv.ParseUint(c.input[start:start+width], 16, 32)
	if err != nil || !utf8.ValidRune(rune(value)) {
		return 0, c.errorf("invalid escape sequence")
	}
	c.pos = start + width
	return rune(value), nil
}

func (c *turtleCursor) parseBlankNode() (BlankNode, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTurtleTerminator(c.input[c.pos], c.at(c.pos+1)) && c.input[c.pos] != ':' {
		c.pos++
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

// parseBlankNodePropertyList parses [ predicateObjectList ] into a fresh
// blank node; the inner triples go to the expansion buffer.
func (c *turtleCursor) parseBlankNodePropertyList() (Term, error) {
	c.pos++
	node := NewBlankNode()
	c.skipWS()
	if c.peek() == ']' {
		c.pos++
		return node, nil
	}
	triples, err := c.parsePredicateObjectList(node)
	if err != nil {
		return nil, err
	}
	if !c.consume(']') {
		return nil, c.errorf("expected ']'")
	}
	c.expansion = append(c.expansion, triples...)
	return node, nil
}

// parseCollection parses ( object* ) into an rdf:first/rdf:rest list and
// returns its head, or rdf:nil for an empty collection.
func (c *turtleCursor) parseCollection() (Term, error) {
	c.pos++
	var items []Term
	for {
		c.skipWS()
		if c.pos >= len(c.input) {
			return nil, c.errorf("unterminated collection")
		}
		if c.input[c.pos] == ')' {
			c.pos++
			break
		}
		item, err := c.parseTerm(true)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var head Term = IRI{Value: rdfNilIRI}
	for i := len(items) - 1; i >= 0; i-- {
		node := NewBlankNode()
		c.expansion = append(c.expansion,
			Triple{S: node, P: IRI{Value: rdfFirstIRI}, O: items[i]},
			Triple{S: node, P: IRI{Value: rdfRestIRI}, O: head},
		)
		head = node
	}
	return head, nil
}

func (c *turtleCursor) parseLiteral() (Term, error) {
	lexical, err := c.parseString()
	if err != nil {
		return nil, err
	}
	if c.peek() == '@' {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && (isASCIILetter(c.input[c.pos]) || isDigit(c.input[c.pos]) || c.input[c.pos] == '-') {
			c.pos++
		}
		lang := c.input[start:c.pos]
		if lang == "" || !isASCIILetter(lang[0]) || strings.HasSuffix(lang, "-") {
			return nil, c.errorf("invalid language tag %q", lang)
		}
		return Literal{Lexical: lexical, Lang: lang}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseTerm(false)
		if err != nil {
			return nil, err
		}
		iri, ok := dt.(IRI)
		if !ok {
			return nil, c.errorf("datatype must be an IRI")
		}
		return Literal{Lexical: lexical, Datatype: iri}, nil
	}
	return Literal{Lexical: lexical}, nil
}

// parseString reads a short or long quoted string and decodes its escapes.
func (c *turtleCursor) parseString() (string, error) {
	quote := c.input[c.pos]
	closing := strings.Repeat(string(quote), 3)
	long := strings.HasPrefix(c.input[c.pos:], closing)
	if long {
		c.pos += 3
	} else {
		c.pos++
	}

	var b strings.Builder
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		switch {
		case ch == '\\':
			if err := c.parseEscape(&b); err != nil {
				return "", err
			}
			continue
		case ch == quote && !long:
			c.pos++
			return b.String(), nil
		case ch == quote && strings.HasPrefix(c.input[c.pos:], closing) && c.at(c.pos+3) != quote:
			c.pos += 3
			return b.String(), nil
		case (ch == '\n' || ch == '\r') && !long:
			return "", c.errorf("line break in string literal")
		}
		b.WriteByte(ch)
		c.pos++
	}
	return "", c.errorf("unterminated string literal")
}

func (c *turtleCursor) parseEscape(b *strings.Builder) error {
	var decoded byte
	switch c.at(c.pos + 1) {
	case 't':
		decoded = '\t'
	case 'b':
		decoded = '\b'
	case 'n':
		decoded = '\n'
	case 'r':
		decoded = '\r'
	case 'f':
		decoded = '\f'
	case '"', '\'', '\\':
		decoded = c.at(c.pos + 1)
	case 'u', 'U':
		r, err := c.parseUChar()
		if err != nil {
			return err
		}
		b.WriteRune(r)
		return nil
	default:
		return c.errorf("invalid escape sequence")
	}
	b.WriteByte(decoded)
	c.pos += 2
	return nil
}

func (c *turtleCursor) tryParseNumericLiteral() (Literal, bool) {
	start := c.pos
	if ch := c.peek(); ch == '+' || ch == '-' {
		c.pos++
	}
	hasDigits, hasDot, hasExponent := false, false, false
loop:
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		switch {
		case isDigit(ch):
			hasDigits = true
		case ch == '.' && !hasDot && !hasExponent && (isDigit(c.at(c.pos+1)) || c.at(c.pos+1) == 'e' || c.at(c.pos+1) == 'E'):
			hasDot = true
		case (ch == 'e' || ch == 'E') && !hasExponent && hasDigits:
			hasExponent = true
			if sign := c.at(c.pos + 1); sign == '+' || sign == '-' {
				c.pos++
			}
			if !isDigit(c.at(c.pos + 1)) {
				c.pos = start
				return Literal{}, false
			}
		default:
			break loop
		}
		c.pos++
	}
	if !hasDigits || (c.pos < len(c.input) && !isTurtleTerminator(c.input[c.pos], c.at(c.pos+1))) {
		c.pos = start
		return Literal{}, false
	}
	datatype := xsdIntegerIRI
	switch {
	case hasExponent:
		datatype = xsdDoubleIRI
	case hasDot:
		datatype = xsdDecimalIRI
	}
	return Literal{Lexical: c.input[start:c.pos], Datatype: IRI{Value: datatype}}, true
}

func (c *turtleCursor) tryParseBooleanLiteral() (Literal, bool) {
	for _, word := range []string{"true", "false"} {
		end := c.pos + len(word)
		if strings.HasPrefix(c.input[c.pos:], word) && (end >= len(c.input) || isTurtleTerminator(c.input[end], c.at(end+1))) {
			c.pos = end
			return Literal{Lexical: word, Datatype: IRI{Value: xsdBooleanIRI}}, true
		}
	}
	return Literal{}, false
}

func (c *turtleCursor) parsePrefixedName() (Term, error) {
	start := c.pos
	for c.pos < len(c.input) {
		if c.input[c.pos] == '\\' {
			c.pos += 2
			continue
		}
		if isTurtleTerminator(c.input[c.pos], c.at(c.pos+1)) {
			break
		}
		c.pos++
	}
	if c.pos > len(c.input) {
		c.pos = len(c.input)
	}
	token := c.input[start:c.pos]
	if token == "" {
		return nil, c.errorf("expected term")
	}
	prefix, local, ok := strings.Cut(token, ":")
	if !ok {
		return nil, c.errorf("unexpected token %q", token)
	}
	ns, ok := c.prefixes[prefix]
	if !ok {
		return nil, c.errorf("unknown prefix %q", prefix)
	}

	var b strings.Builder
	for i := 0; i < len(local); i++ {
		if local[i] == '\\' {
			if i+1 >= len(local) || !strings.ContainsRune(pnLocalEscapes, rune(local[i+1])) {
				return nil, c.errorf("invalid token %q", token)
			}
			i++
		}
		b.WriteByte(local[i])
	}
	return IRI{Value: ns + b.String()}, nil
}

// isTurtleTerminator reports whether ch ends a bare token. A dot ends a
// token only when followed by whitespace, a delimiter or the end of input.
func isTurtleTerminator(ch, next byte) bool {
	switch ch {
	case 0, ' ', '\t', '\r', '\n', ';', ',', '(', ')', '[', ']', '<', '>', '"', '\'', '#':
		return true
	case '.':
		switch next {
		case 0, ' ', '\t', '\r', '\n', ';', ',', ')', ']', '#':
			return true
		}
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func (c *turtleCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format+" (offset %d)", append(args, c.pos)...)
}
