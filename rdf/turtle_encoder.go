package rdf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// TurtleEncodeOptions configures Turtle encoding.
type TurtleEncodeOptions struct {
	// Prefixes maps prefix labels to namespace IRIs used for abbreviation.
	Prefixes map[string]string
	// BaseIRI is emitted as an @base directive when set.
	BaseIRI string
	// Indent prefixes every statement line.
	Indent string
}

type turtleEncoder struct {
	writer  *bufio.Writer
	err     error
	started bool
	opts    TurtleEncodeOptions
}

// NewTurtleEncoder returns an encoder writing one Turtle statement per line,
// abbreviating IRIs with the configured prefixes.
func NewTurtleEncoder(w io.Writer, opts TurtleEncodeOptions) TripleEncoder {
	return &turtleEncoder{writer: bufio.NewWriter(w), opts: opts}
}

func (e *turtleEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	if t.S == nil || t.P.IsZero() || t.O == nil {
		return fmt.Errorf("turtle: missing statement fields")
	}
	line := renderTermWithPrefixes(t.S, e.opts.Prefixes) + " " + renderPredicate(t.P, e.opts.Prefixes) + " " + renderTermWithPrefixes(t.O, e.opts.Prefixes) + " .\n"
	if e.opts.Indent != "" {
		line = e.opts.Indent + line
	}
	_, err := e.writer.WriteString(line)
	if err != nil {
		e.err = err
	}
	return err
}

func (e *turtleEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *turtleEncoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	if err := e.writer.Flush(); err != nil {
		e.err = err
		return err
	}
	e.err = fmt.Errorf("turtle: writer closed")
	return nil
}

func (e *turtleEncoder) writeHeader() error {
	e.started = true
	if e.opts.BaseIRI != "" {
		if _, err := e.writer.WriteString("@base <" + e.opts.BaseIRI + "> .\n"); err != nil {
			e.err = err
			return err
		}
	}
	for _, prefix := range sortedPrefixKeys(e.opts.Prefixes) {
		line := "@prefix " + prefix + ": <" + e.opts.Prefixes[prefix] + "> .\n"
		if _, err := e.writer.WriteString(line); err != nil {
			e.err = err
			return err
		}
	}
	return nil
}

func sortedPrefixKeys(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for key := range prefixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// renderPredicate writes rdf:type as the Turtle keyword "a".
func renderPredicate(iri IRI, prefixes map[string]string) string {
	if iri.Value == "http://www.w3.org/1999/02/22-rdf-syntax-ns#type" {
		return "a"
	}
	return renderIRIWithPrefixes(iri, prefixes)
}

func renderIRIWithPrefixes(iri IRI, prefixes map[string]string) string {
	if qname, ok := abbreviateQName(iri.Value, prefixes); ok {
		return qname
	}
	return renderIRI(iri)
}

func renderTermWithPrefixes(term Term, prefixes map[string]string) string {
	switch value := term.(type) {
	case IRI:
		return renderIRIWithPrefixes(value, prefixes)
	case Literal:
		return renderLiteral(value, renderIRIWithPrefixes(value.Datatype, prefixes))
	default:
		return renderTerm(term)
	}
}

// abbreviateQName picks the longest namespace that yields a valid local name.
func abbreviateQName(iri string, prefixes map[string]string) (string, bool) {
	bestNS := ""
	bestPrefix := ""
	for prefix, ns := range prefixes {
		if prefix == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if !isQNameLocal(iri[len(ns):]) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && prefix < bestPrefix) {
			bestNS = ns
			bestPrefix = prefix
		}
	}
	if bestPrefix == "" {
		return "", false
	}
	return bestPrefix + ":" + iri[len(bestNS):], true
}

func isQNameLocal(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if i == 0 {
			if !isNameStartChar(ch) {
				return false
			}
		} else if !isNameChar(ch) {
			return false
		}
	}
	return value[len(value)-1] != '.'
}

func isNameStartChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStartChar(ch) || (ch >= '0' && ch <= '9') || ch == '-' || ch == '.'
}
