package rdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// IsZero reports whether the IRI is empty. An empty IRI acts as a wildcard
// in graph patterns.
func (i IRI) IsZero() bool { return i.Value == "" }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// NewBlankNode mints a blank node with a fresh opaque identifier.
func NewBlankNode() BlankNode {
	return BlankNode{ID: "N" + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// NewLiteral returns a plain literal.
func NewLiteral(lexical string) Literal {
	return Literal{Lexical: lexical}
}

// NewTypedLiteral returns a literal carrying a datatype IRI.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// Triple is an RDF triple.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// String renders the triple as an N-Triples statement without the trailing newline.
func (t Triple) String() string {
	return renderTerm(t.S) + " " + renderIRI(t.P) + " " + renderTerm(t.O) + " ."
}

// Lexical returns the string content of a term: the IRI value, the blank node
// identifier, or the literal's lexical form. It returns "" for nil.
func Lexical(term Term) string {
	switch value := term.(type) {
	case IRI:
		return value.Value
	case BlankNode:
		return value.ID
	case Literal:
		return value.Lexical
	default:
		return ""
	}
}

// IsNode reports whether the term can act as a subject (IRI or blank node).
func IsNode(term Term) bool {
	if term == nil {
		return false
	}
	kind := term.Kind()
	return kind == TermIRI || kind == TermBlankNode
}

// termKey returns a canonical key for a term; equal terms produce equal keys.
func termKey(term Term) string {
	if term == nil {
		return ""
	}
	return renderTerm(term)
}
