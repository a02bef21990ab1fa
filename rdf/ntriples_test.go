package rdf

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNTriplesDecodeErrors(t *testing.T) {
	dec := NewNTriplesDecoder(strings.NewReader("<http://example.org/s> <http://example.org/p> .\n"))
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for missing object")
	}

	dec = NewNTriplesDecoder(strings.NewReader("<http://example.org/s> <http://example.org/p> <http://example.org/o>\n"))
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for missing dot")
	}

	dec = NewNTriplesDecoder(strings.NewReader("\"lit\" <http://example.org/p> <http://example.org/o> .\n"))
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for literal subject")
	}

	dec = NewNTriplesDecoder(strings.NewReader("<http://example.org/s> <http://example.org/p> \"open .\n"))
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for unterminated literal")
	}
}

func TestNTriplesRejectGraphLabel(t *testing.T) {
	line := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"
	dec := NewNTriplesDecoder(strings.NewReader(line))
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for graph term in ntriples")
	}

	dec = newNQuadsDecoder(strings.NewReader(line))
	triple, err := dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Lexical(triple.O) != "http://example.org/o" {
		t.Fatalf("unexpected object: %v", triple.O)
	}
}

func TestNTriplesDecodeBlankAndLiteral(t *testing.T) {
	input := "# comment\n\n_:b1 <http://example.org/p> \"v\"@en .\n" +
		"_:b1 <http://example.org/q> \"2021\"^^<http://www.w3.org/2001/XMLSchema#gYear> .\n" +
		"_:b1 <http://example.org/r> \"say \\\"hi\\\"\\n\" ."
	dec := NewNTriplesDecoder(strings.NewReader(input))

	triple, err := dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := triple.S.(BlankNode); !ok {
		t.Fatalf("expected blank node subject, got %T", triple.S)
	}
	lit, ok := triple.O.(Literal)
	if !ok || lit.Lang != "en" || lit.Lexical != "v" {
		t.Fatalf("unexpected literal: %#v", triple.O)
	}

	triple, err = dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit = triple.O.(Literal)
	if lit.Datatype.Value != "http://www.w3.org/2001/XMLSchema#gYear" || lit.Lexical != "2021" {
		t.Fatalf("unexpected typed literal: %#v", lit)
	}

	triple, err = dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Lexical(triple.O) != "say \"hi\"\n" {
		t.Fatalf("unexpected escaped literal: %q", Lexical(triple.O))
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestNTriplesParseErrorPosition(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n" +
		"<http://example.org/s> <http://example.org/p> oops .\n"
	dec := NewNTriplesDecoder(strings.NewReader(input))
	if _, err := dec.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := dec.Next()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if parseErr.Line != 2 || parseErr.Format != "ntriples" {
		t.Fatalf("unexpected position: %+v", parseErr)
	}
	if !strings.Contains(err.Error(), "ntriples:2") {
		t.Fatalf("expected line in message, got %q", err.Error())
	}
	if _, again := dec.Next(); again != err {
		t.Fatal("expected decoder to keep returning the first error")
	}
}

func TestNTriplesEncoderRoundTrip(t *testing.T) {
	triples := []Triple{
		{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/p"}, O: NewLiteral("Indivíduo")},
		{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/q"}, O: BlankNode{ID: "N1"}},
		{S: BlankNode{ID: "N1"}, P: IRI{Value: "http://example.org/r"}, O: NewTypedLiteral("1.5", IRI{Value: "http://www.w3.org/2001/XMLSchema#double"})},
	}
	var buf bytes.Buffer
	enc := NewNTriplesEncoder(&buf)
	for _, triple := range triples {
		if err := enc.Write(triple); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dec := NewNTriplesDecoder(&buf)
	for i, want := range triples {
		got, err := dec.Next()
		if err != nil {
			t.Fatalf("triple %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Fatalf("triple %d: got %v want %v", i, got, want)
		}
	}
}

func TestNTriplesEncoderRejectsIncompleteTriple(t *testing.T) {
	enc := NewNTriplesEncoder(&bytes.Buffer{})
	if err := enc.Write(Triple{S: IRI{Value: "http://example.org/s"}}); err == nil {
		t.Fatal("expected error for incomplete triple")
	}
}
