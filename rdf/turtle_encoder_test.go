package rdf

import (
	"bytes"
	"strings"
	"testing"
)

func TestTurtleEncoderPrefixes(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTurtleEncoder(&buf, TurtleEncodeOptions{
		Prefixes: map[string]string{
			"vcard": "http://www.w3.org/2006/vcard/ns#",
			"xsd":   "http://www.w3.org/2001/XMLSchema#",
			"ex":    "http://example.org/",
		},
	})
	triples := []Triple{
		{S: IRI{Value: "http://example.org/d"}, P: IRI{Value: "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"}, O: IRI{Value: "http://example.org/Dataset"}},
		{S: BlankNode{ID: "N1"}, P: IRI{Value: "http://www.w3.org/2006/vcard/ns#country-name"}, O: NewLiteral("Brasil")},
		{S: BlankNode{ID: "N1"}, P: IRI{Value: "http://www.w3.org/2006/vcard/ns#bday"}, O: NewTypedLiteral("1999", IRI{Value: "http://www.w3.org/2001/XMLSchema#gYear"})},
		{S: IRI{Value: "http://other.org/x"}, P: IRI{Value: "http://example.org/p"}, O: IRI{Value: "http://example.org/a/b"}},
	}
	for _, triple := range triples {
		if err := enc.Write(triple); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"@prefix ex: <http://example.org/> .\n@prefix vcard: <http://www.w3.org/2006/vcard/ns#> .\n@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n",
		"ex:d a ex:Dataset .\n",
		"_:N1 vcard:country-name \"Brasil\" .\n",
		"_:N1 vcard:bday \"1999\"^^xsd:gYear .\n",
		"<http://other.org/x> ex:p <http://example.org/a/b> .\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTurtleEncoderLongestNamespaceWins(t *testing.T) {
	prefixes := map[string]string{
		"vra":  "https://www.loc.gov/standards/vracore/vra.xsd",
		"loc":  "https://www.loc.gov/standards/",
		"core": "https://www.loc.gov/standards/vracore/",
	}
	got, ok := abbreviateQName("https://www.loc.gov/standards/vracore/vra.xsdwork", prefixes)
	if !ok || got != "vra:work" {
		t.Fatalf("unexpected qname: %q %v", got, ok)
	}
	if _, ok := abbreviateQName("http://example.org/x", prefixes); ok {
		t.Fatal("expected no qname for unknown namespace")
	}
}

func TestTurtleEncoderBaseAndClose(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTurtleEncoder(&buf, TurtleEncodeOptions{BaseIRI: "http://example.org/"})
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "@base <http://example.org/> .\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if err := enc.Write(Triple{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/p"}, O: NewLiteral("v")}); err == nil {
		t.Fatal("expected error writing to a closed encoder")
	}
}
