package rdf

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func decodeTurtle(t *testing.T, input string) *Graph {
	t.Helper()
	g := NewGraph()
	if err := ReadGraph(context.Background(), strings.NewReader(input), FormatTurtle, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func ex(local string) IRI {
	return IRI{Value: "http://example.org/" + local}
}

func TestTurtleDecodeDirectivesAndLists(t *testing.T) {
	input := `# header comment
@prefix ex: <http://example.org/> .
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>
@base <http://example.org/base/> .

ex:d a ex:Dataset ;
    ex:title "Título"@pt-BR, "Title"@en ;   # trailing comment
    ex:issued "2021-04-03"^^xsd:date ;
    ex:count 3 ;
    ex:ratio 12.5 ;
    ex:big 1.5e3 ;
    ex:open true ;
    ex:page <page> .
ex:d ex:note """first line
# not a comment
second "quoted" line""" .
ex:a ex:p ex:o. ex:b ex:p ex:o .
`
	g := decodeTurtle(t, input)
	d := ex("d")
	xsd := "http://www.w3.org/2001/XMLSchema#"

	want := []Triple{
		{S: d, P: IRI{Value: rdfTypeIRI}, O: ex("Dataset")},
		{S: d, P: ex("title"), O: Literal{Lexical: "Título", Lang: "pt-BR"}},
		{S: d, P: ex("title"), O: Literal{Lexical: "Title", Lang: "en"}},
		{S: d, P: ex("issued"), O: NewTypedLiteral("2021-04-03", IRI{Value: xsd + "date"})},
		{S: d, P: ex("count"), O: NewTypedLiteral("3", IRI{Value: xsd + "integer"})},
		{S: d, P: ex("ratio"), O: NewTypedLiteral("12.5", IRI{Value: xsd + "decimal"})},
		{S: d, P: ex("big"), O: NewTypedLiteral("1.5e3", IRI{Value: xsd + "double"})},
		{S: d, P: ex("open"), O: NewTypedLiteral("true", IRI{Value: xsd + "boolean"})},
		{S: d, P: ex("page"), O: IRI{Value: "http://example.org/base/page"}},
		{S: d, P: ex("note"), O: NewLiteral("first line\n# not a comment\nsecond \"quoted\" line")},
		{S: ex("a"), P: ex("p"), O: ex("o")},
		{S: ex("b"), P: ex("p"), O: ex("o")},
	}
	for _, triple := range want {
		if !g.Has(triple.S, triple.P, triple.O) {
			t.Errorf("missing triple %s", triple)
		}
	}
	if g.Len() != len(want) {
		t.Fatalf("expected %d triples, got %d", len(want), g.Len())
	}
}

func TestTurtleDecodeBlankNodes(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
_:g ex:name "Grupo" .
ex:d ex:group _:g ;
  ex:period [ ex:start "2020" ; ex:end "2023" ] ;
  ex:tags ( "a" "b" ) ;
  ex:empty [] .
[ ex:orphan "yes" ] .
`
	g := decodeTurtle(t, input)
	d := ex("d")

	group, ok := g.Object(d, ex("group"))
	if !ok || group != (BlankNode{ID: "g"}) {
		t.Fatalf("unexpected group node: %v", group)
	}
	if name, _ := g.Object(group, ex("name")); Lexical(name) != "Grupo" {
		t.Fatalf("unexpected group name: %v", name)
	}

	period, ok := g.Object(d, ex("period"))
	if !ok || period.Kind() != TermBlankNode {
		t.Fatalf("expected blank period node, got %v", period)
	}
	if start, _ := g.Object(period, ex("start")); Lexical(start) != "2020" {
		t.Fatalf("unexpected start: %v", start)
	}
	if end, _ := g.Object(period, ex("end")); Lexical(end) != "2023" {
		t.Fatalf("unexpected end: %v", end)
	}

	var items []string
	node, ok := g.Object(d, ex("tags"))
	for ok && node != (IRI{Value: rdfNilIRI}) {
		first, found := g.Object(node, IRI{Value: rdfFirstIRI})
		if !found {
			t.Fatalf("list node %v has no rdf:first", node)
		}
		items = append(items, Lexical(first))
		node, ok = g.Object(node, IRI{Value: rdfRestIRI})
	}
	if strings.Join(items, ",") != "a,b" {
		t.Fatalf("unexpected collection items: %v", items)
	}

	if empty, ok := g.Object(d, ex("empty")); !ok || empty.Kind() != TermBlankNode {
		t.Fatalf("expected blank node for [], got %v", empty)
	}
	orphans := g.Subjects(ex("orphan"), NewLiteral("yes"))
	if len(orphans) != 1 || orphans[0].Kind() != TermBlankNode {
		t.Fatalf("unexpected standalone property list subjects: %v", orphans)
	}
	if g.Len() != 12 {
		t.Fatalf("expected 12 triples, got %d", g.Len())
	}
}

func TestTurtleRoundTripWithPrefixes(t *testing.T) {
	xsdDate := IRI{Value: "http://www.w3.org/2001/XMLSchema#date"}
	group := BlankNode{ID: "N4f1c"}
	g := NewGraph()
	g.AddAll(
		Triple{S: ex("d"), P: IRI{Value: rdfTypeIRI}, O: IRI{Value: "http://www.w3.org/ns/dcat#Dataset"}},
		Triple{S: ex("d"), P: IRI{Value: "http://www.w3.org/2006/vcard/ns#Group"}, O: group},
		Triple{S: group, P: IRI{Value: "http://www.w3.org/2006/vcard/ns#fn"}, O: NewLiteral("linha 1\nlinha \"2\"\t✓ zero\u200bwidth")},
		Triple{S: ex("d"), P: IRI{Value: "http://purl.org/dc/terms/modified"}, O: NewTypedLiteral("2021-04-03", xsdDate)},
		Triple{S: ex("d"), P: IRI{Value: "http://purl.org/dc/terms/title"}, O: Literal{Lexical: "Presenças", Lang: "pt"}},
		Triple{S: ex("d"), P: ex("a/b"), O: IRI{Value: "https://other.org/x#frag"}},
	)

	var buf bytes.Buffer
	err := WriteGraph(context.Background(), &buf, FormatTurtle, g, WriteOptions{
		BaseIRI: "http://example.org/",
		Prefixes: map[string]string{
			"ex":    "http://example.org/",
			"dcat":  "http://www.w3.org/ns/dcat#",
			"dct":   "http://purl.org/dc/terms/",
			"vcard": "http://www.w3.org/2006/vcard/ns#",
			"xsd":   "http://www.w3.org/2001/XMLSchema#",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back := decodeTurtle(t, buf.String())
	if back.Len() != g.Len() {
		t.Fatalf("expected %d triples after round trip, got %d:\n%s", g.Len(), back.Len(), buf.String())
	}
	for _, triple := range g.All() {
		if !back.Has(triple.S, triple.P, triple.O) {
			t.Errorf("missing triple %s after round trip:\n%s", triple, buf.String())
		}
	}
}

func TestTurtleDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"missing dot", "<http://example.org/s> <http://example.org/p> <http://example.org/o>\n", 1},
		{"unknown prefix", "@prefix ex: <http://example.org/> .\n\nfoo:s ex:p ex:o .\n", 3},
		{"literal subject", "\"s\" <http://example.org/p> <http://example.org/o> .\n", 1},
		{"space in IRI", "<http://example.org/s <http://example.org/p> \"o\" .\n", 1},
		{"bad escape", "<http://example.org/s> <http://example.org/p> \"a\\qb\" .\n", 1},
		{"bad directive", "@prefix ex <http://example.org/> .\n", 1},
		{"dangling comma", "<http://example.org/s> <http://example.org/p> \"o\" , .\n", 1},
		{"content after statement", "<http://example.org/s> <http://example.org/p> \"o\" . \"x\"\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ReadGraph(context.Background(), strings.NewReader(tt.input), FormatTurtle, NewGraph())
			if err == nil {
				t.Fatal("expected error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Format != "turtle" {
				t.Fatalf("unexpected format %q", parseErr.Format)
			}
			if parseErr.Line != tt.line {
				t.Fatalf("expected line %d, got %d (%v)", tt.line, parseErr.Line, err)
			}
			if Code(err) != ErrCodeParseError {
				t.Fatalf("unexpected code %v", Code(err))
			}
		})
	}
}

func TestTurtleDecoderStopsAfterError(t *testing.T) {
	dec := NewTurtleDecoder(strings.NewReader("<http://example.org/s> <http://example.org/p> \"o\" .\nbroken .\n"))
	if _, err := dec.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, first := dec.Next()
	if first == nil {
		t.Fatal("expected error")
	}
	if _, again := dec.Next(); again != first {
		t.Fatalf("expected sticky error, got %v", again)
	}
}
