package rdf

import "testing"

var (
	exS  = IRI{Value: "http://example.org/s"}
	exS2 = IRI{Value: "http://example.org/s2"}
	exP  = IRI{Value: "http://example.org/p"}
	exQ  = IRI{Value: "http://example.org/q"}
)

func TestGraphAddIsSet(t *testing.T) {
	g := NewGraph()
	triple := Triple{S: exS, P: exP, O: NewLiteral("v")}
	if !g.Add(triple) {
		t.Fatal("expected first add to report a new triple")
	}
	if g.Add(triple) {
		t.Fatal("expected duplicate add to be a no-op")
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", g.Len())
	}
	if g.Add(Triple{S: exS, P: exP}) {
		t.Fatal("expected incomplete triple to be ignored")
	}
}

func TestGraphPatternQueries(t *testing.T) {
	g := NewGraph()
	b := BlankNode{ID: "b1"}
	g.AddAll(
		Triple{S: exS, P: exP, O: NewLiteral("a")},
		Triple{S: exS, P: exP, O: NewLiteral("b")},
		Triple{S: exS, P: exQ, O: b},
		Triple{S: exS2, P: exQ, O: b},
		Triple{S: b, P: exP, O: NewLiteral("c")},
	)

	objects := g.Objects(exS, exP)
	if len(objects) != 2 || Lexical(objects[0]) != "a" || Lexical(objects[1]) != "b" {
		t.Fatalf("unexpected objects in insertion order: %v", objects)
	}
	if o, ok := g.Object(exS, exQ); !ok || o != Term(b) {
		t.Fatalf("unexpected first object: %v %v", o, ok)
	}
	if _, ok := g.Object(exS2, exP); ok {
		t.Fatal("expected no object for missing pattern")
	}
	subjects := g.Subjects(exQ, b)
	if len(subjects) != 2 || subjects[0] != Term(exS) || subjects[1] != Term(exS2) {
		t.Fatalf("unexpected subjects: %v", subjects)
	}
	if n := len(g.Triples(nil, IRI{}, nil)); n != 5 {
		t.Fatalf("expected wildcard to match all 5 triples, got %d", n)
	}
	if n := len(g.Triples(nil, exP, nil)); n != 3 {
		t.Fatalf("expected 3 triples with predicate p, got %d", n)
	}
	if !g.Has(b, exP, NewLiteral("c")) {
		t.Fatal("expected exact match")
	}
	if g.Has(b, exP, NewTypedLiteral("c", IRI{Value: "http://example.org/dt"})) {
		t.Fatal("typed literal must not match a plain literal")
	}
}

func TestGraphRemove(t *testing.T) {
	g := NewGraph()
	g.AddAll(
		Triple{S: exS, P: exP, O: NewLiteral("a")},
		Triple{S: exS, P: exP, O: NewLiteral("b")},
		Triple{S: exS, P: exQ, O: NewLiteral("c")},
		Triple{S: exS2, P: exP, O: NewLiteral("d")},
	)

	if n := g.Remove(exS, exP, NewLiteral("a")); n != 1 {
		t.Fatalf("expected exact removal of 1 triple, got %d", n)
	}
	if n := g.Remove(exS, exP, nil); n != 1 {
		t.Fatalf("expected wildcard removal of 1 triple, got %d", n)
	}
	if n := g.Remove(exS, exP, nil); n != 0 {
		t.Fatalf("expected nothing left to remove, got %d", n)
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 triples left, got %d", g.Len())
	}
	if n := g.RemoveSubject(exS2); n != 1 {
		t.Fatalf("expected subject removal of 1 triple, got %d", n)
	}
	all := g.All()
	if len(all) != 1 || Lexical(all[0].O) != "c" {
		t.Fatalf("unexpected remaining triples: %v", all)
	}
}

func TestGraphReAddAfterRemoveKeepsOrder(t *testing.T) {
	g := NewGraph()
	first := Triple{S: exS, P: exP, O: NewLiteral("first")}
	second := Triple{S: exS, P: exP, O: NewLiteral("second")}
	g.AddAll(first, second)
	g.Remove(first.S, first.P, first.O)
	if !g.Add(first) {
		t.Fatal("expected removed triple to be addable again")
	}
	objects := g.Objects(exS, exP)
	if len(objects) != 2 || Lexical(objects[0]) != "second" || Lexical(objects[1]) != "first" {
		t.Fatalf("unexpected order after re-add: %v", objects)
	}
}

func TestGraphCompaction(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 50; i++ {
		g.Add(Triple{S: BlankNode{ID: "b" + string(rune('a'+i%26)) + string(rune('a'+i/26))}, P: exP, O: NewLiteral("v")})
	}
	g.Remove(nil, exP, nil)
	if g.Len() != 0 || len(g.order) != 0 || len(g.subjects) != 0 {
		t.Fatalf("expected compacted empty graph, got len=%d order=%d subjects=%d", g.Len(), len(g.order), len(g.subjects))
	}
	g.Add(Triple{S: exS, P: exP, O: NewLiteral("v")})
	if g.Len() != 1 || len(g.Objects(exS, exP)) != 1 {
		t.Fatal("expected graph to be usable after compaction")
	}
}
