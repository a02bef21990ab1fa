// Package rdf provides a compact RDF model, an in-memory triple store and the
// serializers used by the Presenças DCAT profile.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// The model is deliberately small:
//   - Terms: IRI, BlankNode and Literal, all implementing Term.
//   - Graph: a set of triples queryable by partial pattern. Nil subjects or
//     objects and zero predicates act as wildcards.
//   - NewBlankNode mints anonymous nodes with opaque, never-reused identifiers.
//
// Example (walking a graph):
//
//	g := rdf.NewGraph()
//	if err := rdf.ReadGraph(ctx, r, rdf.FormatNTriples, g); err != nil {
//	    // handle error
//	}
//	for _, o := range g.Objects(dataset, rdf.IRI{Value: "http://purl.org/dc/terms/temporal"}) {
//	    // visit each period node
//	}
//
// Supported formats:
//   - Read: Turtle, N-Triples, N-Quads (graph names dropped), JSON-LD
//   - Write: Turtle, N-Triples, JSON-LD
//
// JSON-LD goes through github.com/piprate/json-gold via an N-Quads exchange.
// For unsupported formats, ReadGraph and WriteGraph return ErrUnsupportedFormat.
package rdf
