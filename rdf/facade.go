package rdf

import (
	"context"
	"io"
)

// WriteOptions configures graph serialization.
type WriteOptions struct {
	// Prefixes abbreviate IRIs in Turtle and compact JSON-LD.
	Prefixes map[string]string
	// BaseIRI is written as @base (Turtle) or used as the JSON-LD base.
	BaseIRI string
}

// ReadGraph decodes input in the given format and adds every triple to g.
func ReadGraph(ctx context.Context, r io.Reader, format Format, g *Graph) error {
	switch format {
	case FormatNTriples, FormatNQuads, FormatTurtle:
		var dec TripleDecoder
		switch format {
		case FormatNQuads:
			dec = newNQuadsDecoder(r)
		case FormatTurtle:
			dec = NewTurtleDecoder(r)
		default:
			dec = NewNTriplesDecoder(r)
		}
		defer dec.Close()
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := dec.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			g.Add(t)
		}
	case FormatJSONLD:
		triples, err := DecodeJSONLD(ctx, r, JSONLDOptions{})
		if err != nil {
			return err
		}
		g.AddAll(triples...)
		return nil
	default:
		return ErrUnsupportedFormat
	}
}

// WriteGraph serializes every triple of g in the given format.
func WriteGraph(ctx context.Context, w io.Writer, format Format, g *Graph, opts WriteOptions) error {
	triples := g.All()
	var enc TripleEncoder
	switch format {
	case FormatNTriples, FormatNQuads:
		enc = NewNTriplesEncoder(w)
	case FormatTurtle:
		enc = NewTurtleEncoder(w, TurtleEncodeOptions{Prefixes: opts.Prefixes, BaseIRI: opts.BaseIRI})
	case FormatJSONLD:
		return EncodeJSONLD(ctx, w, triples, JSONLDOptions{BaseIRI: opts.BaseIRI, Prefixes: opts.Prefixes, Indent: "  "})
	default:
		return ErrUnsupportedFormat
	}
	for _, t := range triples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Write(t); err != nil {
			return err
		}
	}
	return enc.Close()
}
