package rdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

const nquadsMediaType = "application/n-quads"

// JSONLDOptions configures JSON-LD processing.
type JSONLDOptions struct {
	// BaseIRI resolves relative IRIs.
	BaseIRI string
	// Prefixes become the compaction context on output. An empty map
	// produces expanded JSON-LD.
	Prefixes map[string]string
	// Indent pretty-prints the output when set.
	Indent string
}

func newJSONGoldOptions(opts JSONLDOptions) *ld.JsonLdOptions {
	goldOpts := ld.NewJsonLdOptions(opts.BaseIRI)
	goldOpts.Format = nquadsMediaType
	return goldOpts
}

// DecodeJSONLD reads a JSON-LD document and returns the triples of its default
// and named graphs. Graph names are dropped.
func DecodeJSONLD(ctx context.Context, r io.Reader, opts JSONLDOptions) ([]Triple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, wrapParseErrorWithPosition("jsonld", "", 0, 0, -1, err)
	}
	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(doc, newJSONGoldOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONLD, err)
	}
	nquads, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected ToRDF result %T", ErrJSONLD, result)
	}

	dec := newNQuadsDecoder(strings.NewReader(nquads))
	defer dec.Close()
	var triples []Triple
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := dec.Next()
		if err == io.EOF {
			return triples, nil
		}
		if err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
}

// EncodeJSONLD writes the triples as a JSON-LD document, compacted against
// opts.Prefixes when any are given.
func EncodeJSONLD(ctx context.Context, w io.Writer, triples []Triple, opts JSONLDOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var nquads bytes.Buffer
	enc := NewNTriplesEncoder(&nquads)
	for _, t := range triples {
		if err := enc.Write(t); err != nil {
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := newJSONGoldOptions(opts)
	doc, err := proc.FromRDF(nquads.String(), goldOpts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJSONLD, err)
	}
	var out interface{} = doc
	if len(opts.Prefixes) > 0 {
		jsonldContext := make(map[string]interface{}, len(opts.Prefixes))
		for prefix, ns := range opts.Prefixes {
			jsonldContext[prefix] = ns
		}
		compacted, err := proc.Compact(doc, map[string]interface{}{"@context": jsonldContext}, ld.NewJsonLdOptions(opts.BaseIRI))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrJSONLD, err)
		}
		out = compacted
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if opts.Indent != "" {
		encoder.SetIndent("", opts.Indent)
	}
	return encoder.Encode(out)
}
