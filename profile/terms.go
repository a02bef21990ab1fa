package profile

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/record"
)

// URIRefOrLiteral turns an http(s) string that parses as a URL into an IRI
// and anything else into a plain literal.
func URIRefOrLiteral(value string) rdf.Term {
	stripped := strings.TrimSpace(value)
	if strings.HasPrefix(stripped, "http://") || strings.HasPrefix(stripped, "https://") {
		cleaned := CleanIRI(value)
		if u, err := url.Parse(cleaned.Value); err == nil && u.Host != "" && !strings.ContainsAny(cleaned.Value, "<>\"{}|\\^`") {
			return cleaned
		}
	}
	return rdf.NewLiteral(value)
}

// CleanIRI trims surrounding whitespace and escapes inner spaces.
func CleanIRI(value string) rdf.IRI {
	return rdf.IRI{Value: strings.ReplaceAll(strings.TrimSpace(value), " ", "%20")}
}

// DatasetURI returns the dataset's "uri" field, or <baseURI>/dataset/<id>.
func DatasetURI(baseURI string, ds *record.Dataset) (rdf.IRI, error) {
	if uri := ds.Text(FieldURI); uri != "" && uri != "None" {
		return CleanIRI(uri), nil
	}
	id := ds.Text(FieldID)
	if id == "" {
		return rdf.IRI{}, fmt.Errorf("%w: dataset has neither uri nor id", ErrInvalidRecord)
	}
	return CleanIRI(strings.TrimRight(baseURI, "/") + "/dataset/" + id), nil
}

// ResourceURI returns the resource's "uri" field, or
// <baseURI>/dataset/<package id>/resource/<id>. The package id falls back to
// the dataset id.
func ResourceURI(baseURI string, ds *record.Dataset, resource record.Fields) (rdf.IRI, error) {
	if uri := resource.Text(FieldURI); uri != "" && uri != "None" {
		return CleanIRI(uri), nil
	}
	packageID := resource.Text(FieldPackageID)
	if packageID == "" {
		packageID = ds.Text(FieldID)
	}
	id := resource.Text(FieldID)
	if packageID == "" || id == "" {
		return rdf.IRI{}, fmt.Errorf("%w: resource has neither uri nor package and resource ids", ErrInvalidRecord)
	}
	return CleanIRI(strings.TrimRight(baseURI, "/") + "/dataset/" + packageID + "/resource/" + id), nil
}

// localName returns the part of an IRI after the last '#', '/' or, for
// namespaces without a separator, the whole IRI.
func localName(iri rdf.IRI) string {
	if i := strings.LastIndexAny(iri.Value, "#/"); i >= 0 && i < len(iri.Value)-1 {
		return iri.Value[i+1:]
	}
	return iri.Value
}

// objectValue returns the first object of (s, p, *) as a string. Literals in
// lang are preferred; otherwise the first literal is used, and any non-literal
// object wins immediately. It returns "" when nothing matches.
func objectValue(g *rdf.Graph, s rdf.Term, p rdf.IRI, lang string) string {
	fallback := ""
	for _, o := range g.Objects(s, p) {
		lit, ok := o.(rdf.Literal)
		if !ok {
			return rdf.Lexical(o)
		}
		if lit.Lang != "" && lit.Lang == lang {
			return lit.Lexical
		}
		if fallback == "" {
			fallback = lit.Lexical
		}
	}
	return fallback
}

// objectValues returns every object of (s, p, *) as a string.
func objectValues(g *rdf.Graph, s rdf.Term, p rdf.IRI) []string {
	objects := g.Objects(s, p)
	values := make([]string, 0, len(objects))
	for _, o := range objects {
		values = append(values, rdf.Lexical(o))
	}
	return values
}

// splitTrimmed splits a "; "-joined literal into trimmed items.
func splitTrimmed(value string) []string {
	parts := strings.Split(value, ";")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
