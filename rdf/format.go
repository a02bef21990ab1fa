package rdf

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies RDF serialization formats.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl":
		return FormatTurtle, true
	case "ntriples", "nt":
		return FormatNTriples, true
	case "nquads", "nq":
		return FormatNQuads, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// FormatFromPath infers a format from a filename extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return FormatTurtle, nil
	case ".nt":
		return FormatNTriples, nil
	case ".nq":
		return FormatNQuads, nil
	case ".jsonld", ".json":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("unknown format for path: %s", path)
	}
}
