package profile

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/vocab"
)

// RecordDateLayout is the record-facing date format (DD/MM/YYYY).
const RecordDateLayout = "02/01/2006"

var (
	yearPattern      = regexp.MustCompile(`^\d{4}$`)
	yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// DD.MM.YYYY and DD-MM-YYYY, optionally followed by a time of day.
	dayFirstPattern  = regexp.MustCompile(`^(\d{1,2})([.-])(\d{1,2})([.-])(\d{4})(\s.*)?$`)
)

var errEmptyDate = errors.New("empty date")

// parseDayFirst parses a date permissively, reading ambiguous numeric dates
// day first ("03/04/2021", "03.04.2021" and "03-04-2021" are 3 April 2021).
// Dates that only make sense month first ("12/25/2020") are swapped.
func parseDayFirst(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyDate
	}
	// dateparse only honours day-first order for slash-separated dates.
	if m := dayFirstPattern.FindStringSubmatch(value); m != nil && m[2] == m[4] {
		value = m[1] + "/" + m[3] + "/" + m[5] + m[6]
	}
	return dateparse.ParseAny(value,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true))
}

// FormatRecordDate parses value day first and formats it as DD/MM/YYYY.
// The field name is only used for error reporting.
func FormatRecordDate(field, value string) (string, error) {
	t, err := parseDayFirst(value)
	if err != nil {
		return "", &DateError{Field: field, Value: value, Err: err}
	}
	return t.Format(RecordDateLayout), nil
}

// DateLiteral converts a record date into a typed literal: a bare year
// becomes xsd:gYear, YYYY-MM becomes xsd:gYearMonth, a date without time of
// day becomes xsd:date and anything else xsd:dateTime.
func DateLiteral(field, value string) (rdf.Literal, error) {
	switch {
	case yearPattern.MatchString(value):
		return rdf.NewTypedLiteral(value, vocab.XSDGYear), nil
	case yearMonthPattern.MatchString(value):
		return rdf.NewTypedLiteral(value, vocab.XSDGYearMonth), nil
	case isoDatePattern.MatchString(value):
		return rdf.NewTypedLiteral(value, vocab.XSDDate), nil
	}
	t, err := parseDayFirst(value)
	if err != nil {
		return rdf.Literal{}, &DateError{Field: field, Value: value, Err: err}
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return rdf.NewTypedLiteral(t.Format("2006-01-02"), vocab.XSDDate), nil
	}
	return rdf.NewTypedLiteral(t.Format("2006-01-02T15:04:05"), vocab.XSDDateTime), nil
}

// AddDateTriple writes (s, p, date) using DateLiteral. An empty value is a
// no-op. The graph is left untouched when the value does not parse.
func AddDateTriple(g *rdf.Graph, s rdf.Term, p rdf.IRI, value string) error {
	if value == "" {
		return nil
	}
	lit, err := DateLiteral(localName(p), value)
	if err != nil {
		return err
	}
	g.Add(rdf.Triple{S: s, P: p, O: lit})
	return nil
}
