package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/record"
	"github.com/geoknoesis/presencas-dcat/vocab"
)

// Extract adds the Presenças fields found around dataset to ds. Existing
// fields are only overwritten by keys this stage owns. Missing optional
// branches are skipped; a malformed date, or a missing issue date on a
// matched distribution when RequireIssued is set, is returned as an error.
func (p *Presencas) Extract(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error {
	if ds.Fields == nil {
		ds.Fields = record.Fields{}
	}
	if err := p.extractDates(g, dataset, ds.Fields); err != nil {
		return err
	}
	p.extractDescriptor(g, dataset, ds.Fields)
	return p.extractResources(g, dataset, ds)
}

func (p *Presencas) extractDates(g *rdf.Graph, dataset rdf.Term, fields record.Fields) error {
	if modified := p.value(g, dataset, vocab.DCTModified); modified != "" {
		formatted, err := FormatRecordDate(FieldLastUpdate, modified)
		if err != nil {
			return err
		}
		fields.SetText(FieldLastUpdate, formatted)
	}

	for _, period := range g.Objects(dataset, vocab.DCTTemporal) {
		for _, end := range g.Objects(period, vocab.DCATEndDate) {
			fields.SetText(FieldEndDate, rdf.Lexical(end))
		}
	}
	return nil
}

// extractDescriptor reads the individual/collective descriptor node and its
// sub-fields. Individual takes precedence over Group.
func (p *Presencas) extractDescriptor(g *rdf.Graph, dataset rdf.Term, fields record.Fields) {
	var link rdf.IRI
	switch {
	case g.Has(dataset, vocab.VCARDIndividual, nil):
		fields.SetText(FieldQuantity, QuantityIndividual)
		link = vocab.VCARDIndividual
	case g.Has(dataset, vocab.VCARDGroup, nil):
		fields.SetText(FieldQuantity, QuantityCollective)
		link = vocab.VCARDGroup
	default:
		p.opts.Logger.Debug("no descriptor node", "dataset", rdf.Lexical(dataset))
		return
	}

	for _, node := range g.Objects(dataset, link) {
		if city := p.value(g, node, vocab.VCARDLocality); city != "" {
			fields.SetText(FieldCity, city)
		}
		if state := p.value(g, node, vocab.VCARDRegion); state != "" {
			fields.SetText(FieldState, state)
		}

		for _, address := range g.Objects(node, vocab.VCARDHasAddress) {
			p.setSplit(g, address, vocab.VCARDLocality, fields, FieldCities)
			p.setSplit(g, address, vocab.VCARDRegion, fields, FieldStates)
			p.setSplit(g, address, vocab.VCARDCountryName, fields, FieldCountries)
		}

		if start := p.value(g, node, vocab.VCARDBday); start != "" {
			fields.SetText(FieldStartDate, start)
		}

		for _, gender := range g.Objects(node, vocab.VCARDHasGender) {
			if value := p.value(g, gender, vocab.VCARDValue); value != "" {
				fields.SetText(FieldGender, value)
			}
		}

		p.setSingleOrGroup(g, node, vocab.VCARDCategory, vocab.VCARDHasCategory, fields, FieldLanguages)
		p.setSingleOrGroup(g, node, vocab.VCARDURL, vocab.VCARDHasURL, fields, FieldLinks)
	}
}

// setSplit stores the ';'-separated literal of (node, pred) as a list.
func (p *Presencas) setSplit(g *rdf.Graph, node rdf.Term, pred rdf.IRI, fields record.Fields, key string) {
	value := p.value(g, node, pred)
	if value == "" {
		return
	}
	fields.SetList(key, splitTrimmed(value)...)
}

// setSingleOrGroup prefers the single-valued predicate and falls back to the
// values of every group node linked through groupPred.
func (p *Presencas) setSingleOrGroup(g *rdf.Graph, node rdf.Term, single, groupPred rdf.IRI, fields record.Fields, key string) {
	if value := p.value(g, node, single); value != "" {
		fields.SetList(key, value)
		return
	}
	for _, group := range g.Objects(node, groupPred) {
		if values := objectValues(g, group, vocab.VCARDValue); len(values) > 0 {
			fields.SetList(key, values...)
		}
	}
}

func (p *Presencas) extractResources(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error {
	for _, distribution := range g.Objects(dataset, vocab.DCATDistribution) {
		ref := rdf.Lexical(distribution)
		for _, resource := range ds.Resources {
			if resource == nil || resource.Text(FieldDistributionRef) != ref {
				continue
			}
			if err := p.extractResource(g, distribution, resource); err != nil {
				return fmt.Errorf("distribution %s: %w", ref, err)
			}
		}
	}
	return nil
}

func (p *Presencas) extractResource(g *rdf.Graph, distribution rdf.Term, resource record.Fields) error {
	for _, spatial := range g.Objects(distribution, vocab.GSPSpatialObject) {
		for _, typ := range g.Objects(spatial, vocab.RDFType) {
			value := p.value(g, spatial, vocab.QUDTValue)
			if value == "" {
				continue
			}
			if iri, ok := typ.(rdf.IRI); ok && iri == vocab.GSPHasArea {
				resource.SetText(FieldArea, value)
			} else {
				resource.SetText(FieldLength, value)
			}
		}
		for _, length := range g.Objects(spatial, vocab.GSPHasMetricLength) {
			resource.SetText(FieldLength, formatLength(rdf.Lexical(length)))
		}
	}

	issued := p.value(g, distribution, vocab.DCTIssued)
	switch {
	case issued != "":
		created, err := FormatRecordDate(FieldCreated, issued)
		if err != nil {
			return err
		}
		resource.SetText(FieldCreated, created)
	case p.opts.RequireIssued:
		return &DateError{Field: FieldCreated, Value: issued, Err: ErrMissingIssued}
	default:
		p.opts.Logger.Debug("distribution without issue date", "distribution", rdf.Lexical(distribution))
	}

	if source := p.value(g, distribution, vocab.FOAFPage); source != "" {
		resource.SetText(FieldSource, source)
	}

	for _, work := range g.Objects(distribution, vocab.VRAWork) {
		if !g.Has(work, vocab.RDFType, nil) {
			continue
		}
		if technique := p.value(g, work, vocab.VRADisplay); technique != "" {
			resource.SetText(FieldTechnique, technique)
		}
	}
	return nil
}

// formatLength normalizes a metric length literal through float parsing.
// Unparseable lexical forms are kept as they are.
func formatLength(lexical string) string {
	f, ok := parseLength(lexical)
	if !ok {
		return lexical
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseLength reads a finite length. Infinities, NaN and out of range values
// such as "1e400" have no decimal form and are rejected.
func parseLength(lexical string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(lexical), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func (p *Presencas) value(g *rdf.Graph, s rdf.Term, pred rdf.IRI) string {
	return objectValue(g, s, pred, p.opts.Language)
}
