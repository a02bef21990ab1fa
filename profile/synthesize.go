package profile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/record"
	"github.com/geoknoesis/presencas-dcat/vocab"
)

// Synthesize writes the Presenças triples for ds into g, replacing the
// contact point, period of time and issue dates written by earlier stages.
// Dates and resource identities are validated first; on error g is left
// unchanged.
func (p *Presencas) Synthesize(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error {
	if !rdf.IsNode(dataset) {
		return fmt.Errorf("%w: dataset subject must be an IRI or blank node", ErrInvalidRecord)
	}
	distributions, err := p.validate(ds)
	if err != nil {
		return err
	}

	p.removeContactPoints(g, dataset)
	p.synthesizeDescriptor(g, dataset, ds)
	if err := p.synthesizePeriod(g, dataset, ds.Text(FieldEndDate)); err != nil {
		return err
	}
	if err := AddDateTriple(g, dataset, vocab.DCTModified, ds.Text(FieldModified)); err != nil {
		return err
	}
	for i, resource := range ds.Resources {
		if resource == nil {
			continue
		}
		if err := p.synthesizeResource(g, distributions[i], resource); err != nil {
			return fmt.Errorf("resource %s: %w", distributions[i].Value, err)
		}
	}
	return nil
}

// validate checks every date the synthesis will parse and derives the
// distribution IRI of each resource, indexed like ds.Resources.
func (p *Presencas) validate(ds *record.Dataset) ([]rdf.IRI, error) {
	for _, field := range []string{FieldEndDate, FieldModified} {
		if value := ds.Text(field); value != "" {
			if _, err := DateLiteral(field, value); err != nil {
				return nil, err
			}
		}
	}
	distributions := make([]rdf.IRI, len(ds.Resources))
	for i, resource := range ds.Resources {
		if resource == nil {
			continue
		}
		ref, err := ResourceURI(p.opts.BaseURI, ds, resource)
		if err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, err)
		}
		if created := resource.Text(FieldCreated); created != "" {
			if _, err := DateLiteral(FieldCreated, created); err != nil {
				return nil, fmt.Errorf("resource %s: %w", ref.Value, err)
			}
		}
		distributions[i] = ref
	}
	return distributions, nil
}

// removeContactPoints drops vcard:Kind contact points linked from dataset
// along with their name, email and uid.
func (p *Presencas) removeContactPoints(g *rdf.Graph, dataset rdf.Term) {
	for _, contact := range g.Objects(dataset, vocab.DCATContactPoint) {
		if !g.Has(contact, vocab.RDFType, vocab.VCARDKind) {
			continue
		}
		removed := g.Remove(contact, vocab.VCARDFn, nil)
		removed += g.Remove(contact, vocab.VCARDHasEmail, nil)
		removed += g.Remove(contact, vocab.VCARDHasUID, nil)
		removed += g.Remove(contact, vocab.RDFType, vocab.VCARDKind)
		removed += g.Remove(dataset, vocab.DCATContactPoint, contact)
		p.opts.Logger.Debug("removed contact point", "contact", rdf.Lexical(contact), "triples", removed)
	}
}

// descriptorLink maps a quantidade value to the predicate linking the
// descriptor node. The second result is false for unknown values.
func descriptorLink(quantity string) (rdf.IRI, bool) {
	switch strings.ToLower(quantity) {
	case "indivíduo", "individuo":
		return vocab.VCARDIndividual, true
	case "coletivo", "grupo":
		return vocab.VCARDGroup, true
	}
	return rdf.IRI{}, false
}

func (p *Presencas) synthesizeDescriptor(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) {
	value, ok := ds.Get(FieldQuantity)
	if !ok {
		return
	}
	quantity := value.String()
	if quantity == "" {
		quantity = "individuo"
	}
	link, ok := descriptorLink(quantity)
	if !ok {
		p.opts.Logger.Debug("unknown quantidade, descriptor skipped", "quantidade", quantity)
		return
	}

	for _, previous := range []rdf.IRI{vocab.VCARDIndividual, vocab.VCARDGroup} {
		for _, node := range g.Objects(dataset, previous) {
			removeCluster(g, node, map[string]bool{})
		}
		g.Remove(dataset, previous, nil)
	}

	node := rdf.NewBlankNode()
	g.Add(rdf.Triple{S: dataset, P: link, O: node})
	if title := ds.Text(FieldTitle); title != "" {
		g.Add(rdf.Triple{S: node, P: vocab.VCARDFn, O: rdf.NewLiteral(title)})
	}
	p.addText(g, node, vocab.VCARDLocality, ds.Text(FieldCity))
	p.addText(g, node, vocab.VCARDRegion, ds.Text(FieldState))
	p.synthesizeAddress(g, node, ds)

	if start := ds.Text(FieldStartDate); start != "" {
		datatype := vocab.XSDDate
		if utf8.RuneCountInString(start) == 4 {
			datatype = vocab.XSDGYear
		}
		g.Add(rdf.Triple{S: node, P: vocab.VCARDBday, O: rdf.NewTypedLiteral(start, datatype)})
	}

	if gender := ds.Text(FieldGender); gender != "" {
		genderNode := rdf.NewBlankNode()
		g.Add(rdf.Triple{S: node, P: vocab.VCARDHasGender, O: genderNode})
		g.Add(rdf.Triple{S: genderNode, P: vocab.VCARDValue, O: rdf.NewLiteral(gender)})
		g.Add(rdf.Triple{S: genderNode, P: vocab.RDFSDatatype, O: genderClass(gender)})
	}

	if languages, ok := ds.Get(FieldLanguages); ok && !languages.IsEmpty() {
		if languages.IsList() {
			group := rdf.NewBlankNode()
			g.Add(rdf.Triple{S: node, P: vocab.VCARDHasCategory, O: group})
			for _, language := range languages.Items() {
				g.Add(rdf.Triple{S: group, P: vocab.VCARDValue, O: rdf.NewLiteral(language)})
			}
		} else {
			g.Add(rdf.Triple{S: node, P: vocab.VCARDCategory, O: rdf.NewLiteral(languages.String())})
		}
	}

	if links, ok := ds.Get(FieldLinks); ok && !links.IsEmpty() {
		if links.IsList() {
			group := rdf.NewBlankNode()
			g.Add(rdf.Triple{S: node, P: vocab.VCARDHasURL, O: group})
			for _, link := range links.Items() {
				g.Add(rdf.Triple{S: group, P: vocab.VCARDValue, O: URIRefOrLiteral(link)})
			}
			g.Add(rdf.Triple{S: group, P: vocab.RDFSDatatype, O: vocab.VCARDURL})
		} else {
			g.Add(rdf.Triple{S: node, P: vocab.VCARDURL, O: URIRefOrLiteral(links.String())})
		}
	}
}

// synthesizeAddress writes the places of activity as one address node with
// "; "-joined literals.
func (p *Presencas) synthesizeAddress(g *rdf.Graph, node rdf.Term, ds *record.Dataset) {
	parts := []struct {
		pred  rdf.IRI
		items []string
	}{
		{vocab.VCARDLocality, p.items(ds, FieldCities)},
		{vocab.VCARDRegion, p.items(ds, FieldStates)},
		{vocab.VCARDCountryName, p.items(ds, FieldCountries)},
	}

	var address rdf.Term
	for _, part := range parts {
		if len(part.items) == 0 {
			continue
		}
		if address == nil {
			address = rdf.NewBlankNode()
			g.Add(rdf.Triple{S: node, P: vocab.VCARDHasAddress, O: address})
		}
		g.Add(rdf.Triple{S: address, P: part.pred, O: rdf.NewLiteral(strings.Join(part.items, "; "))})
	}
}

func (p *Presencas) items(ds *record.Dataset, key string) []string {
	v, _ := ds.Get(key)
	return v.Items()
}

func (p *Presencas) addText(g *rdf.Graph, s rdf.Term, pred rdf.IRI, value string) {
	if value == "" {
		return
	}
	g.Add(rdf.Triple{S: s, P: pred, O: rdf.NewLiteral(value)})
}

// genderClass picks the vCard gender class by case-insensitive prefix.
func genderClass(gender string) rdf.IRI {
	lower := strings.ToLower(gender)
	switch {
	case strings.HasPrefix(lower, "cisfem"), strings.HasPrefix(lower, "transfem"):
		return vocab.VCARDFemale
	case strings.HasPrefix(lower, "cismasc"), strings.HasPrefix(lower, "transmasc"):
		return vocab.VCARDMale
	default:
		return vocab.VCARDOther
	}
}

// synthesizePeriod replaces existing period-of-time clusters with one holding
// end as its end date.
func (p *Presencas) synthesizePeriod(g *rdf.Graph, dataset rdf.Term, end string) error {
	if end == "" {
		return nil
	}

	var subject rdf.Term
	if p.opts.PeriodScope == PeriodScopeDataset {
		subject = dataset
	}
	for _, t := range g.Triples(subject, vocab.DCTTemporal, nil) {
		if t.S != dataset {
			p.opts.Logger.Warn("removing period of time linked from another subject",
				"subject", rdf.Lexical(t.S), "dataset", rdf.Lexical(dataset))
		}
		g.RemoveSubject(t.O)
		g.Remove(t.S, t.P, t.O)
	}

	period := rdf.NewBlankNode()
	g.Add(rdf.Triple{S: period, P: vocab.RDFType, O: vocab.DCTPeriodOfTime})
	if err := AddDateTriple(g, period, vocab.DCATEndDate, end); err != nil {
		g.RemoveSubject(period)
		return err
	}
	g.Add(rdf.Triple{S: dataset, P: vocab.DCTTemporal, O: period})
	return nil
}

func (p *Presencas) synthesizeResource(g *rdf.Graph, distribution rdf.IRI, resource record.Fields) error {
	if source := resource.Text(FieldSource); source != "" {
		g.Add(rdf.Triple{S: distribution, P: vocab.FOAFPage, O: URIRefOrLiteral(source)})
	}

	length, area := resource.Text(FieldLength), resource.Text(FieldArea)
	if length != "" || area != "" {
		spatial := rdf.NewBlankNode()
		switch {
		case length != "":
			if f, ok := parseLength(length); ok {
				g.Add(rdf.Triple{S: spatial, P: vocab.GSPHasMetricLength,
					O: rdf.NewTypedLiteral(strconv.FormatFloat(f, 'f', -1, 64), vocab.XSDDouble)})
			} else {
				p.opts.Logger.Debug("non-numeric or non-finite comprimento kept as raw value", "comprimento", length)
				g.Add(rdf.Triple{S: spatial, P: vocab.RDFType, O: vocab.GSPHasLength})
				g.Add(rdf.Triple{S: spatial, P: vocab.QUDTValue, O: rdf.NewLiteral(length)})
			}
		default:
			g.Add(rdf.Triple{S: spatial, P: vocab.RDFType, O: vocab.GSPHasArea})
			g.Add(rdf.Triple{S: spatial, P: vocab.QUDTValue, O: rdf.NewLiteral(area)})
		}
		g.Add(rdf.Triple{S: distribution, P: vocab.GSPSpatialObject, O: spatial})
	}

	if created := resource.Text(FieldCreated); created != "" {
		g.Remove(distribution, vocab.DCTIssued, nil)
		if err := AddDateTriple(g, distribution, vocab.DCTIssued, created); err != nil {
			return err
		}
	}

	if technique := resource.Text(FieldTechnique); technique != "" {
		work := rdf.NewBlankNode()
		g.Add(rdf.Triple{S: work, P: vocab.RDFType, O: vocab.VRATechniqueSet})
		g.Add(rdf.Triple{S: work, P: vocab.VRADisplay, O: rdf.NewLiteral(technique)})
		g.Add(rdf.Triple{S: distribution, P: vocab.VRAWork, O: work})
	}
	return nil
}

// removeCluster deletes node's triples and, recursively, those of the blank
// nodes it links to. IRI nodes are left alone.
func removeCluster(g *rdf.Graph, node rdf.Term, seen map[string]bool) {
	blank, ok := node.(rdf.BlankNode)
	if !ok || seen[blank.ID] {
		return
	}
	seen[blank.ID] = true
	for _, child := range g.Objects(blank, rdf.IRI{}) {
		removeCluster(g, child, seen)
	}
	g.RemoveSubject(blank)
}
