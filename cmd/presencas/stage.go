package main

import (
	"github.com/geoknoesis/presencas-dcat/profile"
	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/record"
	"github.com/geoknoesis/presencas-dcat/vocab"
)

// coreStage writes and reads the minimal DCAT skeleton the Presenças stage
// builds on: the dataset type, title and identifier, and one dcat:distribution
// link per resource. It runs before the Presenças stage.
type coreStage struct {
	baseURI string
}

func (c coreStage) Name() string { return "dcat_core" }

func (c coreStage) Extract(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error {
	if ds.Fields == nil {
		ds.Fields = record.Fields{}
	}
	if _, ok := ds.Fields[profile.FieldTitle]; !ok {
		if title, ok := g.Object(dataset, vocab.DCTTitle); ok {
			ds.Set(profile.FieldTitle, record.Text(rdf.Lexical(title)))
		}
	}
	if _, ok := ds.Fields[profile.FieldID]; !ok {
		if id, ok := g.Object(dataset, vocab.DCTIdentifier); ok {
			ds.Set(profile.FieldID, record.Text(rdf.Lexical(id)))
		}
	}

	known := make(map[string]bool, len(ds.Resources))
	for _, resource := range ds.Resources {
		known[resource.Text(profile.FieldDistributionRef)] = true
	}
	for _, distribution := range g.Objects(dataset, vocab.DCATDistribution) {
		ref := rdf.Lexical(distribution)
		if known[ref] {
			continue
		}
		known[ref] = true
		ds.Resources = append(ds.Resources, record.Fields{profile.FieldDistributionRef: record.Text(ref)})
	}
	return nil
}

func (c coreStage) Synthesize(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error {
	g.Add(rdf.Triple{S: dataset, P: vocab.RDFType, O: vocab.DCATDataset})
	if title := ds.Text(profile.FieldTitle); title != "" {
		g.Remove(dataset, vocab.DCTTitle, nil)
		g.Add(rdf.Triple{S: dataset, P: vocab.DCTTitle, O: rdf.NewLiteral(title)})
	}
	if id := ds.Text(profile.FieldID); id != "" {
		g.Remove(dataset, vocab.DCTIdentifier, nil)
		g.Add(rdf.Triple{S: dataset, P: vocab.DCTIdentifier, O: rdf.NewLiteral(id)})
	}
	for _, resource := range ds.Resources {
		if resource == nil {
			continue
		}
		ref, err := profile.ResourceURI(c.baseURI, ds, resource)
		if err != nil {
			return err
		}
		g.Add(rdf.Triple{S: dataset, P: vocab.DCATDistribution, O: ref})
		g.Add(rdf.Triple{S: ref, P: vocab.RDFType, O: vocab.DCATDistributionClass})
	}
	return nil
}
