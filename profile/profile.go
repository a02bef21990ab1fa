// Package profile maps dataset records to and from DCAT graphs.
//
// Profiles are chained as ordered stages. During ingestion a Pipeline calls
// every stage's Extract in order, each stage adding fields to the shared
// record. During export it calls every stage's Synthesize in the same order,
// so later stages see (and may override) the triples of earlier ones. The
// Presenças stage is meant to run last in both directions.
package profile

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/record"
)

// Stage is one profile in a pipeline.
type Stage interface {
	// Name identifies the stage in logs, metrics and errors.
	Name() string
	// Extract reads the graph around dataset and adds fields to ds.
	Extract(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error
	// Synthesize writes the triples describing ds into g.
	Synthesize(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error
}

// Pipeline runs stages in a fixed order against a shared graph and record.
type Pipeline struct {
	stages  []Stage
	logger  *slog.Logger
	metrics *Metrics
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the pipeline logger.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics records stage runs in m.
func WithMetrics(m *Metrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline returns a pipeline running stages in the given order.
func NewPipeline(stages []Stage, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		stages: append([]Stage(nil), stages...),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}
	return names
}

// Parse runs every stage's Extract. The first failing stage stops the pass.
func (p *Pipeline) Parse(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error {
	return p.run(opExtract, g, dataset, ds, Stage.Extract)
}

// Serialize runs every stage's Synthesize. The first failing stage stops the pass.
func (p *Pipeline) Serialize(g *rdf.Graph, dataset rdf.Term, ds *record.Dataset) error {
	return p.run(opSynthesize, g, dataset, ds, Stage.Synthesize)
}

const (
	opExtract    = "extract"
	opSynthesize = "synthesize"
)

func (p *Pipeline) run(op string, g *rdf.Graph, dataset rdf.Term, ds *record.Dataset, call func(Stage, *rdf.Graph, rdf.Term, *record.Dataset) error) error {
	for _, stage := range p.stages {
		before := g.Len()
		start := time.Now()
		err := call(stage, g, dataset, ds)
		p.metrics.observe(stage.Name(), op, time.Since(start), g.Len()-before, err)
		if err != nil {
			p.logger.Error("profile stage failed",
				"stage", stage.Name(), "op", op, "dataset", rdf.Lexical(dataset), "error", err)
			return fmt.Errorf("%s: %s: %w", stage.Name(), op, err)
		}
		p.logger.Debug("profile stage done",
			"stage", stage.Name(), "op", op, "dataset", rdf.Lexical(dataset), "triples", g.Len())
	}
	p.logger.Info("profile pass complete",
		"op", op, "dataset", rdf.Lexical(dataset), "stages", len(p.stages), "triples", g.Len())
	return nil
}
