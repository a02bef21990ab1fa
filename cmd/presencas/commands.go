package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/presencas-dcat/profile"
	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/record"
	"github.com/geoknoesis/presencas-dcat/vocab"
)

func parseCmd(g *globals) *cobra.Command {
	var (
		format     string
		recordPath string
		subject    string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "parse <graph-file>",
		Short: "Extract a dataset record from a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}

			graph, err := readGraphFile(cmd, args[0], format)
			if err != nil {
				return err
			}

			ds := record.NewDataset()
			if recordPath != "" {
				if ds, err = readRecordFile(recordPath); err != nil {
					return err
				}
			}

			dataset, err := resolveSubject(graph, subject, e.cfg.Profile.BaseURI, ds)
			if err != nil {
				return err
			}
			e.logger.Debug("parsing dataset", "subject", rdf.Lexical(dataset), "triples", graph.Len())
			if len(graph.Triples(dataset, rdf.IRI{}, nil)) == 0 {
				e.warn("graph has no triples about %s", rdf.Lexical(dataset))
			}

			if err := e.pipeline.Parse(graph, dataset, ds); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "json":
				data, err := json.MarshalIndent(ds, "", "  ")
				if err != nil {
					return fmt.Errorf("encode record: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "table":
				fmt.Fprint(out, formatRecord(ds))
			default:
				return fmt.Errorf("unknown output %q (json or table)", output)
			}
			e.printMetrics()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Graph format (turtle, ntriples, nquads, jsonld); inferred from the file extension by default")
	cmd.Flags().StringVarP(&recordPath, "record", "r", "", "Record JSON the extracted fields are added to")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Dataset IRI; derived from the record or the graph by default")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output style (json, table)")

	return cmd
}

func serializeCmd(g *globals) *cobra.Command {
	var (
		graphPath   string
		graphFormat string
		format      string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "serialize <record-file>",
		Short: "Write the graph describing a dataset record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if format != "" {
				e.cfg.Output.Format = format
			}
			outFormat, ok := rdf.ParseFormat(e.cfg.Output.Format)
			if !ok {
				return fmt.Errorf("%w: %s", rdf.ErrUnsupportedFormat, e.cfg.Output.Format)
			}

			ds, err := readRecordFile(args[0])
			if err != nil {
				return err
			}
			dataset, err := profile.DatasetURI(e.cfg.Profile.BaseURI, ds)
			if err != nil {
				return err
			}

			graph := rdf.NewGraph()
			if graphPath != "" {
				if graph, err = readGraphFile(cmd, graphPath, graphFormat); err != nil {
					return err
				}
			}
			if err := e.pipeline.Serialize(graph, dataset, ds); err != nil {
				return err
			}

			opts := rdf.WriteOptions{Prefixes: e.cfg.Output.PrefixMap(vocab.Prefixes)}
			if err := writeGraphFile(cmd, outPath, outFormat, graph, opts); err != nil {
				return err
			}
			e.logger.Info("graph written", "subject", dataset.Value, "format", outFormat, "triples", graph.Len())
			e.printMetrics()
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "Existing graph to update")
	cmd.Flags().StringVar(&graphFormat, "graph-format", "", "Format of --graph; inferred from the file extension by default")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func readGraphFile(cmd *cobra.Command, path, format string) (*rdf.Graph, error) {
	var (
		f   rdf.Format
		err error
	)
	if format != "" {
		var ok bool
		if f, ok = rdf.ParseFormat(format); !ok {
			return nil, fmt.Errorf("%w: %s", rdf.ErrUnsupportedFormat, format)
		}
	} else if f, err = rdf.FormatFromPath(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer file.Close()

	g := rdf.NewGraph()
	if err := rdf.ReadGraph(cmd.Context(), file, f, g); err != nil {
		return nil, fmt.Errorf("read graph %s: %w", path, err)
	}
	return g, nil
}

// writeGraphFile writes g to path, or to stdout when path is empty. Errors
// from closing the file are returned.
func writeGraphFile(cmd *cobra.Command, path string, format rdf.Format, g *rdf.Graph, opts rdf.WriteOptions) error {
	var out io.Writer = cmd.OutOrStdout()
	var f *os.File
	if path != "" {
		var err error
		if f, err = os.Create(path); err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		out = f
	}

	if err := rdf.WriteGraph(cmd.Context(), out, format, g, opts); err != nil {
		if f != nil {
			f.Close()
		}
		return fmt.Errorf("write graph: %w", err)
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}
	return nil
}

func readRecordFile(path string) (*record.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	ds := record.NewDataset()
	if err := json.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", path, err)
	}
	return ds, nil
}

var errNoSubject = errors.New("dataset subject unknown: pass --subject or a record with an id")

// resolveSubject picks the dataset node: the explicit IRI, the one derived
// from the record, or the only dcat:Dataset in the graph.
func resolveSubject(g *rdf.Graph, subject, baseURI string, ds *record.Dataset) (rdf.Term, error) {
	if subject != "" {
		return profile.CleanIRI(subject), nil
	}
	if uri, err := profile.DatasetURI(baseURI, ds); err == nil {
		return uri, nil
	}
	candidates := g.Subjects(vocab.RDFType, vocab.DCATDataset)
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if len(candidates) > 1 {
		return nil, fmt.Errorf("%w (graph has %d datasets)", errNoSubject, len(candidates))
	}
	return nil, errNoSubject
}
