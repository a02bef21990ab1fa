package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/geoknoesis/presencas-dcat/record"
)

// formatRecord renders the dataset fields and each resource as markdown
// tables. List values are joined with "; ".
func formatRecord(ds *record.Dataset) string {
	var b strings.Builder
	b.WriteString("## dataset\n\n")
	writeFieldsTable(&b, ds.Fields)
	for i, resource := range ds.Resources {
		fmt.Fprintf(&b, "\n## resource %d\n\n", i)
		writeFieldsTable(&b, resource)
	}
	return b.String()
}

func writeFieldsTable(b *strings.Builder, fields record.Fields) {
	if len(fields) == 0 {
		b.WriteString("_No fields_\n")
		return
	}

	rows := make([][]string, 0, len(fields))
	for _, key := range fields.Keys() {
		rows = append(rows, []string{key, fields[key].String()})
	}
	writeTable(b, []string{"field", "value"}, rows)
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

// printMetrics writes the pipeline counters gathered during the command as
// a markdown table on stderr.
func (e *env) printMetrics() {
	if !e.metrics {
		return
	}
	families, err := e.registry.Gather()
	if err != nil {
		e.warn("gather metrics: %v", err)
		return
	}

	var rows [][]string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, pair := range m.GetLabel() {
				labels = append(labels, pair.GetName()+"="+pair.GetValue())
			}
			sort.Strings(labels)

			var value string
			switch {
			case m.GetCounter() != nil:
				value = fmt.Sprintf("%g", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				value = fmt.Sprintf("%d runs, %gs", m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			default:
				continue
			}
			rows = append(rows, []string{family.GetName(), strings.Join(labels, ","), value})
		}
	}

	var b strings.Builder
	writeTable(&b, []string{"metric", "labels", "value"}, rows)
	fmt.Fprint(e.stderr, b.String())
}
