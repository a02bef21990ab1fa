package profile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/presencas-dcat/rdf"
	"github.com/geoknoesis/presencas-dcat/record"
	"github.com/geoknoesis/presencas-dcat/vocab"
)

const testBaseURI = "https://presencas.example.org"

var (
	datasetD1 = rdf.IRI{Value: testBaseURI + "/dataset/d1"}
	resource1 = testBaseURI + "/dataset/d1/resource/r1"
	resource2 = testBaseURI + "/dataset/d1/resource/r2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProfile(opts ...Option) *Presencas {
	base := []Option{WithLogger(discardLogger()), WithBaseURI(testBaseURI)}
	return New(append(base, opts...)...)
}

func loadGraph(t *testing.T, name string) *rdf.Graph {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()
	g := rdf.NewGraph()
	require.NoError(t, rdf.ReadGraph(context.Background(), f, rdf.FormatNTriples, g))
	return g
}

func diffFields(t *testing.T, want, got record.Fields) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(record.Value{})); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract(t *testing.T) {
	g := loadGraph(t, "presencas.nt")
	ds := record.NewDataset()
	ds.Set(FieldTitle, record.Text("kept from base"))
	ds.Resources = []record.Fields{
		{FieldDistributionRef: record.Text(resource1)},
		{FieldDistributionRef: record.Text(resource2)},
		{FieldDistributionRef: record.Text("https://elsewhere.example.org/r")},
	}

	require.NoError(t, newTestProfile().Extract(g, datasetD1, ds))

	diffFields(t, record.Fields{
		FieldTitle:      record.Text("kept from base"),
		FieldLastUpdate: record.Text("03/04/2021"),
		FieldEndDate:    record.Text("2021-06-30"),
		FieldQuantity:   record.Text(QuantityIndividual),
		FieldCity:       record.Text("Olinda city"),
		FieldState:      record.Text("PE"),
		FieldCities:     record.List("Recife", "Olinda", "Paulista"),
		FieldCountries:  record.List("Brasil"),
		FieldStartDate:  record.Text("1990-05-10"),
		FieldGender:     record.Text("Não binário"),
		FieldLanguages:  record.List("Música"),
		FieldLinks:      record.List("https://maria.example.org", "@maria"),
	}, ds.Fields)

	diffFields(t, record.Fields{
		FieldDistributionRef: record.Text(resource1),
		FieldLength:          record.Text("12.5"),
		FieldCreated:         record.Text("25/12/2020"),
		FieldSource:          record.Text("https://fonte.example.org/r1"),
		FieldTechnique:       record.Text("Xilogravura"),
	}, ds.Resources[0])

	diffFields(t, record.Fields{
		FieldDistributionRef: record.Text(resource2),
		FieldArea:            record.Text("30 m2"),
		FieldCreated:         record.Text("02/01/2020"),
	}, ds.Resources[1])

	assert.Len(t, ds.Resources[2], 1, "unmatched resource must be left alone")
}

func TestExtractPreferredLanguage(t *testing.T) {
	g := loadGraph(t, "presencas.nt")
	ds := record.NewDataset()
	require.NoError(t, newTestProfile(WithLanguage("pt")).Extract(g, datasetD1, ds))
	assert.Equal(t, "Olinda", ds.Text(FieldCity))
}

func TestExtractGroupDescriptor(t *testing.T) {
	g := rdf.NewGraph()
	group := rdf.NewBlankNode()
	cats := rdf.NewBlankNode()
	g.AddAll(
		rdf.Triple{S: datasetD1, P: vocab.VCARDGroup, O: group},
		rdf.Triple{S: group, P: vocab.VCARDLocality, O: rdf.NewLiteral("Caruaru")},
		rdf.Triple{S: group, P: vocab.VCARDHasCategory, O: cats},
		rdf.Triple{S: cats, P: vocab.VCARDValue, O: rdf.NewLiteral("Teatro")},
		rdf.Triple{S: cats, P: vocab.VCARDValue, O: rdf.NewLiteral("Circo")},
	)
	ds := record.NewDataset()
	require.NoError(t, newTestProfile().Extract(g, datasetD1, ds))

	diffFields(t, record.Fields{
		FieldQuantity:  record.Text(QuantityCollective),
		FieldCity:      record.Text("Caruaru"),
		FieldLanguages: record.List("Teatro", "Circo"),
	}, ds.Fields)
}

func TestExtractEmptyGraphSkipsEverything(t *testing.T) {
	ds := record.NewDataset()
	ds.Resources = []record.Fields{{FieldDistributionRef: record.Text(resource1)}}
	require.NoError(t, newTestProfile().Extract(rdf.NewGraph(), datasetD1, ds))
	assert.Empty(t, ds.Fields)
	assert.Len(t, ds.Resources[0], 1)
}

func TestExtractAllocatesFields(t *testing.T) {
	g := loadGraph(t, "presencas.nt")
	ds := &record.Dataset{}
	require.NoError(t, newTestProfile().Extract(g, datasetD1, ds))
	assert.Equal(t, QuantityIndividual, ds.Text(FieldQuantity))
}

func TestExtractMissingIssued(t *testing.T) {
	g := rdf.NewGraph()
	distribution := rdf.IRI{Value: resource1}
	g.Add(rdf.Triple{S: datasetD1, P: vocab.DCATDistribution, O: distribution})
	newDataset := func() *record.Dataset {
		ds := record.NewDataset()
		ds.Resources = []record.Fields{{FieldDistributionRef: record.Text(resource1)}}
		return ds
	}

	err := newTestProfile().Extract(g, datasetD1, newDataset())
	require.ErrorIs(t, err, ErrMissingIssued)
	assert.Equal(t, ErrCodeMissingIssued, Code(err))
	var dateErr *DateError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, FieldCreated, dateErr.Field)

	ds := newDataset()
	require.NoError(t, newTestProfile(WithRequireIssued(false)).Extract(g, datasetD1, ds))
	_, ok := ds.Resources[0].Get(FieldCreated)
	assert.False(t, ok)
}

func TestExtractDayFirstDates(t *testing.T) {
	g := rdf.NewGraph()
	distribution := rdf.IRI{Value: resource1}
	g.Add(rdf.Triple{S: datasetD1, P: vocab.DCTModified, O: rdf.NewLiteral("03-04-2021")})
	g.Add(rdf.Triple{S: datasetD1, P: vocab.DCATDistribution, O: distribution})
	g.Add(rdf.Triple{S: distribution, P: vocab.DCTIssued, O: rdf.NewLiteral("03.04.2021")})
	ds := record.NewDataset()
	ds.Resources = []record.Fields{{FieldDistributionRef: record.Text(resource1)}}

	require.NoError(t, newTestProfile().Extract(g, datasetD1, ds))
	assert.Equal(t, "03/04/2021", ds.Text(FieldLastUpdate))
	assert.Equal(t, "03/04/2021", ds.Resources[0].Text(FieldCreated))
}

func TestExtractMalformedDates(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{S: datasetD1, P: vocab.DCTModified, O: rdf.NewLiteral("not a date")})
	err := newTestProfile().Extract(g, datasetD1, record.NewDataset())
	assert.Equal(t, ErrCodeInvalidDate, Code(err))

	g = rdf.NewGraph()
	distribution := rdf.IRI{Value: resource1}
	g.Add(rdf.Triple{S: datasetD1, P: vocab.DCATDistribution, O: distribution})
	g.Add(rdf.Triple{S: distribution, P: vocab.DCTIssued, O: rdf.NewLiteral("someday")})
	ds := record.NewDataset()
	ds.Resources = []record.Fields{{FieldDistributionRef: record.Text(resource1)}}
	err = newTestProfile(WithRequireIssued(false)).Extract(g, datasetD1, ds)
	assert.Equal(t, ErrCodeInvalidDate, Code(err))
	assert.Contains(t, err.Error(), resource1)
}

func TestFormatLength(t *testing.T) {
	assert.Equal(t, "12.5", formatLength("12.50"))
	assert.Equal(t, "3", formatLength("3.0E0"))
	assert.Equal(t, "abc", formatLength("abc"))
	assert.Equal(t, "INF", formatLength("INF"))
	assert.Equal(t, "1e400", formatLength("1e400"))
}
