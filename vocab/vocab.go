// Package vocab holds the namespace and term IRIs read and written by the
// Presenças DCAT profile.
//
// The IRIs match the upstream vocabularies bit for bit, including the VRA
// namespace, which has no trailing separator: vra:work expands to
// "https://www.loc.gov/standards/vracore/vra.xsdwork".
package vocab

import "github.com/geoknoesis/presencas-dcat/rdf"

// Namespace IRIs.
const (
	RDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS  = "http://www.w3.org/2000/01/rdf-schema#"
	XSD   = "http://www.w3.org/2001/XMLSchema#"
	DCAT  = "http://www.w3.org/ns/dcat#"
	DCT   = "http://purl.org/dc/terms/"
	FOAF  = "http://xmlns.com/foaf/0.1/"
	VCARD = "http://www.w3.org/2006/vcard/ns#"
	GSP   = "http://www.opengis.net/ont/geosparql#"
	QUDT  = "https://qudt.org/schema/qudt/"
	VRA   = "https://www.loc.gov/standards/vracore/vra.xsd"
)

// Prefixes maps the conventional prefix labels to their namespaces.
// Callers must copy before modifying.
var Prefixes = map[string]string{
	"rdf":   RDF,
	"rdfs":  RDFS,
	"xsd":   XSD,
	"dcat":  DCAT,
	"dct":   DCT,
	"foaf":  FOAF,
	"vcard": VCARD,
	"gsp":   GSP,
	"qudt":  QUDT,
	"vra":   VRA,
}

func term(ns, local string) rdf.IRI { return rdf.IRI{Value: ns + local} }

// RDF and RDFS.
var (
	RDFType = term(RDF, "type")
	// RDFSDatatype is used as a predicate to attach a classification
	// (gender category, url marker) to a value node.
	RDFSDatatype = term(RDFS, "Datatype")
)

// XML Schema datatypes.
var (
	XSDDate       = term(XSD, "date")
	XSDDateTime   = term(XSD, "dateTime")
	XSDGYear      = term(XSD, "gYear")
	XSDGYearMonth = term(XSD, "gYearMonth")
	XSDDouble     = term(XSD, "double")
)

// DCAT and Dublin Core terms.
var (
	DCATDataset           = term(DCAT, "Dataset")
	DCATDistributionClass = term(DCAT, "Distribution")
	DCATDistribution      = term(DCAT, "distribution")
	DCATContactPoint      = term(DCAT, "contactPoint")
	DCATEndDate           = term(DCAT, "endDate")
	DCATStartDate         = term(DCAT, "startDate")

	DCTModified     = term(DCT, "modified")
	DCTIssued       = term(DCT, "issued")
	DCTTemporal     = term(DCT, "temporal")
	DCTTitle        = term(DCT, "title")
	DCTIdentifier   = term(DCT, "identifier")
	DCTPeriodOfTime = term(DCT, "PeriodOfTime")
)

// FOAFPage links a distribution to its source page.
var FOAFPage = term(FOAF, "page")

// vCard terms.
var (
	VCARDIndividual  = term(VCARD, "Individual")
	VCARDGroup       = term(VCARD, "Group")
	VCARDKind        = term(VCARD, "Kind")
	VCARDFn          = term(VCARD, "fn")
	VCARDHasEmail    = term(VCARD, "hasEmail")
	VCARDHasUID      = term(VCARD, "hasUID")
	VCARDLocality    = term(VCARD, "locality")
	VCARDRegion      = term(VCARD, "region")
	VCARDCountryName = term(VCARD, "country-name")
	VCARDHasAddress  = term(VCARD, "hasAddress")
	VCARDBday        = term(VCARD, "bday")
	VCARDHasGender   = term(VCARD, "hasGender")
	VCARDValue       = term(VCARD, "value")
	VCARDCategory    = term(VCARD, "category")
	VCARDHasCategory = term(VCARD, "hasCategory")
	VCARDURL         = term(VCARD, "url")
	VCARDHasURL      = term(VCARD, "hasURL")
	VCARDFemale      = term(VCARD, "Female")
	VCARDMale        = term(VCARD, "Male")
	VCARDOther       = term(VCARD, "Other")
)

// GeoSPARQL terms.
var (
	GSPSpatialObject   = term(GSP, "SpatialObject")
	GSPHasArea         = term(GSP, "hasArea")
	GSPHasLength       = term(GSP, "hasLength")
	GSPHasMetricLength = term(GSP, "hasMetricLength")
)

// QUDTValue carries the raw measurement of a spatial object.
var QUDTValue = term(QUDT, "value")

// VRA Core terms.
var (
	VRAWork         = term(VRA, "work")
	VRATechniqueSet = term(VRA, "techniqueSet")
	VRADisplay      = term(VRA, "display")
)
