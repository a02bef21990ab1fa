package profile

// Record field names read or written by the Presenças stage.
const (
	FieldURI        = "uri"
	FieldID         = "id"
	FieldPackageID  = "package_id"
	FieldTitle      = "title"
	FieldModified   = "modified"
	FieldLastUpdate = "ultima_atualizacao"
	FieldEndDate    = "data_fim"
	FieldStartDate  = "data_inicio"
	FieldQuantity   = "quantidade"
	FieldCity       = "cidade"
	FieldState      = "estado"
	FieldCities     = "cidade_atuacao"
	FieldStates     = "estado_atuacao"
	FieldCountries  = "pais_atuacao"
	FieldGender     = "genero"
	FieldLanguages  = "linguagens"
	FieldLinks      = "links"
)

// Resource field names.
const (
	FieldDistributionRef = "distribution_ref"
	FieldArea            = "area"
	FieldLength          = "comprimento"
	FieldCreated         = "data_criacao"
	FieldSource          = "fonte"
	FieldTechnique       = "tecnica"
)

// Values written to FieldQuantity on extraction.
const (
	QuantityIndividual = "Indivíduo"
	QuantityCollective = "Coletivo"
)
