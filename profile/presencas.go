package profile

import (
	"log/slog"
)

// PeriodScope selects which period-of-time clusters an end-date override
// removes.
type PeriodScope string

const (
	// PeriodScopeStore removes every dct:temporal cluster in the graph,
	// whatever subject links it.
	PeriodScopeStore PeriodScope = "store"
	// PeriodScopeDataset removes only clusters linked from the dataset being
	// synthesized.
	PeriodScopeDataset PeriodScope = "dataset"
)

// Name is the stage name of the Presenças profile.
const Name = "presencas_dcat_ap_3"

// Options configures the Presenças stage.
type Options struct {
	// Logger receives debug records for skipped branches and warnings.
	Logger *slog.Logger
	// BaseURI builds distribution IRIs for resources without a "uri" field.
	BaseURI string
	// PeriodScope controls end-date override removal.
	PeriodScope PeriodScope
	// RequireIssued makes a matched distribution without dct:issued an error.
	RequireIssued bool
	// Language is preferred when several literals answer a single-valued lookup.
	Language string
}

// Option configures the Presenças stage.
type Option func(*Options)

// WithLogger sets the stage logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithBaseURI sets the site URL used to derive resource IRIs.
func WithBaseURI(uri string) Option {
	return func(o *Options) { o.BaseURI = uri }
}

// WithPeriodScope sets the end-date override scope.
func WithPeriodScope(scope PeriodScope) Option {
	return func(o *Options) { o.PeriodScope = scope }
}

// WithRequireIssued toggles the missing issue date error.
func WithRequireIssued(require bool) Option {
	return func(o *Options) { o.RequireIssued = require }
}

// WithLanguage sets the preferred literal language.
func WithLanguage(lang string) Option {
	return func(o *Options) { o.Language = lang }
}

func defaultOptions() Options {
	return Options{
		Logger:        slog.Default(),
		PeriodScope:   PeriodScopeStore,
		RequireIssued: true,
		Language:      "en",
	}
}

// Presencas is the Presenças extension of DCAT-AP 3. It adds the fields of
// the Presenças project (who the dataset is about, where they act, spatial
// measures and techniques of each resource) on top of a base profile.
type Presencas struct {
	opts Options
}

// New returns the Presenças stage.
func New(opts ...Option) *Presencas {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.PeriodScope == "" {
		options.PeriodScope = PeriodScopeStore
	}
	return &Presencas{opts: options}
}

// Name returns the stage name.
func (p *Presencas) Name() string { return Name }
