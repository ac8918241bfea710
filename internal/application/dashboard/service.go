package dashboard

import (
	"context"
	"math"
	"sort"

	"github.com/innovatlas/country-innovation/internal/domain/chart"
	"github.com/innovatlas/country-innovation/internal/domain/dataset"
	"github.com/innovatlas/country-innovation/internal/domain/profile"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
	"github.com/innovatlas/country-innovation/pkg/errors"
)

// Country is one selectable country.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Options enumerates the valid value of every selection control, in UI
// order.  Serving them from the backend keeps the UI and the resolver on the
// same vocabulary.
type Options struct {
	Metrics             []profile.Metric             `json:"metrics"`
	CitationConstraints []profile.CitationConstraint `json:"citation_constraints"`
	Aggregations        []profile.Aggregation        `json:"aggregations"`
	Transformations     []profile.Transformation     `json:"transformations"`
	Apportionings       []profile.Apportioning       `json:"apportionings"`
	PublicationColors   []string                     `json:"publication_colors"`
	PatentColors        []string                     `json:"patent_colors"`
}

// Totals are the selected country's headline numbers.
type Totals struct {
	Works     float64 `json:"works"`
	Citations float64 `json:"citations"`
	Patents   float64 `json:"patents"`
}

// Profile is the full render result for one country and selection: two
// cross-country scatterplots and two single-country treemaps.
type Profile struct {
	Country Country `json:"country"`
	Totals  Totals  `json:"totals"`

	PublicationScatter *chart.ScatterSpec `json:"publication_scatter"`
	PublicationTreemap *chart.TreemapSpec `json:"publication_treemap"`
	PatentScatter      *chart.ScatterSpec `json:"patent_scatter"`
	PatentTreemap      *chart.TreemapSpec `json:"patent_treemap"`
}

// Service renders country innovation profiles from the cached datasets.
type Service struct {
	cache   *DatasetCache
	logger  logging.Logger
	metrics *prometheus.Metrics
}

// NewService wires the render pipeline to its dataset cache.
func NewService(cache *DatasetCache, logger logging.Logger, metrics *prometheus.Metrics) *Service {
	return &Service{
		cache:   cache,
		logger:  logger.Named("dashboard"),
		metrics: metrics,
	}
}

// Options returns the selection vocabulary.
func (s *Service) Options() Options {
	return Options{
		Metrics:             profile.Metrics,
		CitationConstraints: profile.CitationConstraints,
		Aggregations:        profile.Aggregations,
		Transformations:     profile.Transformations,
		Apportionings:       profile.Apportionings,
		PublicationColors:   profile.PublicationColors,
		PatentColors:        profile.PatentColors,
	}
}

// Ready reports whether the country codes dataset is reachable, as a proxy
// for overall dataset availability.  A cached table answers without touching
// the object store.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.cache.Get(ctx, dataset.KeyCountryCodes)
	return err
}

// Countries lists every selectable country, sorted by name.
func (s *Service) Countries(ctx context.Context) ([]Country, error) {
	codes, err := s.cache.Get(ctx, dataset.KeyCountryCodes)
	if err != nil {
		return nil, err
	}
	cc, err := codes.Strings(dataset.ColCountryCode)
	if err != nil {
		return nil, err
	}
	names, err := codes.Strings(dataset.ColCountryName)
	if err != nil {
		return nil, err
	}

	out := make([]Country, len(cc))
	for i := range cc {
		out[i] = Country{Code: cc[i], Name: names[i]}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// countryName resolves a code against the codes dataset.
func (s *Service) countryName(ctx context.Context, code string) (string, error) {
	codes, err := s.cache.Get(ctx, dataset.KeyCountryCodes)
	if err != nil {
		return "", err
	}
	row, err := codes.FilterEqual(dataset.ColCountryCode, code)
	if err != nil {
		return "", err
	}
	if row.NumRows() == 0 {
		return "", errors.NotFound("unknown country").WithDetail("code=" + code)
	}
	return row.StringAt(dataset.ColCountryName, 0), nil
}

// RenderProfile builds the full profile for one selection.  The scatterplots
// always span every country; only the treemaps are filtered to the selected
// one.  A selected country with no publication or patent rows yields empty
// treemaps, not an error.
func (s *Service) RenderProfile(ctx context.Context, sel profile.Selection) (*Profile, error) {
	p, err := s.renderProfile(ctx, sel)
	if err != nil {
		s.metrics.ProfileRendersTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.ProfileRendersTotal.WithLabelValues("success").Inc()
	return p, nil
}

func (s *Service) renderProfile(ctx context.Context, sel profile.Selection) (*Profile, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	name, err := s.countryName(ctx, sel.CountryCode)
	if err != nil {
		return nil, err
	}

	totals, err := s.cache.Get(ctx, dataset.KeyCountryTotals)
	if err != nil {
		return nil, err
	}
	works, err := s.cache.Get(ctx, dataset.KeyWorks)
	if err != nil {
		return nil, err
	}
	patents, err := s.cache.Get(ctx, dataset.KeyPatents)
	if err != nil {
		return nil, err
	}

	pubScatterPlan, err := profile.ResolvePublicationScatter(sel.Publications)
	if err != nil {
		return nil, err
	}
	patScatterPlan, err := profile.ResolvePatentScatter(sel.Patents)
	if err != nil {
		return nil, err
	}
	pubTreemapPlan, err := profile.ResolvePublicationTreemap(sel.Publications)
	if err != nil {
		return nil, err
	}
	patTreemapPlan, err := profile.ResolvePatentTreemap(sel.Patents)
	if err != nil {
		return nil, err
	}
	s.logColorFallback(pubTreemapPlan)
	s.logColorFallback(patTreemapPlan)

	pubScatter, err := chart.BuildScatter(totals, pubScatterPlan, sel.CountryCode,
		"Publications vs GDP per capita")
	if err != nil {
		return nil, err
	}
	patScatter, err := chart.BuildScatter(totals, patScatterPlan, sel.CountryCode,
		"Patents vs GDP per capita")
	if err != nil {
		return nil, err
	}

	countryWorks, err := works.FilterEqual(dataset.ColCountryCode, sel.CountryCode)
	if err != nil {
		return nil, err
	}
	countryPatents, err := patents.FilterEqual(dataset.ColCountryCode, sel.CountryCode)
	if err != nil {
		return nil, err
	}

	pubTreemap, err := chart.BuildTreemap(countryWorks, pubTreemapPlan,
		name+": publications by concept")
	if err != nil {
		return nil, err
	}
	patTreemap, err := chart.BuildTreemap(countryPatents, patTreemapPlan,
		name+": patents by subclass")
	if err != nil {
		return nil, err
	}

	headline, err := s.headlineTotals(totals, sel.CountryCode)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Country:            Country{Code: sel.CountryCode, Name: name},
		Totals:             headline,
		PublicationScatter: pubScatter,
		PublicationTreemap: pubTreemap,
		PatentScatter:      patScatter,
		PatentTreemap:      patTreemap,
	}, nil
}

// headlineTotals pulls the selected country's raw counts from the totals
// table.  Missing values render as zero rather than poisoning the JSON
// response with NaN.
func (s *Service) headlineTotals(totals *dataset.Table, code string) (Totals, error) {
	row, err := totals.FilterEqual(dataset.ColCountryCode, code)
	if err != nil {
		return Totals{}, err
	}
	return Totals{
		Works:     zeroNaN(row.NumberAt(dataset.ColWorks, 0)),
		Citations: zeroNaN(row.NumberAt(dataset.ColCitations, 0)),
		Patents:   zeroNaN(row.NumberAt(dataset.ColPatentCount, 0)),
	}, nil
}

func (s *Service) logColorFallback(plan profile.TreemapPlan) {
	if plan.ColorFallback == "" {
		return
	}
	s.logger.Debug("no precomputed color range, falling back to categorical coloring",
		logging.String("column", plan.ColorFallback))
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
