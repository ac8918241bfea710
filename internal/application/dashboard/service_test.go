package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/innovatlas/country-innovation/internal/domain/dataset"
	"github.com/innovatlas/country-innovation/internal/domain/profile"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
	"github.com/innovatlas/country-innovation/pkg/errors"
)

func mustTable(t *testing.T, b *dataset.Builder) *dataset.Table {
	t.Helper()
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("building fixture table: %v", err)
	}
	return tbl
}

// fixtureService wires a Service over in-memory fixtures for Brazil and the
// United States.
func fixtureService(t *testing.T) *Service {
	t.Helper()
	loader := newCountingLoader()

	loader.tables[dataset.KeyCountryCodes] = mustTable(t, dataset.NewBuilder("country_codes").
		AddStrings(dataset.ColCountryCode, []string{"US", "BR"}).
		AddStrings(dataset.ColCountryName, []string{"United States", "Brazil"}))

	loader.tables[dataset.KeyCountryTotals] = mustTable(t, dataset.NewBuilder("country_totals").
		AddStrings(dataset.ColCountryCode, []string{"BR", "US"}).
		AddStrings(dataset.ColCountryName, []string{"Brazil", "United States"}).
		AddStrings(dataset.ColRegion, []string{"Americas", "Americas"}).
		AddNumbers(dataset.ColGDPPerCapita, []float64{8900, 76300}).
		AddNumbers(dataset.ColPopulation, []float64{214e6, 333e6}).
		AddNumbers(dataset.ColWorks, []float64{90000, 800000}).
		AddNumbers(dataset.ColCitations, []float64{400000, 9000000}).
		AddNumbers(dataset.ColPatentCount, []float64{5000, 300000}).
		AddNumbers("works_pc", []float64{0.42, 2.4}).
		AddNumbers("works_expy_count", []float64{21000, 30000}).
		AddNumbers("patent_count_pc", []float64{0.02, 0.9}))

	loader.tables[dataset.KeyWorks] = mustTable(t, dataset.NewBuilder("country_concept").
		AddStrings(dataset.ColCountryCode, []string{"BR", "BR", "US"}).
		AddStrings(dataset.ColBroadConceptName, []string{"Life sciences", "Physical sciences", "Life sciences"}).
		AddStrings(dataset.ColConceptName, []string{"Biology", "Physics", "Medicine"}).
		AddNumbers("works", []float64{4000, 2500, 90000}).
		AddNumbers("works_rca", []float64{1.6, 0.8, 1.1}).
		AddNumbers("works_prody_count", []float64{21000, 25000, 26000}))

	loader.tables[dataset.KeyPatents] = mustTable(t, dataset.NewBuilder("country_patents").
		AddStrings(dataset.ColCountryCode, []string{"BR", "US"}).
		AddStrings(dataset.ColSectionName, []string{"Chemistry; Metallurgy", "Physics"}).
		AddStrings(dataset.ColSubclassName, []string{"Organic chemistry", "Computing"}).
		AddStrings(dataset.ColSubclassCode, []string{"C07", "G06"}).
		AddNumbers("patent_count", []float64{1200, 150000}))

	cache := NewDatasetCache(loader, time.Minute, logging.NewNopLogger(), prometheus.NewMetrics())
	return NewService(cache, logging.NewNopLogger(), prometheus.NewMetrics())
}

func TestCountriesSortedByName(t *testing.T) {
	svc := fixtureService(t)

	countries, err := svc.Countries(context.Background())
	if err != nil {
		t.Fatalf("Countries: %v", err)
	}
	if len(countries) != 2 {
		t.Fatalf("got %d countries, want 2", len(countries))
	}
	if countries[0].Name != "Brazil" || countries[1].Name != "United States" {
		t.Fatalf("countries not sorted by name: %+v", countries)
	}
	if countries[0].Code != "BR" {
		t.Fatalf("Brazil has code %q, want BR", countries[0].Code)
	}
}

func TestOptionsExposeFullVocabulary(t *testing.T) {
	opts := fixtureService(t).Options()

	if len(opts.Metrics) != 2 || opts.Metrics[0] != profile.MetricWorks {
		t.Fatalf("unexpected metrics: %v", opts.Metrics)
	}
	if len(opts.Aggregations) != 3 {
		t.Fatalf("got %d aggregations, want 3", len(opts.Aggregations))
	}
	if opts.PublicationColors[1] != profile.PublicationColorSophistication {
		t.Fatalf("unexpected publication colors: %v", opts.PublicationColors)
	}
	if opts.PatentColors[0] != profile.PatentColorCategory {
		t.Fatalf("unexpected patent colors: %v", opts.PatentColors)
	}
}

func TestRenderProfileDefaultSelection(t *testing.T) {
	svc := fixtureService(t)

	p, err := svc.RenderProfile(context.Background(), profile.DefaultSelection("BR"))
	if err != nil {
		t.Fatalf("RenderProfile: %v", err)
	}

	if p.Country.Name != "Brazil" {
		t.Fatalf("country name %q, want Brazil", p.Country.Name)
	}
	if p.Totals.Works != 90000 || p.Totals.Citations != 400000 || p.Totals.Patents != 5000 {
		t.Fatalf("unexpected totals: %+v", p.Totals)
	}

	// Scatterplots span every country; only Brazil's marker is labeled.
	if len(p.PublicationScatter.Points) != 2 {
		t.Fatalf("publication scatter has %d points, want 2", len(p.PublicationScatter.Points))
	}
	if p.PublicationScatter.YAxis.Title != "works_pc" {
		t.Fatalf("publication scatter y column %q, want works_pc", p.PublicationScatter.YAxis.Title)
	}
	for _, pt := range p.PublicationScatter.Points {
		want := ""
		if pt.CountryCode == "BR" {
			want = "BR"
		}
		if pt.Label != want {
			t.Fatalf("point %s has label %q, want %q", pt.CountryCode, pt.Label, want)
		}
	}
	if p.PatentScatter.YAxis.Title != "patent_count_pc" {
		t.Fatalf("patent scatter y column %q, want patent_count_pc", p.PatentScatter.YAxis.Title)
	}

	// Treemaps hold only the selected country's rows.
	if len(p.PublicationTreemap.Tiles) != 2 {
		t.Fatalf("publication treemap has %d tiles, want 2", len(p.PublicationTreemap.Tiles))
	}
	if len(p.PatentTreemap.Tiles) != 1 {
		t.Fatalf("patent treemap has %d tiles, want 1", len(p.PatentTreemap.Tiles))
	}
	if got := p.PatentTreemap.Tiles[0].Hover["subclass_code"]; got != "C07" {
		t.Fatalf("patent tile hover subclass_code %q, want C07", got)
	}
}

func TestRenderProfileResolvedColumns(t *testing.T) {
	svc := fixtureService(t)

	sel := profile.DefaultSelection("BR")
	sel.Publications.Transformation = profile.TransformationRCA
	sel.Publications.Aggregation = profile.AggregationSophistication
	sel.Publications.Color = profile.ColorSophistication

	p, err := svc.RenderProfile(context.Background(), sel)
	if err != nil {
		t.Fatalf("RenderProfile: %v", err)
	}

	if p.PublicationScatter.YAxis.Title != "works_expy_count" {
		t.Fatalf("scatter y column %q, want works_expy_count", p.PublicationScatter.YAxis.Title)
	}
	if p.PublicationScatter.YAxis.Scale != "linear" {
		t.Fatalf("sophistication scatter should be linear, got %q", p.PublicationScatter.YAxis.Scale)
	}
	if p.PublicationTreemap.Color.Column != "works_prody_count" {
		t.Fatalf("treemap color column %q, want works_prody_count", p.PublicationTreemap.Color.Column)
	}
	if len(p.PublicationTreemap.Tiles) != 2 {
		t.Fatalf("treemap has %d tiles, want 2", len(p.PublicationTreemap.Tiles))
	}
	if p.PublicationTreemap.Tiles[0].Value != 1.6 {
		t.Fatalf("first tile value %v, want 1.6", p.PublicationTreemap.Tiles[0].Value)
	}
}

// Brazil, works, no constraint, per capita, RCA, broad-concept coloring:
// the treemap sizes by works_rca, the scatter plots works_pc on a log axis
// and the treemap stays categorically colored.
func TestRenderProfileBrazilWorksRCA(t *testing.T) {
	svc := fixtureService(t)

	sel := profile.DefaultSelection("BR")
	sel.Publications.Transformation = profile.TransformationRCA

	p, err := svc.RenderProfile(context.Background(), sel)
	if err != nil {
		t.Fatalf("RenderProfile: %v", err)
	}

	if p.PublicationScatter.YAxis.Title != "works_pc" {
		t.Fatalf("scatter y column %q, want works_pc", p.PublicationScatter.YAxis.Title)
	}
	if p.PublicationScatter.YAxis.Scale != "log" {
		t.Fatalf("scatter y scale %q, want log", p.PublicationScatter.YAxis.Scale)
	}
	if p.PublicationTreemap.Color.Mode != "categorical" {
		t.Fatalf("treemap color mode %q, want categorical", p.PublicationTreemap.Color.Mode)
	}
	works, err := svc.cache.Get(context.Background(), dataset.KeyWorks)
	if err != nil {
		t.Fatalf("loading works fixture: %v", err)
	}
	if !works.HasColumn("works_rca") {
		t.Fatal("fixture is missing works_rca")
	}
	if got := p.PublicationTreemap.Tiles[0].Value; got != 1.6 {
		t.Fatalf("first tile value %v, want 1.6 from works_rca", got)
	}
}

func TestRenderProfileUnknownCountry(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.RenderProfile(context.Background(), profile.DefaultSelection("ZZ"))
	if err == nil {
		t.Fatal("expected error for unknown country")
	}
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("got code %s, want %s", errors.GetCode(err), errors.CodeNotFound)
	}
}

func TestRenderProfileInvalidSelection(t *testing.T) {
	svc := fixtureService(t)

	sel := profile.DefaultSelection("BR")
	sel.Publications.Metric = profile.Metric("wroks")
	_, err := svc.RenderProfile(context.Background(), sel)
	if err == nil {
		t.Fatal("expected error for invalid selection")
	}
	if !errors.IsCode(err, errors.CodeInvalidSelection) {
		t.Fatalf("got code %s, want %s", errors.GetCode(err), errors.CodeInvalidSelection)
	}
}

func TestRenderProfileMissingResolvedColumn(t *testing.T) {
	svc := fixtureService(t)

	// The fixtures carry no market-share columns.
	sel := profile.DefaultSelection("BR")
	sel.Publications.Transformation = profile.TransformationMarketShare
	_, err := svc.RenderProfile(context.Background(), sel)
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !errors.IsCode(err, errors.CodeDataMalformed) {
		t.Fatalf("got code %s, want %s", errors.GetCode(err), errors.CodeDataMalformed)
	}
}

func TestRenderProfileDataUnavailable(t *testing.T) {
	loader := newCountingLoader()
	cache := NewDatasetCache(loader, time.Minute, logging.NewNopLogger(), prometheus.NewMetrics())
	svc := NewService(cache, logging.NewNopLogger(), prometheus.NewMetrics())

	_, err := svc.RenderProfile(context.Background(), profile.DefaultSelection("BR"))
	if err == nil {
		t.Fatal("expected error when datasets are unavailable")
	}
	if !errors.IsCode(err, errors.CodeDataUnavailable) {
		t.Fatalf("got code %s, want %s", errors.GetCode(err), errors.CodeDataUnavailable)
	}
}
