package profile

import (
	"github.com/innovatlas/country-innovation/pkg/errors"
)

// InfernoScale is the continuous color scale used for every PRODY-colored
// treemap.
const InfernoScale = "inferno"

// ProdyLegendLabel replaces the raw column name in the colorbar legend.
const ProdyLegendLabel = "PRODY"

// ColorRange pins the continuous colorbar to a fixed [Min, Max] interval so
// that colors mean the same thing regardless of which country is displayed.
type ColorRange struct {
	Min float64
	Max float64
}

// Fixed, precomputed colorbar bounds per sophistication column.  Values come
// from the global distribution of each PRODY column across the full dataset
// export; they change only when the datasets are re-exported.  Apportioned
// bases have no precomputed bounds, so sophistication coloring falls back to
// categorical for those selections.
var (
	publicationProdyRanges = map[string]ColorRange{
		"works_prody_count":           {Min: 18020.53, Max: 35572.04},
		"citations_prody_count":       {Min: 20481.44, Max: 38344.45},
		"works_cited_prody_count":     {Min: 18803.98, Max: 35492.67},
		"citations_cited_prody_count": {Min: 20002.89, Max: 38103.41},
	}

	patentProdyRanges = map[string]ColorRange{
		"patent_count_prody_count": {Min: 20412.18, Max: 46355.5},
	}
)

// PublicationProdyRange returns the pinned colorbar bounds for a publication
// sophistication column, or SEL_001 when no bounds are precomputed for it.
func PublicationProdyRange(column string) (ColorRange, error) {
	r, ok := publicationProdyRanges[column]
	if !ok {
		return ColorRange{}, errors.InvalidSelection("color").
			WithDetail("no precomputed color range for column " + column)
	}
	return r, nil
}

// PatentProdyRange returns the pinned colorbar bounds for a patent
// sophistication column, or SEL_001 when no bounds are precomputed for it.
func PatentProdyRange(column string) (ColorRange, error) {
	r, ok := patentProdyRanges[column]
	if !ok {
		return ColorRange{}, errors.InvalidSelection("color").
			WithDetail("no precomputed color range for column " + column)
	}
	return r, nil
}
