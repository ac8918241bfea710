package profile

import (
	"github.com/innovatlas/country-innovation/internal/domain/dataset"
)

// The datasets carry one pre-aggregated column per combination of choices,
// so resolving a selection is pure column-name assembly.  Suffixes compose
// in a fixed order: apportioning first, then the citation constraint, then
// the transformation or aggregation.

// ScatterPlan names the columns a cross-country scatterplot reads from the
// country totals dataset.
type ScatterPlan struct {
	// YColumn is the per-country value plotted against GDP per capita.
	YColumn string
	// LogY selects a logarithmic y axis.  Sophistication (EXPY) values are
	// already log-like, so they get a linear axis.
	LogY bool
}

// TreemapPlan names the columns and coloring of one treemap over the rows of
// a single country.
type TreemapPlan struct {
	// ValueColumn sizes the treemap tiles.
	ValueColumn string
	// Path is the tile hierarchy, outermost level first.
	Path []string
	// HoverData lists extra columns surfaced in the tile tooltip.
	HoverData []string

	// ColorColumn drives tile color.  For categorical coloring it is the
	// outer grouping column; for sophistication coloring it is a PRODY
	// column with pinned bounds.
	ColorColumn string
	// ColorScale is the continuous scale name, empty for categorical.
	ColorScale string
	// ColorRange pins the continuous colorbar, nil for categorical.
	ColorRange *ColorRange
	// Labels renames raw column names in legends and tooltips.
	Labels map[string]string

	// ColorFallback is set when sophistication coloring was requested but
	// no pinned bounds exist for the resolved column, in which case the
	// plan degrades to categorical.  Callers may log it.
	ColorFallback string
}

// Categorical reports whether the plan colors tiles by category.
func (p TreemapPlan) Categorical() bool { return p.ColorScale == "" }

// scatterSuffix appends the aggregation suffix shared by both domains.
func scatterSuffix(base string, agg Aggregation) ScatterPlan {
	switch agg {
	case AggregationPerCapita:
		return ScatterPlan{YColumn: base + "_pc", LogY: true}
	case AggregationSophistication:
		return ScatterPlan{YColumn: base + "_expy_count", LogY: false}
	default: // AggregationTotal
		return ScatterPlan{YColumn: base, LogY: true}
	}
}

// ResolvePublicationScatter maps publication choices onto a country-totals
// column.  The scatter always uses unapportioned totals; only the metric,
// the citation constraint and the aggregation participate.
func ResolvePublicationScatter(c PublicationChoices) (ScatterPlan, error) {
	if err := c.Validate(); err != nil {
		return ScatterPlan{}, err
	}
	base := string(c.Metric)
	if c.Constraint == ConstraintCitedAtLeast {
		base += "_cited"
	}
	return scatterSuffix(base, c.Aggregation), nil
}

// ResolvePatentScatter maps patent choices onto a country-totals column.
// Patents are always counted as families, so the base never varies.
func ResolvePatentScatter(c PatentChoices) (ScatterPlan, error) {
	if err := c.Validate(); err != nil {
		return ScatterPlan{}, err
	}
	return scatterSuffix(dataset.ColPatentCount, c.Aggregation), nil
}

// transformationSuffix appends the treemap transformation suffix.
func transformationSuffix(base string, t Transformation) string {
	switch t {
	case TransformationRCA:
		return base + "_rca"
	case TransformationMarketShare:
		return base + "_market_share"
	default: // TransformationNone
		return base
	}
}

// ResolvePublicationTreemap maps publication choices onto the columns of the
// country-concept dataset.
func ResolvePublicationTreemap(c PublicationChoices) (TreemapPlan, error) {
	if err := c.Validate(); err != nil {
		return TreemapPlan{}, err
	}

	base := string(c.Metric)
	switch c.Apportioning {
	case ApportionDominant:
		base += "_dominant"
	case ApportionEqual:
		base += "_equal"
	}
	if c.Constraint == ConstraintCitedAtLeast {
		base += "_cited"
	}

	plan := TreemapPlan{
		ValueColumn: transformationSuffix(base, c.Transformation),
		Path:        []string{dataset.ColBroadConceptName, dataset.ColConceptName},
		ColorColumn: dataset.ColBroadConceptName,
	}
	if c.Color == ColorSophistication {
		applySophistication(&plan, base+"_prody_count", PublicationProdyRange)
	}
	return plan, nil
}

// ResolvePatentTreemap maps patent choices onto the columns of the
// country-patents dataset.
func ResolvePatentTreemap(c PatentChoices) (TreemapPlan, error) {
	if err := c.Validate(); err != nil {
		return TreemapPlan{}, err
	}

	plan := TreemapPlan{
		ValueColumn: transformationSuffix(dataset.ColPatentCount, c.Transformation),
		Path:        []string{dataset.ColSectionName, dataset.ColSubclassName},
		HoverData:   []string{dataset.ColSubclassCode, dataset.ColSectionName},
		ColorColumn: dataset.ColSectionName,
	}
	if c.Color == ColorSophistication {
		applySophistication(&plan, dataset.ColPatentCount+"_prody_count", PatentProdyRange)
	}
	return plan, nil
}

// applySophistication switches a plan to continuous PRODY coloring when
// pinned bounds exist for the column, and records the fallback otherwise.
func applySophistication(plan *TreemapPlan, column string, lookup func(string) (ColorRange, error)) {
	r, err := lookup(column)
	if err != nil {
		plan.ColorFallback = column
		return
	}
	plan.ColorColumn = column
	plan.ColorScale = InfernoScale
	plan.ColorRange = &r
	plan.Labels = map[string]string{column: ProdyLegendLabel}
}
