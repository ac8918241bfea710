// Package profile holds the user's categorical selections and the resolver
// that maps them onto concrete aggregation-column names.  Every dimension is
// a typed enum with a fixed vocabulary: the UI's radio controls produce
// exactly these strings, so anything else reaching a parser is a UI/logic
// mismatch and is rejected loudly with a SEL_001 error.
package profile

import (
	"fmt"

	"github.com/innovatlas/country-innovation/pkg/errors"
)

// Metric selects what the publication visualizations count.
type Metric string

const (
	MetricWorks     Metric = "works"
	MetricCitations Metric = "citations"
)

// Metrics lists the valid Metric values, in UI order.
var Metrics = []Metric{MetricWorks, MetricCitations}

func (m Metric) Valid() bool {
	return m == MetricWorks || m == MetricCitations
}

// ParseMetric converts the UI string for the publication metric control.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.Valid() {
		return "", errors.InvalidSelection("metric").WithDetail(detail(s))
	}
	return m, nil
}

// CitationConstraint gates publications on a minimum citation count.
type CitationConstraint string

const (
	ConstraintNone         CitationConstraint = "none"
	ConstraintCitedAtLeast CitationConstraint = "at least 5"
)

// CitationConstraints lists the valid CitationConstraint values, in UI order.
var CitationConstraints = []CitationConstraint{ConstraintNone, ConstraintCitedAtLeast}

func (c CitationConstraint) Valid() bool {
	return c == ConstraintNone || c == ConstraintCitedAtLeast
}

// ParseCitationConstraint converts the UI string for the citation-count
// constraint control.
func ParseCitationConstraint(s string) (CitationConstraint, error) {
	c := CitationConstraint(s)
	if !c.Valid() {
		return "", errors.InvalidSelection("citation_constraint").WithDetail(detail(s))
	}
	return c, nil
}

// Aggregation selects how the scatterplot y-value is aggregated per country.
type Aggregation string

const (
	AggregationPerCapita      Aggregation = "per capita"
	AggregationTotal          Aggregation = "total"
	AggregationSophistication Aggregation = "sophistication (expy)"
)

// Aggregations lists the valid Aggregation values, in UI order.
var Aggregations = []Aggregation{AggregationPerCapita, AggregationTotal, AggregationSophistication}

func (a Aggregation) Valid() bool {
	return a == AggregationPerCapita || a == AggregationTotal || a == AggregationSophistication
}

// ParseAggregation converts the UI string for a scatterplot aggregation
// control.
func ParseAggregation(s string) (Aggregation, error) {
	a := Aggregation(s)
	if !a.Valid() {
		return "", errors.InvalidSelection("aggregation").WithDetail(detail(s))
	}
	return a, nil
}

// Transformation selects the treemap value transformation.
type Transformation string

const (
	TransformationNone        Transformation = "none"
	TransformationRCA         Transformation = "rca"
	TransformationMarketShare Transformation = "market share"
)

// Transformations lists the valid Transformation values, in UI order.
var Transformations = []Transformation{TransformationNone, TransformationRCA, TransformationMarketShare}

func (t Transformation) Valid() bool {
	return t == TransformationNone || t == TransformationRCA || t == TransformationMarketShare
}

// ParseTransformation converts the UI string for a treemap transformation
// control.
func ParseTransformation(s string) (Transformation, error) {
	t := Transformation(s)
	if !t.Valid() {
		return "", errors.InvalidSelection("transformation").WithDetail(detail(s))
	}
	return t, nil
}

// Apportioning selects how a publication's credit is split across its
// associated concepts: attributed fully to the dominant concept, split
// equally, or not apportioned at all.  It affects treemap columns only;
// the cross-country scatter always uses unapportioned totals.
type Apportioning string

const (
	ApportionNone     Apportioning = "none"
	ApportionDominant Apportioning = "dominant"
	ApportionEqual    Apportioning = "equal"
)

// Apportionings lists the valid Apportioning values, in UI order.
var Apportionings = []Apportioning{ApportionNone, ApportionDominant, ApportionEqual}

func (a Apportioning) Valid() bool {
	return a == ApportionNone || a == ApportionDominant || a == ApportionEqual
}

// ParseApportioning converts the UI string for the apportioning control.
func ParseApportioning(s string) (Apportioning, error) {
	a := Apportioning(s)
	if !a.Valid() {
		return "", errors.InvalidSelection("apportioning").WithDetail(detail(s))
	}
	return a, nil
}

// ColorMode selects how a treemap is colored: categorically by the broad
// grouping column, or continuously by the PRODY sophistication of each leaf.
type ColorMode string

const (
	ColorCategory       ColorMode = "category"
	ColorSophistication ColorMode = "sophistication (prody)"
)

func (c ColorMode) Valid() bool {
	return c == ColorCategory || c == ColorSophistication
}

// Per-domain UI vocabulary for the coloring controls.  The normalized
// ColorMode is the same; only the labels differ.
const (
	PublicationColorCategory       = "broad concept"
	PublicationColorSophistication = "concept sophistication (prody)"

	PatentColorCategory       = "patent class"
	PatentColorSophistication = "subclass sophistication (prody)"
)

// PublicationColors lists the valid publication coloring strings, in UI order.
var PublicationColors = []string{PublicationColorCategory, PublicationColorSophistication}

// PatentColors lists the valid patent coloring strings, in UI order.
var PatentColors = []string{PatentColorCategory, PatentColorSophistication}

// ParsePublicationColor converts the UI string for the publications treemap
// coloring control.
func ParsePublicationColor(s string) (ColorMode, error) {
	switch s {
	case PublicationColorCategory:
		return ColorCategory, nil
	case PublicationColorSophistication:
		return ColorSophistication, nil
	default:
		return "", errors.InvalidSelection("color").WithDetail(detail(s))
	}
}

// ParsePatentColor converts the UI string for the patents treemap coloring
// control.
func ParsePatentColor(s string) (ColorMode, error) {
	switch s {
	case PatentColorCategory:
		return ColorCategory, nil
	case PatentColorSophistication:
		return ColorSophistication, nil
	default:
		return "", errors.InvalidSelection("color").WithDetail(detail(s))
	}
}

// PublicationChoices holds the publication-domain controls.
type PublicationChoices struct {
	Metric         Metric
	Constraint     CitationConstraint
	Aggregation    Aggregation
	Transformation Transformation
	Apportioning   Apportioning
	Color          ColorMode
}

// Validate rejects any field outside its enumerated domain.
func (c PublicationChoices) Validate() error {
	switch {
	case !c.Metric.Valid():
		return errors.InvalidSelection("metric").WithDetail(detail(string(c.Metric)))
	case !c.Constraint.Valid():
		return errors.InvalidSelection("citation_constraint").WithDetail(detail(string(c.Constraint)))
	case !c.Aggregation.Valid():
		return errors.InvalidSelection("aggregation").WithDetail(detail(string(c.Aggregation)))
	case !c.Transformation.Valid():
		return errors.InvalidSelection("transformation").WithDetail(detail(string(c.Transformation)))
	case !c.Apportioning.Valid():
		return errors.InvalidSelection("apportioning").WithDetail(detail(string(c.Apportioning)))
	case !c.Color.Valid():
		return errors.InvalidSelection("color").WithDetail(detail(string(c.Color)))
	}
	return nil
}

// PatentChoices holds the patent-domain controls.  The metric is implicitly
// patent families; there is no citation constraint or apportioning for
// patents.
type PatentChoices struct {
	Aggregation    Aggregation
	Transformation Transformation
	Color          ColorMode
}

// Validate rejects any field outside its enumerated domain.
func (c PatentChoices) Validate() error {
	switch {
	case !c.Aggregation.Valid():
		return errors.InvalidSelection("aggregation").WithDetail(detail(string(c.Aggregation)))
	case !c.Transformation.Valid():
		return errors.InvalidSelection("transformation").WithDetail(detail(string(c.Transformation)))
	case !c.Color.Valid():
		return errors.InvalidSelection("color").WithDetail(detail(string(c.Color)))
	}
	return nil
}

// Selection is an immutable snapshot of every control for one render cycle.
// It is constructed once per interaction and passed by parameter through the
// pipeline; no component reads ambient state.
type Selection struct {
	CountryCode  string
	Publications PublicationChoices
	Patents      PatentChoices
}

// Validate rejects an empty country code and any out-of-domain choice.
func (s Selection) Validate() error {
	if s.CountryCode == "" {
		return errors.InvalidSelection("country").WithDetail(`value=""`)
	}
	if err := s.Publications.Validate(); err != nil {
		return err
	}
	return s.Patents.Validate()
}

// DefaultSelection mirrors the first option of every UI control.
func DefaultSelection(countryCode string) Selection {
	return Selection{
		CountryCode: countryCode,
		Publications: PublicationChoices{
			Metric:         MetricWorks,
			Constraint:     ConstraintNone,
			Aggregation:    AggregationPerCapita,
			Transformation: TransformationNone,
			Apportioning:   ApportionNone,
			Color:          ColorCategory,
		},
		Patents: PatentChoices{
			Aggregation:    AggregationPerCapita,
			Transformation: TransformationNone,
			Color:          ColorCategory,
		},
	}
}

func detail(s string) string {
	return fmt.Sprintf("value=%q", s)
}
