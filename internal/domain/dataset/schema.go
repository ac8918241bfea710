// Package dataset models the pre-aggregated tabular data the service plots:
// an immutable in-memory Table, the decoders that produce one from a parquet
// or CSV object, and the column vocabulary shared by the four datasets.
package dataset

// Key identifies one of the four logical datasets served from the object
// store.  The mapping from Key to object name (with file extension) lives in
// configuration.
type Key string

const (
	// KeyWorks has one row per (country_code, broad_concept_name,
	// concept_name) with publication and citation counts under the full
	// suffix family.
	KeyWorks Key = "country_concept"

	// KeyPatents has one row per (country_code, section_code, section_name,
	// subclass_code, subclass_name) with patent_count columns under the
	// same suffix family.
	KeyPatents Key = "country_patents"

	// KeyCountryCodes maps country_name to country_code and back.
	KeyCountryCodes Key = "country_codes"

	// KeyCountryTotals has one row per country_code with the scalar totals
	// used by the cross-country scatterplots.
	KeyCountryTotals Key = "country_totals"
)

// Keys lists every dataset the service loads, in load order.
var Keys = []Key{KeyWorks, KeyPatents, KeyCountryCodes, KeyCountryTotals}

// Shared column names.  country_code is the join key across all four
// datasets; country_name is the UI key.
const (
	ColCountryCode = "country_code"
	ColCountryName = "country_name"

	ColBroadConceptName = "broad_concept_name"
	ColConceptName      = "concept_name"

	ColSectionCode  = "section_code"
	ColSectionName  = "section_name"
	ColSubclassCode = "subclass_code"
	ColSubclassName = "subclass_name"

	ColGDPPerCapita = "gdppc"
	ColPopulation   = "pop"
	ColRegion       = "region"

	ColWorks       = "works"
	ColCitations   = "citations"
	ColPatentCount = "patent_count"
)
