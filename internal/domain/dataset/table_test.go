package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovatlas/country-innovation/pkg/errors"
)

func buildWorksTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewBuilder("country_concept").
		AddStrings(ColCountryCode, []string{"BR", "BR", "US"}).
		AddStrings(ColConceptName, []string{"Biology", "Physics", "Biology"}).
		AddNumbers(ColWorks, []float64{10, 20, 300}).
		Build()
	require.NoError(t, err)
	return tbl
}

func TestBuilderBuildsImmutableTable(t *testing.T) {
	tbl := buildWorksTable(t)

	assert.Equal(t, "country_concept", tbl.Name())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{ColCountryCode, ColConceptName, ColWorks}, tbl.Columns())
	assert.True(t, tbl.HasColumn(ColWorks))
	assert.True(t, tbl.IsNumeric(ColWorks))
	assert.False(t, tbl.IsNumeric(ColCountryCode))
}

func TestBuilderRejectsDuplicateColumn(t *testing.T) {
	_, err := NewBuilder("t").
		AddStrings("a", []string{"x"}).
		AddNumbers("a", []float64{1}).
		Build()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDataMalformed))
	assert.Contains(t, err.Error(), `column "a" twice`)
}

func TestBuilderRejectsLengthMismatch(t *testing.T) {
	_, err := NewBuilder("t").
		AddStrings("a", []string{"x", "y"}).
		AddNumbers("b", []float64{1}).
		Build()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDataMalformed))
}

func TestBuilderEmptyTable(t *testing.T) {
	tbl, err := NewBuilder("t").Build()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Empty(t, tbl.Columns())
}

func TestColumnAccessors(t *testing.T) {
	tbl := buildWorksTable(t)

	codes, err := tbl.Strings(ColCountryCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"BR", "BR", "US"}, codes)

	works, err := tbl.Numbers(ColWorks)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 300}, works)

	_, err = tbl.Strings(ColWorks)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDataMalformed))

	_, err = tbl.Numbers("missing")
	require.Error(t, err)

	assert.Equal(t, "Physics", tbl.StringAt(ColConceptName, 1))
	assert.Equal(t, "", tbl.StringAt(ColConceptName, 99))
	assert.Equal(t, 300.0, tbl.NumberAt(ColWorks, 2))
	assert.True(t, math.IsNaN(tbl.NumberAt(ColWorks, -1)))
	assert.True(t, math.IsNaN(tbl.NumberAt(ColCountryCode, 0)))
}

func TestFilterEqual(t *testing.T) {
	tbl := buildWorksTable(t)

	br, err := tbl.FilterEqual(ColCountryCode, "BR")
	require.NoError(t, err)
	assert.Equal(t, 2, br.NumRows())

	works, err := br.Numbers(ColWorks)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, works)

	// The source table is untouched.
	assert.Equal(t, 3, tbl.NumRows())
}

func TestFilterEqualUnknownValueYieldsEmptyTable(t *testing.T) {
	tbl := buildWorksTable(t)

	none, err := tbl.FilterEqual(ColCountryCode, "ZZ")
	require.NoError(t, err)
	assert.Equal(t, 0, none.NumRows())
	assert.Equal(t, tbl.Columns(), none.Columns())
}

func TestFilterEqualIsIdempotent(t *testing.T) {
	tbl := buildWorksTable(t)

	once, err := tbl.FilterEqual(ColCountryCode, "BR")
	require.NoError(t, err)
	twice, err := once.FilterEqual(ColCountryCode, "BR")
	require.NoError(t, err)

	assert.Equal(t, once.NumRows(), twice.NumRows())
	a, err := once.Strings(ColConceptName)
	require.NoError(t, err)
	b, err := twice.Strings(ColConceptName)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFilterEqualOnNumericColumnFails(t *testing.T) {
	tbl := buildWorksTable(t)

	_, err := tbl.FilterEqual(ColWorks, "10")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDataMalformed))
}
