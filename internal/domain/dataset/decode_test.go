package dataset

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovatlas/country-innovation/pkg/errors"
)

func encodeParquet(t *testing.T) []byte {
	t.Helper()

	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: ColCountryCode, Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: ColWorks, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: ColPatentCount, Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)

	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()
	rb.Field(0).(*array.StringBuilder).AppendValues([]string{"BR", "US"}, nil)
	rb.Field(1).(*array.Float64Builder).AppendValues([]float64{12.5, 0}, []bool{true, false})
	rb.Field(2).(*array.Int64Builder).AppendValues([]int64{3, 9}, nil)

	rec := rb.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	var buf bytes.Buffer
	err := pqarrow.WriteTable(tbl, &buf, 1024,
		parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeParquet(t *testing.T) {
	data := encodeParquet(t)

	tbl, err := Decode(context.Background(), "country_concept.parquet", data)
	require.NoError(t, err)

	assert.Equal(t, "country_concept", tbl.Name())
	assert.Equal(t, 2, tbl.NumRows())

	codes, err := tbl.Strings(ColCountryCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"BR", "US"}, codes)

	works, err := tbl.Numbers(ColWorks)
	require.NoError(t, err)
	assert.Equal(t, 12.5, works[0])
	assert.True(t, math.IsNaN(works[1]), "numeric null decodes as NaN")

	// Integer columns decode as float64.
	patents, err := tbl.Numbers(ColPatentCount)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 9}, patents)
}

func TestDecodeCSV(t *testing.T) {
	data := []byte("country_code,country_name,works\nBR,Brazil,101\nUS,United States,2002\n")

	tbl, err := Decode(context.Background(), "country_codes.csv", data)
	require.NoError(t, err)

	assert.Equal(t, "country_codes", tbl.Name())
	assert.Equal(t, 2, tbl.NumRows())

	names, err := tbl.Strings(ColCountryName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil", "United States"}, names)

	works, err := tbl.Numbers(ColWorks)
	require.NoError(t, err)
	assert.Equal(t, []float64{101, 2002}, works)
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	tbl, err := Decode(context.Background(), "country_codes.csv", []byte("country_code,country_name\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	_, err := Decode(context.Background(), "country_totals.json", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedFormat))
	assert.Contains(t, err.Error(), "country_totals.json")
}

func TestDecodeTruncatedParquet(t *testing.T) {
	_, err := Decode(context.Background(), "country_totals.parquet", []byte("not parquet at all"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDataMalformed))
}

func TestDecodeExtensionIsCaseInsensitive(t *testing.T) {
	data := encodeParquet(t)
	tbl, err := Decode(context.Background(), "COUNTRY_CONCEPT.PARQUET", data)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
}
