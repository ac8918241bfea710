package dataset

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/csv"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"github.com/innovatlas/country-innovation/pkg/errors"
)

// Decode turns the raw bytes of a dataset object into a Table.  The decoder
// is chosen by the object key's extension: ".parquet" or ".csv".  Any other
// extension is a configuration bug and yields CodeUnsupportedFormat.
func Decode(ctx context.Context, objectKey string, data []byte) (*Table, error) {
	name := strings.TrimSuffix(path.Base(objectKey), path.Ext(objectKey))

	switch strings.ToLower(path.Ext(objectKey)) {
	case ".parquet":
		return decodeParquet(ctx, name, data)
	case ".csv":
		return decodeCSV(name, data)
	default:
		return nil, errors.UnsupportedFormat("file format not supported").
			WithDetail("object=" + objectKey)
	}
}

func decodeParquet(ctx context.Context, name string, data []byte) (*Table, error) {
	pf, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataMalformed,
			fmt.Sprintf("failed to open parquet object for dataset %s", name))
	}
	defer pf.Close()

	rdr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataMalformed,
			fmt.Sprintf("failed to read parquet schema for dataset %s", name))
	}

	tbl, err := rdr.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataMalformed,
			fmt.Sprintf("failed to decode parquet data for dataset %s", name))
	}
	defer tbl.Release()

	b := NewBuilder(name)
	for i, f := range tbl.Schema().Fields() {
		if err := appendArrowColumn(b, name, f, tbl.Column(i).Data().Chunks(), int(tbl.NumRows())); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func decodeCSV(name string, data []byte) (*Table, error) {
	// Chunk size -1 reads the whole object into a single record, which is
	// fine at these dataset sizes (tens of thousands of rows).
	rdr := csv.NewInferringReader(bytes.NewReader(data),
		csv.WithHeader(true),
		csv.WithChunk(-1),
	)
	defer rdr.Release()

	if !rdr.Next() {
		if err := rdr.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CodeDataMalformed,
				fmt.Sprintf("failed to decode csv data for dataset %s", name))
		}
		// Header-only or empty object: zero-row table with no columns.
		return NewBuilder(name).Build()
	}
	rec := rdr.Record()
	rec.Retain()
	defer rec.Release()

	b := NewBuilder(name)
	for i, f := range rec.Schema().Fields() {
		if err := appendArrowColumn(b, name, f, []arrow.Array{rec.Column(i)}, int(rec.NumRows())); err != nil {
			return nil, err
		}
	}
	if rdr.Err() != nil {
		return nil, errors.Wrap(rdr.Err(), errors.CodeDataMalformed,
			fmt.Sprintf("failed to decode csv data for dataset %s", name))
	}
	return b.Build()
}

// appendArrowColumn converts one arrow column (possibly chunked) into a
// Table column.  String-typed fields become categorical columns with nulls
// as ""; numeric fields become float64 columns with nulls as NaN.
func appendArrowColumn(b *Builder, table string, f arrow.Field, chunks []arrow.Array, rows int) error {
	switch f.Type.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		vals := make([]string, 0, rows)
		for _, chunk := range chunks {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					vals = append(vals, "")
					continue
				}
				switch arr := chunk.(type) {
				case *array.String:
					vals = append(vals, arr.Value(i))
				case *array.LargeString:
					vals = append(vals, arr.Value(i))
				default:
					return columnTypeError(table, f.Name, chunk)
				}
			}
		}
		b.AddStrings(f.Name, vals)
		return nil

	case arrow.FLOAT64, arrow.FLOAT32,
		arrow.INT64, arrow.INT32, arrow.INT16, arrow.INT8,
		arrow.UINT64, arrow.UINT32, arrow.UINT16, arrow.UINT8:
		vals := make([]float64, 0, rows)
		for _, chunk := range chunks {
			converted, err := numericValues(table, f.Name, chunk)
			if err != nil {
				return err
			}
			vals = append(vals, converted...)
		}
		b.AddNumbers(f.Name, vals)
		return nil

	default:
		return errors.New(errors.CodeDataMalformed,
			fmt.Sprintf("dataset %s column %q has unsupported type %s", table, f.Name, f.Type))
	}
}

func numericValues(table, column string, chunk arrow.Array) ([]float64, error) {
	out := make([]float64, chunk.Len())
	set := func(i int, v float64) {
		if chunk.IsNull(i) {
			out[i] = nan
			return
		}
		out[i] = v
	}

	switch arr := chunk.(type) {
	case *array.Float64:
		for i := range out {
			set(i, arr.Value(i))
		}
	case *array.Float32:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Int64:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Int32:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Int16:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Int8:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Uint64:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Uint32:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Uint16:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	case *array.Uint8:
		for i := range out {
			set(i, float64(arr.Value(i)))
		}
	default:
		return nil, columnTypeError(table, column, chunk)
	}
	return out, nil
}

func columnTypeError(table, column string, chunk arrow.Array) error {
	return errors.New(errors.CodeDataMalformed,
		fmt.Sprintf("dataset %s column %q has unsupported array type %s",
			table, column, chunk.DataType()))
}
