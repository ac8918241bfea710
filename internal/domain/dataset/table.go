package dataset

import (
	"fmt"
	"math"

	"github.com/innovatlas/country-innovation/pkg/errors"
)

// nan marks numeric nulls after decoding.
var nan = math.NaN()

// Table is an immutable, in-memory columnar table.  Columns are either
// categorical (string) or numeric (float64); numeric nulls are NaN and
// string nulls are the empty string, matching how the upstream export
// behaves after a round-trip through parquet.
//
// A Table is never mutated after construction: filters and projections
// return fresh Tables sharing no mutable state with their source.
type Table struct {
	name    string
	columns []string
	index   map[string]int

	strs map[string][]string
	nums map[string][]float64
	rows int
}

// Name returns the dataset name the table was decoded from.
func (t *Table) Name() string { return t.name }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// Columns returns the column names in schema order.  The returned slice is
// shared; callers must not modify it.
func (t *Table) Columns() []string { return t.columns }

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// IsNumeric reports whether the named column exists and is numeric.
func (t *Table) IsNumeric(name string) bool {
	_, ok := t.nums[name]
	return ok
}

// Strings returns the values of a categorical column.  The returned slice is
// shared with the table; callers must not modify it.
func (t *Table) Strings(name string) ([]string, error) {
	vals, ok := t.strs[name]
	if !ok {
		return nil, errors.New(errors.CodeDataMalformed,
			fmt.Sprintf("dataset %s has no categorical column %q", t.name, name))
	}
	return vals, nil
}

// Numbers returns the values of a numeric column.  The returned slice is
// shared with the table; callers must not modify it.
func (t *Table) Numbers(name string) ([]float64, error) {
	vals, ok := t.nums[name]
	if !ok {
		return nil, errors.New(errors.CodeDataMalformed,
			fmt.Sprintf("dataset %s has no numeric column %q", t.name, name))
	}
	return vals, nil
}

// StringAt returns the value of a categorical column at row i, or "" when
// the column is absent or numeric.
func (t *Table) StringAt(name string, i int) string {
	if vals, ok := t.strs[name]; ok && i >= 0 && i < len(vals) {
		return vals[i]
	}
	return ""
}

// NumberAt returns the value of a numeric column at row i, or NaN when the
// column is absent or categorical.
func (t *Table) NumberAt(name string, i int) float64 {
	if vals, ok := t.nums[name]; ok && i >= 0 && i < len(vals) {
		return vals[i]
	}
	return math.NaN()
}

// FilterEqual returns a fresh Table containing exactly the rows whose value
// in the named categorical column equals want.  An empty result is a
// legitimate state, not an error: a country with no rows in a table yields a
// zero-row Table that downstream chart builders render as an empty chart.
// Filtering an already-filtered single-value table by the same value is a
// no-op (idempotent).
func (t *Table) FilterEqual(column, want string) (*Table, error) {
	vals, err := t.Strings(column)
	if err != nil {
		return nil, err
	}

	keep := make([]int, 0, len(vals))
	for i, v := range vals {
		if v == want {
			keep = append(keep, i)
		}
	}
	return t.project(keep), nil
}

// project builds a fresh Table from the given row indices.
func (t *Table) project(rows []int) *Table {
	out := &Table{
		name:    t.name,
		columns: t.columns,
		index:   t.index,
		strs:    make(map[string][]string, len(t.strs)),
		nums:    make(map[string][]float64, len(t.nums)),
		rows:    len(rows),
	}
	for name, vals := range t.strs {
		picked := make([]string, len(rows))
		for j, i := range rows {
			picked[j] = vals[i]
		}
		out.strs[name] = picked
	}
	for name, vals := range t.nums {
		picked := make([]float64, len(rows))
		for j, i := range rows {
			picked[j] = vals[i]
		}
		out.nums[name] = picked
	}
	return out
}

// Builder assembles a Table column by column.  Used by the decoders and by
// tests; the resulting Table is immutable.
type Builder struct {
	table *Table
	err   error
}

// NewBuilder starts a Table for the named dataset.
func NewBuilder(name string) *Builder {
	return &Builder{table: &Table{
		name:  name,
		index: make(map[string]int),
		strs:  make(map[string][]string),
		nums:  make(map[string][]float64),
		rows:  -1,
	}}
}

func (b *Builder) addColumn(name string, length int) bool {
	if b.err != nil {
		return false
	}
	if _, dup := b.table.index[name]; dup {
		b.err = errors.New(errors.CodeDataMalformed,
			fmt.Sprintf("dataset %s declares column %q twice", b.table.name, name))
		return false
	}
	if b.table.rows >= 0 && b.table.rows != length {
		b.err = errors.New(errors.CodeDataMalformed,
			fmt.Sprintf("dataset %s column %q has %d rows, expected %d",
				b.table.name, name, length, b.table.rows))
		return false
	}
	b.table.rows = length
	b.table.index[name] = len(b.table.columns)
	b.table.columns = append(b.table.columns, name)
	return true
}

// AddStrings appends a categorical column.
func (b *Builder) AddStrings(name string, vals []string) *Builder {
	if b.addColumn(name, len(vals)) {
		b.table.strs[name] = vals
	}
	return b
}

// AddNumbers appends a numeric column.
func (b *Builder) AddNumbers(name string, vals []float64) *Builder {
	if b.addColumn(name, len(vals)) {
		b.table.nums[name] = vals
	}
	return b
}

// Build returns the assembled Table or the first construction error.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.table.rows < 0 {
		b.table.rows = 0
	}
	return b.table, nil
}
