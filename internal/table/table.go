// Package table holds period-keyed statement tables and the series aligner
// that builds them.
package table

import (
	"fmt"
	"math"
	"slices"

	"StockDashboard/internal/model"
)

// Table is a set of named float columns over rows keyed by period end.
// Row order is significant and is never re-sorted. Null cells are NaN.
type Table struct {
	keys    []string
	index   map[string]int
	columns []string
	data    map[string][]float64
}

// New returns an empty table.
func New() *Table {
	return &Table{
		index: make(map[string]int),
		data:  make(map[string][]float64),
	}
}

// FromSeries reindexes a series into a single-column table.
// Later observations for an already seen period end replace earlier ones.
func FromSeries(s model.Series) *Table {
	t := New()
	values := make([]float64, 0, len(s.Observations))
	for _, o := range s.Observations {
		if i, ok := t.index[o.PeriodEnd]; ok {
			values[i] = o.Value
			continue
		}
		t.index[o.PeriodEnd] = len(t.keys)
		t.keys = append(t.keys, o.PeriodEnd)
		values = append(values, o.Value)
	}
	t.columns = []string{s.Name}
	t.data[s.Name] = values
	return t
}

// Null reports whether v is a null cell.
func Null(v float64) bool { return math.IsNaN(v) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.keys) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.keys) == 0 }

// Keys returns the period-end keys in row order.
func (t *Table) Keys() []string { return slices.Clone(t.keys) }

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Has reports whether every named column exists.
func (t *Table) Has(cols ...string) bool {
	for _, c := range cols {
		if _, ok := t.data[c]; !ok {
			return false
		}
	}
	return true
}

// Column returns a copy of the named column, or nil when it does not exist.
func (t *Table) Column(name string) []float64 {
	v, ok := t.data[name]
	if !ok {
		return nil
	}
	return slices.Clone(v)
}

// Value returns the cell at (key, column).
func (t *Table) Value(key, column string) (float64, bool) {
	i, ok := t.index[key]
	if !ok {
		return math.NaN(), false
	}
	col, ok := t.data[column]
	if !ok {
		return math.NaN(), false
	}
	return col[i], true
}

// Set adds or replaces a column. values must have one entry per row.
func (t *Table) Set(name string, values []float64) error {
	if len(values) != len(t.keys) {
		return fmt.Errorf("column %q: got %d values for %d rows", name, len(values), len(t.keys))
	}
	if _, ok := t.data[name]; !ok {
		t.columns = append(t.columns, name)
	}
	t.data[name] = slices.Clone(values)
	return nil
}

// Select returns a table restricted to the named columns, in the given order.
// Names that are not columns of t are ignored.
func (t *Table) Select(cols []string) *Table {
	out := t.shell(t.keys)
	for _, c := range cols {
		if v, ok := t.data[c]; ok && !slices.Contains(out.columns, c) {
			out.columns = append(out.columns, c)
			out.data[c] = slices.Clone(v)
		}
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return t.Select(t.columns)
}

// shell returns an empty-columned table over the given keys.
func (t *Table) shell(keys []string) *Table {
	out := New()
	out.keys = slices.Clone(keys)
	for i, k := range out.keys {
		out.index[k] = i
	}
	return out
}

// nulls returns a NaN-filled slice.
func nulls(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}
