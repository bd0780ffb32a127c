package statement

import (
	"slices"

	m "StockDashboard/internal/model"
	"StockDashboard/internal/table"
)

// Period labels one row of a final table.
type Period struct {
	Year      string // first four characters of the period end
	PeriodEnd string // the period end from its sixth character on, e.g. "12-31"
}

// Final is a statement ready for rendering: rows labelled by year, columns
// in table order.
type Final struct {
	Kind    m.StatementKind
	Periods []Period
	Columns []string
	Values  map[string][]float64
}

// Finalize relabels t by year and splits off the display period end. It
// must run after the market join, which matches on the full period end.
func Finalize(kind m.StatementKind, t *table.Table) *Final {
	keys := t.Keys()
	f := &Final{
		Kind:    kind,
		Periods: make([]Period, len(keys)),
		Columns: t.Columns(),
		Values:  make(map[string][]float64, len(t.Columns())),
	}
	for i, k := range keys {
		f.Periods[i] = splitPeriod(k)
	}
	for _, c := range f.Columns {
		f.Values[c] = t.Column(c)
	}
	return f
}

func splitPeriod(key string) Period {
	p := Period{Year: key}
	if len(key) >= 4 {
		p.Year = key[:4]
	}
	if len(key) > 5 {
		p.PeriodEnd = key[5:]
	}
	return p
}

// Has reports whether column exists.
func (f *Final) Has(column string) bool { return slices.Contains(f.Columns, column) }

// Column returns the values of column, or nil when it does not exist.
func (f *Final) Column(column string) []float64 { return f.Values[column] }

// Len returns the number of rows.
func (f *Final) Len() int { return len(f.Periods) }

// FinalizeAll finalizes every statement in processing order.
func FinalizeAll(st *Statements) []*Final {
	out := make([]*Final, 0, len(m.StatementKinds))
	for _, kind := range m.StatementKinds {
		out = append(out, Finalize(kind, st.Get(kind)))
	}
	return out
}
