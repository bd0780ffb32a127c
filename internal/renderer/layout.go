package renderer

import (
	"math"

	m "StockDashboard/internal/model"
	"StockDashboard/internal/statement"
)

// Row is one metric of a sheet, with one cell per year.
type Row struct {
	Metric string
	Class  Class
	// Text is set for the period end row, Values for every other row.
	Text   []string
	Values []float64
}

// Sheet is a statement transposed for display: metrics top to bottom,
// years left to right.
type Sheet struct {
	Name  string
	Years []string
	Rows  []Row
}

// Layout orders the columns of f for display and transposes them. Columns
// that are absent or entirely null are dropped.
func Layout(f *statement.Final, classes Classification) Sheet {
	sh := Sheet{Name: f.Kind.String(), Years: make([]string, f.Len())}
	for i, p := range f.Periods {
		sh.Years[i] = p.Year
	}

	for _, metric := range ColumnOrder(f.Kind) {
		if metric == m.ColPeriodEnd {
			if f.Len() == 0 {
				continue
			}
			text := make([]string, f.Len())
			for i, p := range f.Periods {
				text[i] = p.PeriodEnd
			}
			sh.Rows = append(sh.Rows, Row{Metric: metric, Class: classes.Of(metric), Text: text})
			continue
		}
		values := f.Column(metric)
		if values == nil || allNull(values) {
			continue
		}
		sh.Rows = append(sh.Rows, Row{Metric: metric, Class: classes.Of(metric), Values: values})
	}
	return sh
}

// MetricWidth is the length of the longest metric name.
func (s Sheet) MetricWidth() int {
	w := 0
	for _, r := range s.Rows {
		w = max(w, len(r.Metric))
	}
	return w
}

// Metrics returns the row names in order.
func (s Sheet) Metrics() []string {
	out := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Metric
	}
	return out
}

func allNull(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
