package collector

import (
	"fmt"
	"slices"
	"strings"

	"StockDashboard/internal/model"
)

// annualForms are the filing forms whose facts are kept.
var annualForms = []string{"10-K", "10-K/A", "8-K"}

// keepFrame accepts calendar-year frames ("CY2023") and instant frames
// ("CY2023Q4I"). Facts without a frame are duplicates of framed ones.
func keepFrame(frame string) bool {
	return len(frame) == 6 || len(frame) == 9
}

// Observations filters raw facts to annual filings, rescales them for unit,
// keeps the last fact reported for each period end and orders the result by
// period end.
func Observations(facts []model.Fact, unit model.Unit) []model.Observation {
	scale := unit.Scale()
	latest := make(map[string]model.Observation)
	for _, f := range facts {
		if !slices.Contains(annualForms, f.Form) || !keepFrame(f.Frame) {
			continue
		}
		latest[f.PeriodEnd] = model.Observation{
			PeriodEnd: f.PeriodEnd,
			Value:     f.Value / scale,
			Unit:      unit,
		}
	}

	out := make([]model.Observation, 0, len(latest))
	for _, o := range latest {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b model.Observation) int {
		return strings.Compare(a.PeriodEnd, b.PeriodEnd)
	})
	return out
}

// BuildSeries turns the facts of tag into a named series. A tag whose facts
// are all filtered out yields ErrNoData.
func BuildSeries(tag model.Tag, facts []model.Fact) (model.Series, error) {
	obs := Observations(facts, tag.Unit)
	if len(obs) == 0 {
		return model.Series{}, fmt.Errorf("%s: %w", tag.Concept, ErrNoData)
	}
	return model.Series{Name: tag.Column, Observations: obs}, nil
}
