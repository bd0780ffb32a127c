package table

import (
	"fmt"
	"slices"

	"StockDashboard/internal/model"
)

// Outcome is the result of fetching one tag: either a series or the reason
// it was skipped.
type Outcome struct {
	Tag    model.Tag
	Series model.Series
	Err    error
}

// Success builds an outcome carrying a series.
func Success(tag model.Tag, s model.Series) Outcome {
	return Outcome{Tag: tag, Series: s}
}

// Skipped builds an outcome for a tag that produced no series.
func Skipped(tag model.Tag, err error) Outcome {
	return Outcome{Tag: tag, Err: err}
}

// Skip records a tag that did not make it into the table.
type Skip struct {
	Tag    model.Tag
	Reason error
}

func (s Skip) String() string {
	return fmt.Sprintf("%s (%s): %v", s.Tag.Column, s.Tag.Concept, s.Reason)
}

// Align merges s into existing and keeps only the keep columns.
// An empty existing table yields s reindexed into table form.
func Align(existing *Table, s model.Series, keep []string) *Table {
	incoming := FromSeries(s)
	if existing == nil || existing.Empty() {
		return incoming.Select(keep)
	}
	kind := ChooseJoin(existing.Len(), incoming.Len())
	return Merge(existing, incoming, kind).Select(keep)
}

// Aligner folds tag outcomes into a single table. Skipped outcomes never
// contribute a column and never stop the fold.
type Aligner struct {
	table   *Table
	columns []string
	skipped []Skip
}

// NewAligner returns an aligner over an empty table.
func NewAligner() *Aligner {
	return &Aligner{table: New()}
}

// Add folds one outcome. It returns the skip reason, or nil when the series
// became a column.
func (a *Aligner) Add(o Outcome) error {
	if o.Err != nil {
		a.skipped = append(a.skipped, Skip{Tag: o.Tag, Reason: o.Err})
		return o.Err
	}
	if slices.Contains(a.columns, o.Series.Name) {
		err := fmt.Errorf("column %q already merged", o.Series.Name)
		a.skipped = append(a.skipped, Skip{Tag: o.Tag, Reason: err})
		return err
	}
	keep := append(slices.Clone(a.columns), o.Series.Name)
	a.table = Align(a.table, o.Series, keep)
	a.columns = keep
	return nil
}

// Table returns the merged table so far.
func (a *Aligner) Table() *Table { return a.table }

// Skipped returns the outcomes that were dropped, in fold order.
func (a *Aligner) Skipped() []Skip { return slices.Clone(a.skipped) }
