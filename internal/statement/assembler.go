// Package statement assembles the three financial statements of a company
// from per-concept filings, joins market prices and prepares them for
// rendering.
package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"StockDashboard/internal/calculator"
	"StockDashboard/internal/collector"
	"StockDashboard/internal/metrics"
	m "StockDashboard/internal/model"
	"StockDashboard/internal/table"
)

// Statements holds one table per statement kind.
type Statements struct {
	Income   *table.Table
	Balance  *table.Table
	Cashflow *table.Table
	// Skipped lists every tag that produced no column, in fetch order.
	Skipped []table.Skip
}

// Get returns the table of kind.
func (s *Statements) Get(kind m.StatementKind) *table.Table {
	switch kind {
	case m.Income:
		return s.Income
	case m.Balance:
		return s.Balance
	case m.Cashflow:
		return s.Cashflow
	default:
		return nil
	}
}

// Set replaces the table of kind.
func (s *Statements) Set(kind m.StatementKind, t *table.Table) {
	switch kind {
	case m.Income:
		s.Income = t
	case m.Balance:
		s.Balance = t
	case m.Cashflow:
		s.Cashflow = t
	}
}

// Assembler builds statements from a concept fetcher.
type Assembler struct {
	Source  collector.ConceptFetcher
	Metrics metrics.Recorder
	Log     zerolog.Logger
}

// NewAssembler creates an assembler. A nil recorder discards metrics.
func NewAssembler(src collector.ConceptFetcher, rec metrics.Recorder, logger zerolog.Logger) *Assembler {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &Assembler{Source: src, Metrics: rec, Log: logger}
}

// Assemble fetches every statement of cik and derives its metrics. Tags
// that fail are skipped and reported; only a cancelled context aborts.
func (a *Assembler) Assemble(ctx context.Context, cik string) (*Statements, error) {
	st := &Statements{}

	for _, kind := range m.StatementKinds {
		t, skipped, err := a.statement(ctx, cik, kind)
		if err != nil {
			return nil, err
		}
		st.Skipped = append(st.Skipped, skipped...)

		fired, err := calculator.Apply(t, calculator.RulesFor(kind))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind.Key(), err)
		}
		a.Log.Debug().Str("statement", kind.Key()).Strs("derived", fired).Int("rows", t.Len()).Msg("statement assembled")
		st.Set(kind, t)
	}

	shares, err := a.fetch(ctx, cik, SharesTag)
	switch {
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil:
		a.skip(SharesTag, "shares", err)
		st.Skipped = append(st.Skipped, table.Skip{Tag: SharesTag, Reason: err})
	default:
		a.Metrics.RecordTag("shares", "ok")
		sharesTable := table.FromSeries(shares)
		for _, kind := range m.StatementKinds {
			st.Set(kind, table.LeftJoin(st.Get(kind), sharesTable))
		}
	}

	if err := a.crossStatement(st); err != nil {
		return nil, err
	}
	return st, nil
}

// statement folds every tag of kind into one table.
func (a *Assembler) statement(ctx context.Context, cik string, kind m.StatementKind) (*table.Table, []table.Skip, error) {
	aligner := table.NewAligner()
	for _, tag := range TagsFor(kind) {
		s, err := a.fetch(ctx, cik, tag)
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		var outcome table.Outcome
		if err != nil {
			outcome = table.Skipped(tag, err)
		} else {
			outcome = table.Success(tag, s)
		}
		if err := aligner.Add(outcome); err != nil {
			a.skip(tag, kind.Key(), err)
			continue
		}
		a.Metrics.RecordTag(kind.Key(), "ok")
	}
	return aligner.Table(), aligner.Skipped(), nil
}

func (a *Assembler) fetch(ctx context.Context, cik string, tag m.Tag) (m.Series, error) {
	start := time.Now()
	facts, err := a.Source.FetchConcept(ctx, cik, tag.Concept, tag.Unit)
	a.Metrics.RecordFetch(a.Source.Name(), time.Since(start), err)
	if err != nil {
		return m.Series{}, err
	}
	return collector.BuildSeries(tag, facts)
}

func (a *Assembler) skip(tag m.Tag, statement string, err error) {
	a.Metrics.RecordTag(statement, "skipped")
	a.Log.Warn().Err(err).Str("statement", statement).Str("tag", tag.Concept).Msg("tag skipped")
}

// crossStatement derives the metrics that need more than one statement:
// per-share book values on the balance sheet and cash flow margins, which
// read Revenue from the income statement joined on period end.
func (a *Assembler) crossStatement(st *Statements) error {
	fired, err := calculator.Apply(st.Balance, calculator.PerShareRules)
	if err != nil {
		return fmt.Errorf("balance per share: %w", err)
	}

	joined := table.LeftJoin(st.Cashflow, st.Income.Select([]string{m.ColRevenue}))
	margins, err := calculator.Apply(joined, calculator.CashflowMarginRules)
	if err != nil {
		return fmt.Errorf("cashflow margins: %w", err)
	}
	for _, name := range margins {
		if err := st.Cashflow.Set(name, joined.Column(name)); err != nil {
			return fmt.Errorf("cashflow margins: %w", err)
		}
	}

	a.Log.Debug().Strs("balance", fired).Strs("cashflow", margins).Msg("cross statement metrics")
	return nil
}
