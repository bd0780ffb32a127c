// Package dashboard runs the full pipeline for one ticker: resolve, fetch
// and derive statements, join prices, finalize and render.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"StockDashboard/internal/collector"
	"StockDashboard/internal/metrics"
	m "StockDashboard/internal/model"
	"StockDashboard/internal/statement"
	"StockDashboard/internal/table"
)

// Renderer writes finalized statements for a ticker and returns the output
// location.
type Renderer interface {
	Render(ticker string, finals []*statement.Final) (string, error)
}

// Report summarises one run.
type Report struct {
	RunID       string
	Ticker      string
	CIK         string
	Path        string
	Rows        map[string]int // by statement key
	Skipped     []table.Skip
	PriceJoined bool
	Duration    time.Duration
}

// Summary renders the report as a short multi-line text.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (CIK %s)\n", r.Ticker, r.CIK)
	for _, kind := range m.StatementKinds {
		fmt.Fprintf(&b, "%s: %d periods\n", kind, r.Rows[kind.Key()])
	}
	if r.PriceJoined {
		b.WriteString("Prices: joined\n")
	} else {
		b.WriteString("Prices: unavailable\n")
	}
	fmt.Fprintf(&b, "Skipped tags: %d\n", len(r.Skipped))
	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "  - %s\n", s.Tag.Concept)
	}
	fmt.Fprintf(&b, "Output: %s (%s)", r.Path, r.Duration.Round(time.Millisecond))
	return b.String()
}

// Generator wires the pipeline stages together.
type Generator struct {
	Filings  collector.FilingSource
	Prices   collector.PriceFetcher // optional
	Renderer Renderer
	Metrics  metrics.Recorder
	Log      zerolog.Logger
}

// Generate builds and renders the dashboard of ticker. An unknown ticker
// or a render failure fails the run; missing tags and missing prices do
// not.
func (g *Generator) Generate(ctx context.Context, ticker string) (*Report, error) {
	rec := g.Metrics
	if rec == nil {
		rec = metrics.Noop{}
	}
	start := time.Now()
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	report := &Report{RunID: uuid.NewString(), Ticker: ticker, Rows: make(map[string]int)}
	log := g.Log.With().Str("ticker", ticker).Str("run_id", report.RunID).Logger()
	ctx = log.WithContext(ctx)

	err := g.run(ctx, report, rec, log)
	report.Duration = time.Since(start)
	if err != nil {
		rec.RecordRun("error", report.Duration)
		log.Error().Err(err).Msg("dashboard generation failed")
		return report, err
	}
	rec.RecordRun("ok", report.Duration)
	log.Info().Str("path", report.Path).Int("skipped", len(report.Skipped)).
		Bool("prices", report.PriceJoined).Dur("took", report.Duration).Msg("dashboard generated")
	return report, nil
}

func (g *Generator) run(ctx context.Context, report *Report, rec metrics.Recorder, log zerolog.Logger) error {
	cik, err := g.Filings.Resolve(ctx, report.Ticker)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", report.Ticker, err)
	}
	report.CIK = cik
	log.Info().Str("cik", cik).Msg("ticker resolved")

	st, err := statement.NewAssembler(g.Filings, rec, log).Assemble(ctx, cik)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}
	report.Skipped = st.Skipped

	report.PriceJoined = g.joinPrices(ctx, st, report.Ticker, rec, log)

	finals := statement.FinalizeAll(st)
	for _, f := range finals {
		report.Rows[f.Kind.Key()] = f.Len()
		rec.RecordRows(f.Kind.Key(), f.Len())
	}

	path, err := g.Renderer.Render(report.Ticker, finals)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	report.Path = path
	return nil
}

// joinPrices never fails the run: without prices the Price and Market Cap
// rows are simply absent.
func (g *Generator) joinPrices(ctx context.Context, st *statement.Statements, ticker string, rec metrics.Recorder, log zerolog.Logger) bool {
	if g.Prices == nil {
		return false
	}
	start := time.Now()
	history, err := g.Prices.MonthlyHistory(ctx, ticker)
	rec.RecordFetch(g.Prices.Name(), time.Since(start), err)
	if err != nil {
		log.Warn().Err(err).Msg("price history unavailable")
		return false
	}
	joined, err := statement.JoinMarket(st, history)
	if err != nil {
		log.Warn().Err(err).Msg("price join failed")
		return false
	}
	if !joined {
		log.Warn().Msg("price history empty")
	}
	return joined
}
