package collector

import (
	"context"
	"fmt"
	"strings"

	"StockDashboard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// It implements every fetch interface of this package.
type MockFetcher struct {
	// CIKs maps upper-case tickers to CIKs.
	CIKs map[string]string
	// Facts maps concept names to the facts returned for any CIK.
	Facts map[string][]model.Fact
	// Errors maps concept names to a forced fetch error.
	Errors map[string]error
	// Prices is returned by MonthlyHistory unless PriceErr is set.
	Prices   []model.PricePoint
	PriceErr error

	// Requested records every concept asked for, in order.
	Requested []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Resolve(_ context.Context, ticker string) (string, error) {
	if cik, ok := m.CIKs[strings.ToUpper(ticker)]; ok {
		return cik, nil
	}
	return "", fmt.Errorf("%s: %w", ticker, ErrUnknownTicker)
}

func (m *MockFetcher) FetchConcept(_ context.Context, _ string, concept string, _ model.Unit) ([]model.Fact, error) {
	m.Requested = append(m.Requested, concept)
	if err, ok := m.Errors[concept]; ok {
		return nil, err
	}
	facts, ok := m.Facts[concept]
	if !ok {
		return nil, fmt.Errorf("concept %s: %w", concept, ErrNoData)
	}
	return facts, nil
}

func (m *MockFetcher) MonthlyHistory(_ context.Context, _ string) ([]model.PricePoint, error) {
	if m.PriceErr != nil {
		return nil, m.PriceErr
	}
	return m.Prices, nil
}

// AnnualFacts builds one 10-K fact per period end, framed like the SEC
// annual frames, with values in raw units. pairs alternates period end and
// value.
func AnnualFacts(pairs ...any) []model.Fact {
	facts := make([]model.Fact, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		end := pairs[i].(string)
		var v float64
		switch n := pairs[i+1].(type) {
		case int:
			v = float64(n)
		case float64:
			v = n
		}
		facts = append(facts, model.Fact{
			PeriodEnd: end,
			Value:     v,
			Form:      "10-K",
			Frame:     "CY" + end[:4],
			Filed:     end,
		})
	}
	return facts
}
