package collector

import (
	"context"

	"StockDashboard/internal/model"
)

// ConceptFetcher returns the raw facts a company reported for one us-gaap
// concept in one unit.
type ConceptFetcher interface {
	Name() string
	FetchConcept(ctx context.Context, cik, concept string, unit model.Unit) ([]model.Fact, error)
}

// EntityResolver maps a ticker symbol to its zero-padded 10 digit CIK.
type EntityResolver interface {
	Resolve(ctx context.Context, ticker string) (string, error)
}

// PriceFetcher returns monthly closing prices, oldest first.
type PriceFetcher interface {
	Name() string
	MonthlyHistory(ctx context.Context, ticker string) ([]model.PricePoint, error)
}

// FilingSource is the combined SEC surface used by the statement assembler.
type FilingSource interface {
	ConceptFetcher
	EntityResolver
}
