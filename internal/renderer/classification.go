package renderer

import (
	"slices"

	m "StockDashboard/internal/model"
)

// Class tells the renderer how to colour a metric row.
type Class int

const (
	// Neutral rows are not coloured.
	Neutral Class = iota
	// Positive rows scale from red (low) to green (high).
	Positive
	// Negative rows scale from green (low) to red (high).
	Negative
)

func (c Class) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// Classification lists metric names by how a rising value should be read.
// Names not listed in any group are neutral.
type Classification struct {
	Positive []string `yaml:"positive"`
	Neutral  []string `yaml:"neutral"`
	Negative []string `yaml:"negative"`
}

// DefaultClassification returns the stock classification of every metric
// the dashboard can show.
func DefaultClassification() Classification {
	return Classification{
		Positive: []string{
			m.ColRevenue, m.ColRevenueAvg3, m.ColGrossProfit, m.ColEBIT, m.ColEBITDA,
			m.ColNetIncome, m.ColGrossMargin, m.ColRnDMargin, m.ColEBITMargin, m.ColEBITDAMargin,
			m.ColNetIncomeMargin, m.ColBasicEPS, m.ColDilutedEPS,
			// balance sheet
			m.ColCash, m.ColInventory, m.ColCurrentAssets, m.ColNonCurrentAssets, m.ColAssets, "DeferredRevenueCurrent",
			m.ColEquity, m.ColBVPerShare, m.ColTangibleBV,
			// cashflow
			m.ColCFO, m.ColCFOAvg3, m.ColCFI, m.ColDividends, m.ColDebtRepayment, m.ColStockRepurchased,
			m.ColNCF, m.ColFCF, m.ColCFOMargin, m.ColNCFMargin, m.ColFCFMargin,
		},
		Neutral: []string{
			m.ColPeriodEnd, m.ColPrice, m.ColOutstandingShares, m.ColMarketCap,
			m.ColCOGS, m.ColRnD, m.ColSGA, m.ColDnA, m.ColCapEx,
		},
		Negative: []string{
			m.ColOperatingExpense, m.ColInterestExpense, m.ColTaxExpense, m.ColSGAMargin,
			"DebtCurrent", "AccountsPayableCurrent", m.ColCurrentLiabilities, m.ColLongTermDebt,
			m.ColNonCurrentLiabilities, m.ColLiabilities,
			m.ColCFF,
		},
	}
}

// Of returns the class of metric. Positive takes precedence over negative.
func (c Classification) Of(metric string) Class {
	switch {
	case slices.Contains(c.Positive, metric):
		return Positive
	case slices.Contains(c.Negative, metric):
		return Negative
	default:
		return Neutral
	}
}

// Empty reports whether no metric is classified.
func (c Classification) Empty() bool {
	return len(c.Positive) == 0 && len(c.Neutral) == 0 && len(c.Negative) == 0
}
