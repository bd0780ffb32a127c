package calculator

import (
	m "StockDashboard/internal/model"
)

// IncomeRules derives revenue smoothing, operating profit and margins.
// The order matters: Operating expense feeds EBIT which feeds EBITDA.
var IncomeRules = []Rule{
	AsFallback(Sum(m.ColRevenue, m.ColGrossProfit, m.ColCOGS)),
	Average(m.ColRevenueAvg3, m.ColRevenue, 3),
	Margin(m.ColGrossMargin, m.ColGrossProfit, m.ColRevenue),
	Sum(m.ColOperatingExpense, m.ColRnD, m.ColSGA),
	Difference(m.ColEBIT, m.ColGrossProfit, m.ColOperatingExpense),
	Sum(m.ColEBITDA, m.ColEBIT, m.ColDnA),
	Margin(m.ColRnDMargin, m.ColRnD, m.ColRevenue),
	Margin(m.ColSGAMargin, m.ColSGA, m.ColRevenue),
	Margin(m.ColEBITMargin, m.ColEBIT, m.ColRevenue),
	Margin(m.ColEBITDAMargin, m.ColEBITDA, m.ColRevenue),
	Margin(m.ColNetIncomeMargin, m.ColNetIncome, m.ColRevenue),
}

// BalanceRules derives totals and book value.
var BalanceRules = []Rule{
	Difference(m.ColNonCurrentLiabilities, m.ColLiabilities, m.ColCurrentLiabilities),
	Sum(m.ColAssets, m.ColCurrentAssets, m.ColNonCurrentAssets),
	Difference(m.ColEquity, m.ColAssets, m.ColLiabilities),
	Difference(m.ColTangibleBV, m.ColAssets, m.ColIntangibleAssets, m.ColGoodwill),
}

// CashflowRules derives net and free cash flow.
var CashflowRules = []Rule{
	Sum(m.ColNCF, m.ColCFO, m.ColCFI, m.ColCFF),
	Difference(m.ColFCF, m.ColCFO, m.ColCapEx),
	Average(m.ColCFOAvg3, m.ColCFO, 3),
}

// PerShareRules run on the balance sheet once outstanding shares are joined.
// TBV/Share reads "Intangible BV", a column no statement produces, so it only
// fires if a caller supplies that column.
var PerShareRules = []Rule{
	PerShare(m.ColBVPerShare, m.ColEquity, m.ColOutstandingShares),
	{
		Output: m.ColTBVPerShare,
		Inputs: []string{m.ColEquity, m.ColIntangibleBV, m.ColOutstandingShares},
		Compute: elementwise(func(v []float64) float64 {
			return Round((v[0]-v[1])/v[2], 1)
		}),
	},
}

// CashflowMarginRules run on the cashflow statement left-joined with the
// income statement, which supplies Revenue.
var CashflowMarginRules = []Rule{
	Margin(m.ColCFOMargin, m.ColCFO, m.ColRevenue),
	Margin(m.ColNCFMargin, m.ColNCF, m.ColRevenue),
	Margin(m.ColFCFMargin, m.ColFCF, m.ColRevenue),
}

// MarketRules run on every statement after the price join.
var MarketRules = []Rule{
	Product(m.ColMarketCap, m.ColPrice, m.ColOutstandingShares),
}

// RulesFor returns the statement-local rules of kind.
func RulesFor(kind m.StatementKind) []Rule {
	switch kind {
	case m.Income:
		return IncomeRules
	case m.Balance:
		return BalanceRules
	case m.Cashflow:
		return CashflowRules
	default:
		return nil
	}
}
