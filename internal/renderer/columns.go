package renderer

import m "StockDashboard/internal/model"

// The row order of each sheet. Names that no statement produces, such as
// "DebtCurrent" or "Tax Expense", are kept so the layout stays stable; such
// rows are dropped like any other absent column.
var (
	incomeOrder = []string{
		m.ColPeriodEnd, m.ColPrice, m.ColOutstandingShares, m.ColMarketCap, m.ColRevenue, m.ColRevenueAvg3,
		m.ColCOGS, m.ColGrossProfit, m.ColRnD, m.ColSGA, m.ColOperatingExpense, m.ColEBIT, m.ColDnA, m.ColEBITDA,
		m.ColInterestExpense, m.ColTaxExpense, m.ColNetIncome, m.ColGrossMargin, m.ColRnDMargin,
		m.ColSGAMargin, m.ColEBITMargin, m.ColEBITDAMargin, m.ColNetIncomeMargin,
		m.ColBasicEPS, m.ColDilutedEPS,
	}
	balanceOrder = []string{
		m.ColPeriodEnd, m.ColPrice, m.ColOutstandingShares, m.ColMarketCap, m.ColCash, m.ColInventory,
		m.ColCurrentAssets, m.ColNonCurrentAssets, m.ColAssets, "DebtCurrent", "AccountsPayableCurrent",
		"DeferredRevenueCurrent", m.ColCurrentLiabilities, m.ColLongTermDebt,
		m.ColNonCurrentLiabilities, m.ColLiabilities, m.ColEquity, m.ColBVPerShare,
		m.ColTangibleBV, m.ColTBVPerShare,
	}
	cashflowOrder = []string{
		m.ColPeriodEnd, m.ColPrice, m.ColOutstandingShares, m.ColMarketCap, m.ColCFO, m.ColCFOAvg3, m.ColCFI, m.ColCFF,
		m.ColDividends, m.ColDebtRepayment, m.ColStockRepurchased, m.ColNCF, m.ColCapEx, m.ColFCF,
		m.ColCFOMargin, m.ColNCFMargin, m.ColFCFMargin,
	}
)

// ColumnOrder returns the metric order of the sheet for kind.
func ColumnOrder(kind m.StatementKind) []string {
	switch kind {
	case m.Income:
		return incomeOrder
	case m.Balance:
		return balanceOrder
	case m.Cashflow:
		return cashflowOrder
	default:
		return nil
	}
}
