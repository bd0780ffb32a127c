package model

// Column names shared by the assembler, the metric rules and the renderer.
const (
	ColPeriodEnd         = "Period End"
	ColPrice             = "Price"
	ColOutstandingShares = "Outstanding Shares"
	ColMarketCap         = "Market Cap"

	// income statement
	ColRevenue          = "Revenue"
	ColRevenueAvg3      = "Revenue Avg3"
	ColCOGS             = "COGS"
	ColGrossProfit      = "Gross Profit"
	ColRnD              = "R&D"
	ColSGA              = "SGA"
	ColOperatingExpense = "Operating expense"
	ColEBIT             = "EBIT"
	ColDnA              = "D&A"
	ColEBITDA           = "EBITDA"
	ColInterestExpense  = "Interest Expense"
	ColTax              = "Tax"
	ColTaxExpense       = "Tax Expense"
	ColNetIncome        = "Net Income"
	ColGrossMargin      = "Gross Margin(%)"
	ColRnDMargin        = "R&D Margin(%)"
	ColSGAMargin        = "SGA Margin(%)"
	ColEBITMargin       = "EBIT Margin(%)"
	ColEBITDAMargin     = "EBITDA Margin(%)"
	ColNetIncomeMargin  = "Net Income Margin(%)"
	ColBasicEPS         = "Basic EPS"
	ColDilutedEPS       = "Diluted EPS"

	// balance sheet
	ColCash                  = "Cash"
	ColInventory             = "Inventory"
	ColCurrentAssets         = "Current Assets"
	ColNonCurrentAssets      = "Non-Current Assets"
	ColAssets                = "Assets"
	ColCurrentDebt           = "Current Debt"
	ColAccountsPayable       = "Accounts Payable"
	ColDeferredRevenue       = "Deferred Revenue"
	ColCurrentLiabilities    = "Current Liabilities"
	ColLongTermDebt          = "Long-term Debt"
	ColNonCurrentLiabilities = "Non Current Liabilities"
	ColLiabilities           = "Liabilities"
	ColIntangibleAssets      = "Intangible Assets"
	ColGoodwill              = "Goodwill"
	ColEquity                = "Stockholders Equity(BV)"
	ColBVPerShare            = "BV/Share"
	ColTangibleBV            = "Tangible BV"
	ColIntangibleBV          = "Intangible BV"
	ColTBVPerShare           = "TBV/Share"

	// cashflow statement
	ColCFO              = "CFO"
	ColCFOAvg3          = "CFO Avg3"
	ColCFI              = "CFI"
	ColCFF              = "CFF"
	ColDividends        = "Dividends"
	ColDebtRepayment    = "Debt Repayment"
	ColStockRepurchased = "Common Stock Repurchased"
	ColNCF              = "NCF"
	ColCapEx            = "CapEx"
	ColFCF              = "FCF"
	ColCFOMargin        = "CFO Margin(%)"
	ColNCFMargin        = "NCF Margin(%)"
	ColFCFMargin        = "FCF Margin(%)"
)
