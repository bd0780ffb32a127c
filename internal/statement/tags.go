package statement

import m "StockDashboard/internal/model"

func usd(concept, column string) m.Tag {
	return m.Tag{Concept: concept, Column: column, Unit: m.UnitUSD}
}

// IncomeTags are fetched, in order, for the income statement.
var IncomeTags = []m.Tag{
	usd("Revenues", m.ColRevenue),
	usd("CostOfGoodsAndServicesSold", m.ColCOGS),
	usd("GrossProfit", m.ColGrossProfit),
	usd("ResearchAndDevelopmentExpense", m.ColRnD),
	usd("SellingGeneralAndAdministrativeExpense", m.ColSGA),
	usd("DepreciationDepletionAndAmortization", m.ColDnA),
	usd("InterestExpense", m.ColInterestExpense),
	usd("DirectTaxesAndLicensesCosts", m.ColTax),
	{Concept: "EarningsPerShareBasic", Column: m.ColBasicEPS, Unit: m.UnitUSDPerShare},
	{Concept: "EarningsPerShareDiluted", Column: m.ColDilutedEPS, Unit: m.UnitUSDPerShare},
	usd("NetIncomeLoss", m.ColNetIncome),
}

// BalanceTags are fetched, in order, for the balance sheet.
var BalanceTags = []m.Tag{
	usd("CashAndCashEquivalentsAtCarryingValue", m.ColCash),
	usd("InventoryNet", m.ColInventory),
	usd("AssetsCurrent", m.ColCurrentAssets),
	usd("AssetsNoncurrent", m.ColNonCurrentAssets),
	usd("DebtCurrent", m.ColCurrentDebt),
	usd("AccountsPayableCurrent", m.ColAccountsPayable),
	usd("DeferredRevenueCurrent", m.ColDeferredRevenue),
	usd("LiabilitiesCurrent", m.ColCurrentLiabilities),
	usd("LongTermDebt", m.ColLongTermDebt),
	usd("LiabilitiesNoncurrent", m.ColNonCurrentLiabilities),
	usd("Liabilities", m.ColLiabilities),
	usd("IntangibleAssetsNetExcludingGoodwill", m.ColIntangibleAssets),
	usd("Goodwill", m.ColGoodwill),
}

// CashflowTags are fetched, in order, for the cashflow statement.
var CashflowTags = []m.Tag{
	usd("NetCashProvidedByUsedInOperatingActivities", m.ColCFO),
	usd("NetCashProvidedByUsedInInvestingActivities", m.ColCFI),
	usd("NetCashProvidedByUsedInFinancingActivities", m.ColCFF),
	usd("PaymentsOfDividends", m.ColDividends),
	usd("RepaymentsOfDebt", m.ColDebtRepayment),
	usd("PaymentsForRepurchaseOfCommonStock", m.ColStockRepurchased),
	usd("PaymentsToAcquirePropertyPlantAndEquipment", m.ColCapEx),
}

// SharesTag is fetched once and joined into every statement.
var SharesTag = m.Tag{Concept: "CommonStockSharesOutstanding", Column: m.ColOutstandingShares, Unit: m.UnitShares}

// TagsFor returns the tag list of kind.
func TagsFor(kind m.StatementKind) []m.Tag {
	switch kind {
	case m.Income:
		return IncomeTags
	case m.Balance:
		return BalanceTags
	case m.Cashflow:
		return CashflowTags
	default:
		return nil
	}
}
