package statement

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDashboard/internal/collector"
	m "StockDashboard/internal/model"
)

const cik = "0000000042"

func newMock() *collector.MockFetcher {
	return &collector.MockFetcher{
		CIKs: map[string]string{"ACME": cik},
		Facts: map[string][]m.Fact{
			"Revenues":      collector.AnnualFacts("2022-12-31", 100e9, "2023-12-31", 120e9),
			"GrossProfit":   collector.AnnualFacts("2022-12-31", 40e9, "2023-12-31", 50e9),
			"NetIncomeLoss": collector.AnnualFacts("2022-12-31", 10e9, "2023-12-31", 15e9),

			"AssetsCurrent":    collector.AnnualFacts("2022-12-31", 100e9, "2023-12-31", 110e9),
			"AssetsNoncurrent": collector.AnnualFacts("2022-12-31", 200e9, "2023-12-31", 210e9),
			"Liabilities":      collector.AnnualFacts("2022-12-31", 150e9, "2023-12-31", 160e9),

			"NetCashProvidedByUsedInOperatingActivities": collector.AnnualFacts(
				"2021-12-31", 20e9, "2022-12-31", 30e9, "2023-12-31", 36e9),
			"PaymentsToAcquirePropertyPlantAndEquipment": collector.AnnualFacts(
				"2021-12-31", 5e9, "2022-12-31", 6e9, "2023-12-31", 6e9),

			"CommonStockSharesOutstanding": collector.AnnualFacts("2022-12-31", 16e9, "2023-12-31", 16e9),
		},
	}
}

func assemble(t *testing.T, src *collector.MockFetcher) *Statements {
	t.Helper()
	st, err := NewAssembler(src, nil, zerolog.Nop()).Assemble(context.Background(), cik)
	require.NoError(t, err)
	return st
}

func TestAssemble_DerivesAcrossStatements(t *testing.T) {
	st := assemble(t, newMock())

	assert.Equal(t, []string{"2022-12-31", "2023-12-31"}, st.Income.Keys())
	assert.Equal(t, []float64{40, 41.7}, st.Income.Column(m.ColGrossMargin))
	assert.Equal(t, []float64{10, 12.5}, st.Income.Column(m.ColNetIncomeMargin))
	assert.Equal(t, []float64{16000, 16000}, st.Income.Column(m.ColOutstandingShares))

	assert.Equal(t, []float64{150000, 160000}, st.Balance.Column(m.ColEquity))
	assert.Equal(t, []float64{9.4, 10}, st.Balance.Column(m.ColBVPerShare))
	assert.False(t, st.Balance.Has(m.ColTBVPerShare))
	assert.False(t, st.Balance.Has(m.ColTangibleBV))

	assert.Equal(t, []string{"2021-12-31", "2022-12-31", "2023-12-31"}, st.Cashflow.Keys())
	assert.Equal(t, []float64{15000, 24000, 30000}, st.Cashflow.Column(m.ColFCF))
	cfoMargin := st.Cashflow.Column(m.ColCFOMargin)
	assert.True(t, math.IsNaN(cfoMargin[0]))
	assert.Equal(t, []float64{30, 30}, cfoMargin[1:])
	assert.Equal(t, []float64{24, 25}, st.Cashflow.Column(m.ColFCFMargin)[1:])
	assert.False(t, st.Cashflow.Has(m.ColNCFMargin))
	assert.False(t, st.Cashflow.Has(m.ColRevenue), "revenue is only borrowed for the margins")
	assert.True(t, math.IsNaN(st.Cashflow.Column(m.ColOutstandingShares)[0]))
}

func TestAssemble_SkippedTagsAreReported(t *testing.T) {
	src := newMock()
	src.Errors = map[string]error{"GrossProfit": errors.New("status 500")}
	st := assemble(t, src)

	assert.False(t, st.Income.Has(m.ColGrossProfit))
	assert.False(t, st.Income.Has(m.ColGrossMargin))
	assert.True(t, st.Income.Has(m.ColNetIncomeMargin))

	var skipped []string
	for _, s := range st.Skipped {
		skipped = append(skipped, s.Tag.Concept)
	}
	assert.Contains(t, skipped, "GrossProfit")
	assert.Contains(t, skipped, "CostOfGoodsAndServicesSold")
	assert.NotContains(t, skipped, "Revenues")

	total := len(IncomeTags) + len(BalanceTags) + len(CashflowTags) + 1
	assert.Len(t, src.Requested, total, "every tag is attempted")
}

func TestAssemble_MissingSharesAddsNoColumn(t *testing.T) {
	src := newMock()
	delete(src.Facts, "CommonStockSharesOutstanding")
	st := assemble(t, src)

	for _, kind := range m.StatementKinds {
		assert.False(t, st.Get(kind).Has(m.ColOutstandingShares), kind.String())
	}
	assert.False(t, st.Balance.Has(m.ColBVPerShare))
	assert.True(t, st.Balance.Has(m.ColEquity))
}

func TestAssemble_RevenueFallback(t *testing.T) {
	src := newMock()
	delete(src.Facts, "Revenues")
	src.Facts["CostOfGoodsAndServicesSold"] = collector.AnnualFacts("2022-12-31", 60e9, "2023-12-31", 70e9)
	st := assemble(t, src)

	assert.Equal(t, []float64{100000, 120000}, st.Income.Column(m.ColRevenue))
	assert.Equal(t, []float64{30, 30}, st.Cashflow.Column(m.ColCFOMargin)[1:])
}

func TestAssemble_AsymmetricRowCounts(t *testing.T) {
	src := &collector.MockFetcher{Facts: map[string][]m.Fact{
		"Revenues": collector.AnnualFacts("2021-12-31", 1e6, "2022-12-31", 1e6, "2023-12-31", 1e6),
		"CostOfGoodsAndServicesSold": collector.AnnualFacts(
			"2019-12-31", 1e6, "2020-12-31", 1e6, "2021-12-31", 1e6, "2022-12-31", 1e6, "2023-12-31", 1e6),
		"GrossProfit": collector.AnnualFacts("2023-12-31", 1e6, "2024-12-31", 1e6),
	}}
	st := assemble(t, src)

	// 3 rows then 5 incoming: right join keeps the five COGS periods.
	// 5 rows then 2 incoming: left join keeps the five and drops 2024.
	assert.Equal(t, []string{"2019-12-31", "2020-12-31", "2021-12-31", "2022-12-31", "2023-12-31"}, st.Income.Keys())
	rev := st.Income.Column(m.ColRevenue)
	assert.True(t, math.IsNaN(rev[0]))
	assert.Equal(t, 1.0, rev[2])

	src.Facts["ResearchAndDevelopmentExpense"] = collector.AnnualFacts(
		"2020-12-31", 1e6, "2021-12-31", 1e6, "2022-12-31", 1e6, "2023-12-31", 1e6, "2024-12-31", 1e6)
	st = assemble(t, src)
	// 5 rows then 5 incoming: not strictly larger, so the incoming periods win.
	assert.Equal(t, []string{"2020-12-31", "2021-12-31", "2022-12-31", "2023-12-31", "2024-12-31"}, st.Income.Keys())
}

func TestAssemble_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAssembler(newMock(), nil, zerolog.Nop()).Assemble(ctx, cik)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJoinMarket(t *testing.T) {
	st := assemble(t, newMock())
	history := []m.PricePoint{
		{Month: "2021-11", Close: 9},
		{Month: "2022-12", Close: 10},
		{Month: "2022-12", Close: 11},
	}

	joined, err := JoinMarket(st, history)
	require.NoError(t, err)
	assert.True(t, joined)

	assert.Equal(t, 2, st.Income.Len())
	price := st.Income.Column(m.ColPrice)
	assert.Equal(t, 11.0, price[0], "last point of a month wins")
	assert.True(t, math.IsNaN(price[1]))
	capCol := st.Income.Column(m.ColMarketCap)
	assert.Equal(t, 176000.0, capCol[0])
	assert.True(t, math.IsNaN(capCol[1]))

	assert.Equal(t, 3, st.Cashflow.Len(), "rows are never dropped")
	assert.True(t, math.IsNaN(st.Cashflow.Column(m.ColPrice)[0]))
	assert.True(t, st.Cashflow.Has(m.ColMarketCap))
}

func TestJoinMarket_WithoutSharesHasNoMarketCap(t *testing.T) {
	src := newMock()
	delete(src.Facts, "CommonStockSharesOutstanding")
	st := assemble(t, src)

	_, err := JoinMarket(st, []m.PricePoint{{Month: "2022-12", Close: 10}})
	require.NoError(t, err)
	assert.True(t, st.Balance.Has(m.ColPrice))
	assert.False(t, st.Balance.Has(m.ColMarketCap))
}

func TestJoinMarket_EmptyHistory(t *testing.T) {
	st := assemble(t, newMock())
	joined, err := JoinMarket(st, nil)
	require.NoError(t, err)
	assert.False(t, joined)
	assert.False(t, st.Income.Has(m.ColPrice))
	assert.False(t, st.Income.Has(m.ColMarketCap))
}

func TestFinalize(t *testing.T) {
	st := assemble(t, newMock())
	finals := FinalizeAll(st)
	require.Len(t, finals, 3)

	income := finals[0]
	assert.Equal(t, m.Income, income.Kind)
	assert.Equal(t, []Period{{Year: "2022", PeriodEnd: "12-31"}, {Year: "2023", PeriodEnd: "12-31"}}, income.Periods)
	assert.Equal(t, st.Income.Columns(), income.Columns)
	assert.Equal(t, []float64{100000, 120000}, income.Column(m.ColRevenue))
	assert.True(t, income.Has(m.ColRevenue))
	assert.Equal(t, 2, income.Len())

	assert.Equal(t, 3, finals[2].Len())
}
