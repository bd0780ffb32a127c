package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "StockDashboard/internal/model"
	"StockDashboard/internal/table"
)

var periods = []string{"2020-12-31", "2021-12-31", "2022-12-31", "2023-12-31"}

// build returns a table over the first n periods with the given columns.
func build(t *testing.T, n int, cols map[string][]float64) *table.Table {
	t.Helper()
	s := m.Series{Name: "_key"}
	for _, p := range periods[:n] {
		s.Observations = append(s.Observations, m.Observation{PeriodEnd: p})
	}
	tbl := table.FromSeries(s)
	for name, v := range cols {
		require.NoError(t, tbl.Set(name, v))
	}
	return tbl
}

func TestCalculateSMA(t *testing.T) {
	avg, err := CalculateSMA([]float64{1, 2, 3, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.5, avg)

	_, err = CalculateSMA([]float64{1}, 2)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1}, 0)
	assert.Error(t, err)
}

func TestRollingSMA_ThreePeriods(t *testing.T) {
	got := RollingSMA([]float64{100, 200, 300, 400}, 3)
	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, 200.0, got[2])
	assert.Equal(t, 300.0, got[3])
}

func TestRollingSMA_NullInWindow(t *testing.T) {
	got := RollingSMA([]float64{100, math.NaN(), 300, 400, 500}, 3)
	for i := 0; i < 4; i++ {
		assert.True(t, math.IsNaN(got[i]), "index %d", i)
	}
	assert.Equal(t, 400.0, got[4])
}

func TestRollingSMA_UsesInputOrder(t *testing.T) {
	got := RollingSMA([]float64{400, 300, 200, 100}, 3)
	assert.Equal(t, 300.0, got[2])
	assert.Equal(t, 200.0, got[3])
}

func TestRound(t *testing.T) {
	assert.Equal(t, 33.3, Round(333.0/1000*100, 1))
	assert.Equal(t, 0.2, Round(0.25, 1))
	assert.Equal(t, 12.2, Round(12.25, 1))
	assert.Equal(t, 0.4, Round(0.35, 1))
	assert.Equal(t, -0.2, Round(-0.25, 1))
	assert.True(t, math.IsNaN(Round(math.NaN(), 1)))
	assert.True(t, math.IsInf(Round(math.Inf(1), 1), 1))
}

func TestMargin_RoundsToOneDecimal(t *testing.T) {
	tbl := build(t, 1, map[string][]float64{m.ColGrossProfit: {333}, m.ColRevenue: {1000}})
	fired, err := Apply(tbl, []Rule{Margin(m.ColGrossMargin, m.ColGrossProfit, m.ColRevenue)})
	require.NoError(t, err)
	assert.Equal(t, []string{m.ColGrossMargin}, fired)
	assert.Equal(t, []float64{33.3}, tbl.Column(m.ColGrossMargin))
}

func TestMargin_TiesRoundToEven(t *testing.T) {
	tbl := build(t, 2, map[string][]float64{m.ColGrossProfit: {1, 49}, m.ColRevenue: {400, 400}})
	_, err := Apply(tbl, []Rule{Margin(m.ColGrossMargin, m.ColGrossProfit, m.ColRevenue)})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 12.2}, tbl.Column(m.ColGrossMargin))
}

func TestApply_AbsentInputsLeaveOutputAbsent(t *testing.T) {
	rules := map[string][]Rule{
		"income":   IncomeRules,
		"balance":  BalanceRules,
		"cashflow": CashflowRules,
		"cross":    append(append([]Rule{}, PerShareRules...), CashflowMarginRules...),
	}
	for name, set := range rules {
		t.Run(name, func(t *testing.T) {
			for _, r := range set {
				for drop := range r.Inputs {
					cols := map[string][]float64{}
					for i, in := range r.Inputs {
						if i != drop {
							cols[in] = []float64{1, 2, 3}
						}
					}
					tbl := build(t, 3, cols)
					_, err := Apply(tbl, []Rule{r})
					require.NoError(t, err)
					assert.False(t, tbl.Has(r.Output), "%s fired without %s", r.Output, r.Inputs[drop])
				}
			}
		})
	}
}

func TestApply_NullsPropagate(t *testing.T) {
	tbl := build(t, 2, map[string][]float64{
		m.ColCFO:   {10, math.NaN()},
		m.ColCapEx: {4, 5},
	})
	_, err := Apply(tbl, CashflowRules)
	require.NoError(t, err)
	fcf := tbl.Column(m.ColFCF)
	assert.Equal(t, 6.0, fcf[0])
	assert.True(t, math.IsNaN(fcf[1]))
	assert.False(t, tbl.Has(m.ColNCF))
	assert.True(t, tbl.Has(m.ColCFOAvg3))
}

func TestIncomeRules_FullChain(t *testing.T) {
	tbl := build(t, 3, map[string][]float64{
		m.ColRevenue:     {1000, 1100, 1200},
		m.ColCOGS:        {600, 650, 700},
		m.ColGrossProfit: {400, 450, 500},
		m.ColRnD:         {100, 110, 120},
		m.ColSGA:         {50, 55, 60},
		m.ColDnA:         {20, 20, 20},
		m.ColNetIncome:   {150, 160, 170},
	})
	fired, err := Apply(tbl, IncomeRules)
	require.NoError(t, err)

	assert.NotContains(t, fired, m.ColRevenue)
	assert.Equal(t, []float64{1000, 1100, 1200}, tbl.Column(m.ColRevenue))
	avg := tbl.Column(m.ColRevenueAvg3)
	assert.Equal(t, 1100.0, avg[2])
	assert.Equal(t, []float64{150, 165, 180}, tbl.Column(m.ColOperatingExpense))
	assert.Equal(t, []float64{250, 285, 320}, tbl.Column(m.ColEBIT))
	assert.Equal(t, []float64{270, 305, 340}, tbl.Column(m.ColEBITDA))
	assert.Equal(t, []float64{40, 40.9, 41.7}, tbl.Column(m.ColGrossMargin))
	assert.Equal(t, []float64{10, 10, 10}, tbl.Column(m.ColRnDMargin))
	assert.Equal(t, []float64{25, 25.9, 26.7}, tbl.Column(m.ColEBITMargin))
	assert.Equal(t, []float64{15, 14.5, 14.2}, tbl.Column(m.ColNetIncomeMargin))
}

func TestIncomeRules_RevenueFallback(t *testing.T) {
	t.Run("revenue absent uses gross profit plus cogs", func(t *testing.T) {
		tbl := build(t, 3, map[string][]float64{
			m.ColCOGS:        {600, 650, 700},
			m.ColGrossProfit: {400, 450, 500},
		})
		_, err := Apply(tbl, IncomeRules)
		require.NoError(t, err)
		assert.Equal(t, []float64{1000, 1100, 1200}, tbl.Column(m.ColRevenue))
		assert.Equal(t, []float64{40, 40.9, 41.7}, tbl.Column(m.ColGrossMargin))
	})
	t.Run("fetched revenue is never overwritten", func(t *testing.T) {
		tbl := build(t, 3, map[string][]float64{
			m.ColRevenue:     {1000, 1100, 1200},
			m.ColCOGS:        {600, 650, 700},
			m.ColGrossProfit: {1, 1, 1},
		})
		_, err := Apply(tbl, IncomeRules)
		require.NoError(t, err)
		assert.Equal(t, []float64{1000, 1100, 1200}, tbl.Column(m.ColRevenue))
	})
	t.Run("no gross profit means no fallback and no gross margin", func(t *testing.T) {
		tbl := build(t, 3, map[string][]float64{
			m.ColRevenue: {1000, 1100, 1200},
			m.ColCOGS:    {600, 650, 700},
		})
		fired, err := Apply(tbl, IncomeRules)
		require.NoError(t, err)
		assert.Equal(t, []string{m.ColRevenueAvg3}, fired)
		assert.False(t, tbl.Has(m.ColGrossMargin))
	})
}

func TestBalanceRules(t *testing.T) {
	tbl := build(t, 2, map[string][]float64{
		m.ColCurrentAssets:      {100, 120},
		m.ColNonCurrentAssets:   {300, 330},
		m.ColLiabilities:        {250, 260},
		m.ColCurrentLiabilities: {80, 90},
		m.ColIntangibleAssets:   {20, 20},
		m.ColGoodwill:           {30, 35},
	})
	_, err := Apply(tbl, BalanceRules)
	require.NoError(t, err)
	assert.Equal(t, []float64{170, 170}, tbl.Column(m.ColNonCurrentLiabilities))
	assert.Equal(t, []float64{400, 450}, tbl.Column(m.ColAssets))
	assert.Equal(t, []float64{150, 190}, tbl.Column(m.ColEquity))
	assert.Equal(t, []float64{350, 395}, tbl.Column(m.ColTangibleBV))
}

func TestPerShareRules_TBVNeverFiresFromBalanceColumns(t *testing.T) {
	tbl := build(t, 1, map[string][]float64{
		m.ColEquity:            {150},
		m.ColTangibleBV:        {100},
		m.ColOutstandingShares: {16},
	})
	fired, err := Apply(tbl, PerShareRules)
	require.NoError(t, err)
	assert.Equal(t, []string{m.ColBVPerShare}, fired)
	assert.Equal(t, []float64{9.4}, tbl.Column(m.ColBVPerShare))
	assert.False(t, tbl.Has(m.ColTBVPerShare))
}

func TestRulesFor(t *testing.T) {
	assert.Len(t, RulesFor(m.Income), 11)
	assert.Len(t, RulesFor(m.Balance), 4)
	assert.Len(t, RulesFor(m.Cashflow), 3)
	assert.Nil(t, RulesFor(m.StatementKind(42)))
}
