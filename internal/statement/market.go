package statement

import (
	"StockDashboard/internal/calculator"
	m "StockDashboard/internal/model"
	"StockDashboard/internal/table"
)

// monthOf truncates a period end to its year-month.
func monthOf(periodEnd string) string {
	if len(periodEnd) < 7 {
		return periodEnd
	}
	return periodEnd[:7]
}

// JoinMarket attaches the closing price of each period end's month to every
// statement and derives Market Cap where outstanding shares are known. Rows
// are never dropped; months without a price get a null. When a month has
// several points the last one wins. It reports whether prices were joined;
// an empty history leaves the statements untouched.
func JoinMarket(st *Statements, history []m.PricePoint) (bool, error) {
	if len(history) == 0 {
		return false, nil
	}

	s := m.Series{Name: m.ColPrice, Observations: make([]m.Observation, 0, len(history))}
	for _, p := range history {
		s.Observations = append(s.Observations, m.Observation{PeriodEnd: p.Month, Value: p.Close})
	}
	prices := table.FromSeries(s)

	for _, kind := range m.StatementKinds {
		t := table.LeftJoinOn(st.Get(kind), prices, monthOf)
		if _, err := calculator.Apply(t, calculator.MarketRules); err != nil {
			return false, err
		}
		st.Set(kind, t)
	}
	return true, nil
}
