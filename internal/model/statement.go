package model

// StatementKind identifies one of the three financial statements.
type StatementKind int

const (
	Income StatementKind = iota
	Balance
	Cashflow
)

// StatementKinds lists the statements in processing order.
var StatementKinds = []StatementKind{Income, Balance, Cashflow}

func (k StatementKind) String() string {
	switch k {
	case Income:
		return "Income Statement"
	case Balance:
		return "Balance Sheet"
	case Cashflow:
		return "Cashflow Statement"
	default:
		return "Unknown"
	}
}

// Key is a short lowercase identifier used in logs and metric labels.
func (k StatementKind) Key() string {
	switch k {
	case Income:
		return "income"
	case Balance:
		return "balance"
	case Cashflow:
		return "cashflow"
	default:
		return "unknown"
	}
}
