package model

// Unit is the XBRL unit a concept is reported in.
type Unit string

const (
	UnitUSD         Unit = "USD"
	UnitUSDPerShare Unit = "USD/shares"
	UnitShares      Unit = "shares"
)

// Scale returns the divisor applied to raw values at ingestion.
// Everything except per-share amounts is expressed in millions, share
// counts included, so BV/Share and Market Cap come out in consistent units.
func (u Unit) Scale() float64 {
	if u == UnitUSDPerShare {
		return 1
	}
	return 1e6
}

// Fact is a single raw record returned by the filings API for one concept.
type Fact struct {
	PeriodEnd string  `json:"end"`
	Value     float64 `json:"val"`
	Form      string  `json:"form"`
	Frame     string  `json:"frame"`
	Filed     string  `json:"filed"`
}

// Observation is a filtered, rescaled value for one period end.
type Observation struct {
	PeriodEnd string
	Value     float64
	Unit      Unit
}

// Tag binds a us-gaap concept to the column it populates.
type Tag struct {
	Concept string
	Column  string
	Unit    Unit
}

// Series holds the observations of one tag ordered by period end.
type Series struct {
	Name         string
	Observations []Observation
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Observations) }
