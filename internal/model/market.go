package model

// PricePoint is the closing price of one calendar month.
type PricePoint struct {
	Month string // YYYY-MM
	Close float64
}
