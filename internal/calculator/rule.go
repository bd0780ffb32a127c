package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"StockDashboard/internal/table"
)

// Rule derives one column from a declared set of input columns.
type Rule struct {
	Output string
	Inputs []string
	// Fallback rules only fire when Output is not already a column.
	Fallback bool
	Compute  func(inputs [][]float64) []float64
}

// Ready reports whether the rule can fire on t. Only the presence of the
// input columns is checked; null cells propagate through Compute.
func (r Rule) Ready(t *table.Table) bool {
	if r.Fallback && t.Has(r.Output) {
		return false
	}
	return t.Has(r.Inputs...)
}

// Apply evaluates rules in order against t and returns the outputs that were
// produced. Later rules see the columns written by earlier ones.
func Apply(t *table.Table, rules []Rule) ([]string, error) {
	var fired []string
	for _, r := range rules {
		if !r.Ready(t) {
			continue
		}
		inputs := make([][]float64, len(r.Inputs))
		for i, name := range r.Inputs {
			inputs[i] = t.Column(name)
		}
		if err := t.Set(r.Output, r.Compute(inputs)); err != nil {
			return fired, err
		}
		fired = append(fired, r.Output)
	}
	return fired, nil
}

// Sum adds the inputs row by row.
func Sum(out string, inputs ...string) Rule {
	return Rule{Output: out, Inputs: inputs, Compute: elementwise(func(v []float64) float64 {
		total := 0.0
		for _, x := range v {
			total += x
		}
		return total
	})}
}

// Difference subtracts every following input from the first one.
func Difference(out string, inputs ...string) Rule {
	return Rule{Output: out, Inputs: inputs, Compute: elementwise(func(v []float64) float64 {
		total := v[0]
		for _, x := range v[1:] {
			total -= x
		}
		return total
	})}
}

// Margin is num / den as a percentage rounded to one decimal place.
func Margin(out, num, den string) Rule {
	return Rule{Output: out, Inputs: []string{num, den}, Compute: elementwise(func(v []float64) float64 {
		return Round(v[0]/v[1]*100, 1)
	})}
}

// PerShare is num / shares rounded to one decimal place.
func PerShare(out, num, shares string) Rule {
	return Rule{Output: out, Inputs: []string{num, shares}, Compute: elementwise(func(v []float64) float64 {
		return Round(v[0]/v[1], 1)
	})}
}

// Average is the trailing simple moving average of in over period rows.
func Average(out, in string, period int) Rule {
	return Rule{Output: out, Inputs: []string{in}, Compute: func(inputs [][]float64) []float64 {
		return RollingSMA(inputs[0], period)
	}}
}

// Product multiplies the inputs row by row.
func Product(out string, inputs ...string) Rule {
	return Rule{Output: out, Inputs: inputs, Compute: elementwise(func(v []float64) float64 {
		total := 1.0
		for _, x := range v {
			total *= x
		}
		return total
	})}
}

// AsFallback marks r to fire only when its output column is absent.
func AsFallback(r Rule) Rule {
	r.Fallback = true
	return r
}

// Round rounds v half to even to places decimals. NaN and infinities
// are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).RoundBank(places).InexactFloat64()
}

func elementwise(f func([]float64) float64) func([][]float64) []float64 {
	return func(inputs [][]float64) []float64 {
		if len(inputs) == 0 {
			return nil
		}
		out := make([]float64, len(inputs[0]))
		row := make([]float64, len(inputs))
		for i := range out {
			for j, col := range inputs {
				row[j] = col[i]
			}
			out[i] = f(row)
		}
		return out
	}
}
