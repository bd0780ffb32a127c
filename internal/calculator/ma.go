package calculator

import (
	"errors"
	"math"
)

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// RollingSMA returns, for every position, the simple moving average of the
// period values ending there. Positions without a full window, or whose
// window contains a null, are NaN. The input order is used as is.
func RollingSMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		out[i] = math.NaN()
		if period <= 0 || i+1 < period {
			continue
		}
		window := values[i+1-period : i+1]
		if hasNaN(window) {
			continue
		}
		if avg, err := CalculateSMA(window, period); err == nil {
			out[i] = avg
		}
	}
	return out
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
