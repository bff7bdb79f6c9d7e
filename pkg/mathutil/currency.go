// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/avdeyev/mortgage-planner/pkg/constants"
)

// RoundRuble rounds a value to the nearest whole ruble. Monetary outputs are
// rounded only at presentation boundaries; internal recurrences accumulate
// unrounded to avoid compounding rounding error over long horizons.
func RoundRuble(val float64) float64 {
	return math.Round(val)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// MonthlyRate converts an annual percentage to a monthly fraction by simple
// division. The linear conversion (not the geometric root) is the defined
// behavior of the model and is used consistently everywhere.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
