// Package mathutil provides common mathematical utility functions.
//
// Every guarded ratio in this package resolves a zero denominator to NaN
// rather than returning an infinity or panicking. NaN is the single
// undefined-value sentinel used throughout the engine; it propagates through
// dependent arithmetic without special casing and is rendered as JSON null by
// the presentation layers.
package mathutil

import (
	"math"

	"github.com/buildtrack/evm-engine/pkg/constants"
)

// SafeRatio divides num by den, resolving a zero denominator to NaN.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Percent returns part as a percentage of whole, resolving a zero whole to
// NaN. The result is not clamped to [0, 100].
func Percent(part, whole float64) float64 {
	return SafeRatio(part, whole) * constants.PercentageMultiplier
}

// IsDefined reports whether a value carries real data, i.e. is neither NaN
// nor an infinity.
func IsDefined(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
