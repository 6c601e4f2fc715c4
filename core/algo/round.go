// Package algo has the pure scoring formulas of the built-in scoring systems.
package algo

import "math"

// RoundUp1 returns the smallest number with one decimal place that is equal
// to or higher than x. The comparison is done on integers so that values such
// as 4.000000000000001 do not round up to 4.1. CVSS v3.0, v3.1 and RVSS v1
// all use it.
func RoundUp1(x float64) float64 {
	i := math.Round(x * 100000)
	if math.Mod(i, 10000) == 0 {
		return i / 100000
	}
	return (math.Floor(i/10000) + 1) / 10
}

// RoundHalfUp1 rounds x to the nearest tenth, halves rounding up.
func RoundHalfUp1(x float64) float64 {
	i := math.Round(x * 100000)
	return math.Floor((i+5000)/10000) / 10
}
