package geometry

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundTo rounds half up (toward positive infinity) to n decimal digits.
func RoundTo(v float64, n int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(n))
	return math.Floor(v*p+0.5) / p
}

// Round rounds to Precision digits.
func Round(v float64) float64 {
	return RoundTo(v, Precision)
}

// FormatNumber renders v rounded to Precision digits, keeping at least one
// fractional digit: 1 -> "1.0", -52.5 -> "-52.5", 0.125 -> "0.13".
// Files and generated rules written by older tools use this exact form.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := decimal.NewFromFloat(Round(v)).Round(Precision).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
