// Package format renders numbers for chart labels and reports.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed formats x with exactly places fractional digits. Rounding is half away
// from zero on the exact binary value of x, so 1.45 (stored as 1.4499...)
// becomes "1.4" while 0.25 becomes "0.3". Negative inputs that round to zero
// keep their sign ("-0.0").
func Fixed(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	if places < 0 {
		places = 0
	}
	if math.Abs(x) >= 1e21 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	exact := new(big.Rat).SetFloat64(x)
	num := decimal.NewFromBigInt(exact.Num(), 0)
	den := decimal.NewFromBigInt(exact.Denom(), 0)
	s := num.DivRound(den, places).StringFixed(places)

	if x < 0 && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}
