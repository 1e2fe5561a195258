// Package metrics contains the pure display formatters for dashboard values.
// Every function is total and side-effect-free given primitive inputs.
package metrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// Currency renders a dollar amount the way the summary cards expect:
// values of $1000 and above abbreviate to one decimal with a K suffix,
// smaller values round to a whole dollar. Negative values are out of scope
// for the data model and pass through the small-value branch unchanged.
func Currency(v float64) string {
	if v >= config.CurrencyKiloThreshold {
		return fmt.Sprintf("$%.1fK", v/1000)
	}
	return fmt.Sprintf("$%.0f", v)
}

// Percent renders a rate with one decimal place and a trailing percent sign.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Count renders an integer with thousands separators for table cells.
func Count(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// SignedDelta renders a period-over-period integer change with an explicit sign.
func SignedDelta(n int) string {
	if n >= 0 {
		return "+" + Count(n)
	}
	return Count(n)
}

// SignedPercent renders a percentage-point change with an explicit sign.
func SignedPercent(v float64) string {
	if math.Signbit(v) {
		return Percent(v)
	}
	return "+" + Percent(v)
}
