package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency formats a dollar amount with a thousands separator, e.g.
// "$1,234.56". Negative amounts render as "-$1,234.56".
func Currency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + withCommas(v, 2)
}

// Change formats a price change and percent change with explicit signs,
// e.g. "+$1.25 (+0.83%)".
func Change(change, changePercent float64) string {
	changeStr := Currency(math.Abs(change))
	if change >= 0 {
		changeStr = "+" + changeStr
	} else {
		changeStr = "-" + changeStr
	}

	percentStr := fmt.Sprintf("%.2f%%", math.Abs(changePercent))
	if changePercent >= 0 {
		percentStr = "+" + percentStr
	} else {
		percentStr = "-" + percentStr
	}

	return fmt.Sprintf("%s (%s)", changeStr, percentStr)
}

// Percent formats a ratio as a percentage with the given number of
// decimal places, e.g. Percent(0.0861, 2) == "8.61%".
func Percent(v float64, decimals int) string {
	return strconv.FormatFloat(v*100, 'f', decimals, 64) + "%"
}

// Number formats a number with a thousands separator and the given
// number of decimal places.
func Number(v float64, decimals int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + withCommas(v, decimals)
}

func withCommas(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + fracPart
}
