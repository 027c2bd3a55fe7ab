package schema

import (
	"math"
	"strconv"
	"strings"
)

// compactUnits are the suffixes used by FormatCompact, largest first.
var compactUnits = []struct {
	value  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "k"},
}

// FormatCompact formats a metric for tick and legend labels, e.g. 1500 -> "1.5k".
// Values below one thousand keep up to two decimals without trailing zeros.
func FormatCompact(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "∞"
		}
		return "-∞"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	for _, u := range compactUnits {
		if v >= u.value {
			return sign + trimFloat(v/u.value, 1) + u.suffix
		}
	}
	return sign + trimFloat(v, 2)
}

// trimFloat formats with the given precision and strips trailing zeros.
func trimFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// TruncateLabel shortens a label to maxWidth runes with a trailing ellipsis.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}
