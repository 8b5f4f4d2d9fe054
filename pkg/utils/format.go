// Package utils provides common utility functions for Finance Lab.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatGBP formats a money amount the way the simulators display it:
// "£1,234" below a thousand pounds' precision, "£12.5k" from a thousand,
// "£1.2m" from a million. Trailing ".0" is dropped on abbreviated values.
func FormatGBP(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "£0"
	}

	negative := amount < 0
	abs := math.Abs(amount)

	var formatted string
	switch {
	case abs >= 1e6:
		formatted = strings.TrimSuffix(fmt.Sprintf("%.1f", abs/1e6), ".0") + "m"
	case abs >= 1e3:
		formatted = strings.TrimSuffix(fmt.Sprintf("%.1f", abs/1e3), ".0") + "k"
	default:
		formatted = groupThousands(int64(math.Round(abs)))
	}

	if negative {
		return "-£" + formatted
	}
	return "£" + formatted
}

// FormatGBPExact formats a money amount with comma grouping and no
// abbreviation, rounded to whole pounds.
func FormatGBPExact(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "£0"
	}
	negative := amount < 0
	formatted := groupThousands(int64(math.Round(math.Abs(amount))))
	if negative {
		return "-£" + formatted
	}
	return "£" + formatted
}

// FormatPercent renders a fractional rate as a percentage string,
// e.g. 0.052 → "5.2%".
func FormatPercent(rate float64, decimals int) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "0%"
	}
	return fmt.Sprintf("%.*f%%", decimals, rate*100)
}

// Clamp restricts v to the inclusive range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// groupThousands inserts comma separators every three digits.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
