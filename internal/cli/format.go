// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the symbol used when none is configured.
const DefaultCurrency = "$"

// FormatMoney formats an amount with two decimals, thousands separators and
// the currency symbol as a prefix.
// e.g., 1234.5 -> "$1,234.50", -24.5 -> "-$24.50"
func FormatMoney(d decimal.Decimal, symbol string) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	fixed := r.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + symbol + groupDigits(intPart) + "." + frac
}

// FormatAmount formats an amount the way the chart legend shows it: two
// decimals followed by the currency symbol, e.g. "1200.00$".
func FormatAmount(d decimal.Decimal, symbol string) string {
	return d.StringFixed(2) + symbol
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a percentage (0-100 scale) with one decimal.
// ok=false renders as "n/a", for ratios against a zero denominator.
func FormatPercent(pct float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatShare formats a percentage rounded to a whole number, e.g. "60%".
func FormatShare(pct float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatRemaining formats the remaining budget, appending "over" when negative.
func FormatRemaining(remaining decimal.Decimal, symbol string) string {
	if remaining.IsNegative() {
		return FormatMoney(remaining, symbol) + " (over budget)"
	}
	return FormatMoney(remaining, symbol)
}

// ShortID returns the first 8 characters of an ID for table display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
