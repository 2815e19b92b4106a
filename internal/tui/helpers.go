package tui

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// formatPrice renders a price with the currency prefix, two decimal places.
func formatPrice(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// padRight pads or truncates s to exactly width runes.
func padRight(s string, width int) string {
	s = truncStr(s, width)
	for utf8.RuneCountInString(s) < width {
		s += " "
	}
	return s
}
