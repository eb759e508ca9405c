package report

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	usd        = message.NewPrinter(language.English)
	titleCaser = cases.Title(language.English)
)

// FormatUSD renders a dollar amount with thousands separators and two
// decimals, e.g. 360000000000 -> "$360,000,000,000.00".
func FormatUSD(v float64) string {
	return usd.Sprintf("$%.2f", v)
}

// CompactUSD renders a dollar amount in billions or millions for
// readability, e.g. 360000000000 -> "$360.00B". Amounts under a million
// fall back to the full form.
func CompactUSD(v float64) string {
	switch {
	case v >= 1e9:
		return usd.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return usd.Sprintf("$%.2fM", v/1e6)
	default:
		return FormatUSD(v)
	}
}

// Title renders a user-supplied asset name in title case for display.
func Title(name string) string {
	return titleCaser.String(name)
}
