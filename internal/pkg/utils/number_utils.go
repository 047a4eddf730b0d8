package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatPrice renders a price for display. Prices below 1 keep more
// fractional digits so that small-cap assets do not print as zero.
// Example: 0.000012345 => "0.00001235", 64321.5 => "64,321.50"
func FormatPrice(price float64) string {
	d := decimal.NewFromFloat(price)
	if d.Abs().LessThan(decimal.NewFromInt(1)) {
		return trimZeros(d.StringFixed(8))
	}
	return FormatAmount(d, 2)
}

// FormatAmount rounds d to places decimals and groups the integer part in
// thousands using English number formatting.
func FormatAmount(d decimal.Decimal, places int32) string {
	rounded := d.Round(places).InexactFloat64()
	return message.NewPrinter(language.English).Sprint(number.Decimal(rounded, number.Scale(int(places))))
}

// FormatPercent renders a percentage with one decimal, e.g. 63.25 => "63.3%".
func FormatPercent(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(1) + "%"
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
