// Package format renders quote values for display.
//
// All functions take *float64 because the backend returns null for fields it
// could not source (thin books, closed exchanges); a missing value renders as
// the empty string rather than a zero.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Grouping follows en-US locale conventions, matching the dashboard's web UI.
var enUS = message.NewPrinter(language.AmericanEnglish)

// USD formats a dollar amount with comma grouping and exactly two fraction
// digits, e.g. 1234.5 -> "$1,234.50".
func USD(v *float64) string {
	if !present(v) {
		return ""
	}
	return enUS.Sprintf("$%.2f", *v)
}

// Comma formats a number with comma grouping and a fixed number of fraction
// digits.
func Comma(v *float64, decimals int) string {
	if !present(v) {
		return ""
	}
	return enUS.Sprintf("%.*f", decimals, *v)
}

// IntegerComma rounds to the nearest integer and groups with commas,
// e.g. 1234567 -> "1,234,567". Used for volume columns.
func IntegerComma(v *float64) string {
	if !present(v) {
		return ""
	}
	return enUS.Sprintf("%d", int64(math.Round(*v)))
}

// Percent formats a ratio as a percentage with the given number of fraction
// digits and no grouping, e.g. 0.1234 -> "12.34%".
func Percent(v *float64, decimals int) string {
	if !present(v) {
		return ""
	}
	return fmt.Sprintf("%.*f%%", decimals, *v*100)
}

func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
