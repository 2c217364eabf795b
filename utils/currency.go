package utils

import (
	"fmt"
	"math"
	"strings"
)

// Round2 rounds a monetary amount to 2 decimal places, half-up for the
// positive amounts this system deals in. Applied at aggregation points,
// not per line item.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCurrencyPHP formats an amount as Philippine pesos with thousands
// separators. Example: 15000.5 -> "PHP 15,000.50"
func FormatCurrencyPHP(amount float64) string {
	formatted := fmt.Sprintf("%.2f", Round2(amount))

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return "PHP " + strings.Join(groups, ",") + "." + decimalPart
}
