package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount as Vietnamese dong with dot thousands
// separators and no decimals, e.g. 335000 -> "335.000 ₫".
func FormatCurrency(amount float64) string {
	integerPart := fmt.Sprintf("%.0f", amount)

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	return strings.Join(result, ".") + " ₫"
}
