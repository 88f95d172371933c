package pdf

import (
	"fmt"
	"strconv"
)

// FormatAmount renders a monetary value for the PDF table: a dollar sign and
// exactly two decimal places, no grouping. The email summary has a separate,
// locale-aware formatting path — the two are intentionally independent.
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatQuantity prints whole quantities without a decimal point and
// fractional ones with minimal digits.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
