package email

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount with full en-US currency formatting,
// e.g. 1234.5 → "$1,234.50". This is the email-summary formatting path;
// the PDF table has its own, plainer one.
func FormatCurrency(v float64) string {
	return usPrinter.Sprintf("$%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
