// Package currency renders computed prices for display. Calculations
// elsewhere stay in whole numbers; formatting is presentation only.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCode = "AUD"

var symbols = map[string]string{
	"AUD": "A$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"NZD": "NZ$",
}

var printer = message.NewPrinter(language.English)

// Options controls Format. The zero value means AUD with whole-unit rounding.
type Options struct {
	Code         string
	ShowDecimals bool
}

// Format renders an amount with digit grouping. By default fractional cents
// are rounded away: Format(99.99, Options{}) is "A$100".
func Format(amount float64, opts Options) string {
	code := opts.Code
	if code == "" {
		code = DefaultCode
	}
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}
	if opts.ShowDecimals {
		return printer.Sprintf("%s%.2f", symbol, amount)
	}
	return printer.Sprintf("%s%d", symbol, int(math.Round(amount)))
}

// FormatWhole is the common path for the pricing engine's integer outputs.
func FormatWhole(amount int, code string) string {
	return Format(float64(amount), Options{Code: code})
}
