// Package currency formats amounts for display and for checkout
// messages. The locale and symbol are configuration, not correctness:
// for a given amount the output is deterministic.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for the given locale tag and currency
// symbol. The symbol is appended after the localized number, the way
// the storefront prints prices.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Format renders a non-negative amount with localized digit grouping,
// whole amounts without a fraction and fractional ones with at most two
// digits.
func (f *Formatter) Format(amount float64) string {
	n := number.Decimal(amount,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	)
	return f.printer.Sprintf("%v %s", n, f.symbol)
}
