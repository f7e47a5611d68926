package validation

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// randSymbol is the quote convention for ZAR
const randSymbol = "R"

// FormatNumber groups thousands, e.g. 1234567 -> "1,234,567"
func FormatNumber(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprint(number.Decimal(f))
}

// FormatAmount renders d with grouping and exactly two decimals
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatCurrency renders an amount with its currency symbol, e.g. "R 32,200.00".
// Unknown ISO codes fall back to the code itself.
func FormatCurrency(d decimal.Decimal, code string) string {
	return Symbol(code) + " " + FormatAmount(d)
}

// Symbol returns the display symbol for an ISO currency code
func Symbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	if unit == currency.ZAR {
		return randSymbol
	}
	return printer.Sprint(currency.NarrowSymbol(unit))
}

// IsCurrencyCode reports whether code is a known ISO 4217 code
func IsCurrencyCode(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
