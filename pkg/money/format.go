// Package money formatea montos para recibos: separador de miles y dos decimales.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format devuelve el monto con separador de miles, ej: 1234.5 → "1,234.50".
func Format(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// WithSymbol antepone el símbolo de moneda, ej: "฿1,234.50".
func WithSymbol(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + Format(d.Neg())
	}
	return symbol + Format(d)
}
